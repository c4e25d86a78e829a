package main

import (
	"github.com/spf13/cobra"

	"github.com/Insomnium-Eye/oaxacahouse/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "oaxaca-web",
	Short: "Bilingual single page site for the Casa Oaxaca listing",
	Long: `oaxaca-web serves the Casa Oaxaca listing: an autoplaying photo slideshow,
a lightbox gallery and the property description in English and Spanish.

Settings come from defaults, the optional YAML file given by --config and
OAXACA_* environment variables (OAXACA_SERVER__ADDR=:9000 sets server.addr).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "config file path")
}
