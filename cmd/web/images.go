package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
	"github.com/Insomnium-Eye/oaxacahouse/internal/config"
	"github.com/Insomnium-Eye/oaxacahouse/public"
)

var imagesOrder string

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "List the gallery images in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		order := cfg.Order()
		if imagesOrder != "" {
			if order, err = assets.ParseOrder(imagesOrder); err != nil {
				return err
			}
		}
		entries, err := assets.NewResolver(public.Media(), cfg.Gallery.Pattern, assets.WithOrder(order)).Entries()
		if err != nil {
			return err
		}
		return printImages(cmd, entries, order)
	},
}

func init() {
	imagesCmd.Flags().StringVar(&imagesOrder, "order", "", "override gallery.order (asc, desc, source)")
	rootCmd.AddCommand(imagesCmd)
}

func printImages(cmd *cobra.Command, entries []assets.Entry, order assets.Order) error {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "no images found")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKEY\tSIZE\tNAME\tSRC")
	var total uint64
	for i, e := range entries {
		total += uint64(e.Size)
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", i+1, e.Key, humanize.Bytes(uint64(e.Size)), e.Name, e.Src)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d images, %s total, order %s\n", len(entries), humanize.Bytes(total), order)
	return err
}
