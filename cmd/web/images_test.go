package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Insomnium-Eye/oaxacahouse/internal/config"
)

func TestImagesCommandPrintsDisplayOrder(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"images", "--order", "desc", "--config", filepath.Join(t.TempDir(), "none.yml")})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		imagesOrder = ""
		cfgFile = config.DefaultFile
	})

	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 14, out.String())
	require.True(t, strings.HasPrefix(lines[0], "#"))
	require.Contains(t, lines[1], "OaxacaPicture_12.svg")
	require.Contains(t, lines[12], "OaxacaPicture_1.svg")
	require.Contains(t, lines[13], "12 images")
	require.Contains(t, lines[13], "order desc")
}

func TestImagesCommandRejectsUnknownOrder(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"images", "--order", "shuffle", "--config", filepath.Join(t.TempDir(), "none.yml")})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		imagesOrder = ""
		cfgFile = config.DefaultFile
	})

	require.Error(t, rootCmd.Execute())
}
