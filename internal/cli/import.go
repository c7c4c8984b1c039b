package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/document"
	"github.com/jmylchreest/swatch/internal/image"
)

var (
	// Import command flags
	importOutput string
	importCount  int
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <image>",
	Short: "Extract a palette file from an image",
	Long: `Extract the dominant colours of an image into a new palette file,
one 6-digit hexadecimal colour code per line, largest coverage first.

Extraction is deterministic: importing the same image twice produces the
same palette. Supported formats: JPEG, PNG, GIF, WebP.

Examples:
  # Write wallpaper.hex next to the image
  swatch import wallpaper.png

  # Extract 8 colours to a chosen file
  swatch import --colours 8 --output theme.hex wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "output file (default: <image>.hex)")
	importCmd.Flags().IntVarP(&importCount, "colours", "n", 16, "number of colours to extract")
}

// runImport executes the import command.
func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := newLogger(cmd)

	img, err := image.Load(path)
	if err != nil {
		return err
	}

	colours, err := colour.NewExtractor().Extract(img, importCount)
	if err != nil {
		return fmt.Errorf("failed to extract colours from %s: %w", path, err)
	}
	logger.Debug("extracted colours", "path", path, "count", len(colours))

	output := importOutput
	if output == "" {
		ext := filepath.Ext(path)
		output = strings.TrimSuffix(path, ext) + ".hex"
	}

	lines := make([]string, len(colours))
	for i, rgb := range colours {
		lines[i] = rgb.Hex()
	}

	doc := document.New(output, lines)
	if err := doc.Save(); err != nil {
		return fmt.Errorf("failed to write palette: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %d colours to %s\n", len(lines), output)
	}

	return nil
}
