package cli

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/jmylchreest/swatch/internal/annotate"
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/document"
)

var (
	// Render command flags
	renderOutput   string
	renderCellSize int
	renderColumns  int
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <palette>",
	Short: "Render a palette file to a PNG swatch grid",
	Long: `Render the valid colour lines of a palette file to a PNG swatch grid.

Invalid lines are skipped; the grid holds one cell per colour line in
document order.

Examples:
  # Render next to the palette file
  swatch render theme.hex

  # Render 16 columns of 24px cells to a chosen file
  swatch render --columns 16 --cell-size 24 --output grid.png theme.hex`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default: <palette>.png)")
	renderCmd.Flags().IntVar(&renderCellSize, "cell-size", 32, "swatch cell size in pixels")
	renderCmd.Flags().IntVar(&renderColumns, "columns", 8, "swatch cells per row")
}

// runRender executes the render command.
func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]

	if renderCellSize < 1 {
		return fmt.Errorf("invalid cell size: %d", renderCellSize)
	}
	if renderColumns < 1 {
		return fmt.Errorf("invalid column count: %d", renderColumns)
	}

	doc, err := document.Load(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	bindings := annotate.Bindings(doc.Snapshot())
	if len(bindings) == 0 {
		return fmt.Errorf("no colour lines in %s", path)
	}

	img := renderGrid(bindings, renderColumns, renderCellSize)

	output := renderOutput
	if output == "" {
		output = strings.TrimSuffix(path, ".hex") + ".png"
		if output == path {
			output = path + ".png"
		}
	}

	f, err := os.Create(output) // #nosec G304 - user-specified output file
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "rendered %d colours to %s\n", len(bindings), output)
	}

	return nil
}

// renderGrid paints one pixel per colour, then scales up with
// nearest-neighbour so every cell stays a flat block.
func renderGrid(bindings []annotate.Binding, columns, cellSize int) image.Image {
	rows := (len(bindings) + columns - 1) / columns

	small := image.NewRGBA(image.Rect(0, 0, columns, rows))
	for i, b := range bindings {
		rgb := b.Colour.ToRGB()
		small.Set(i%columns, i/columns, colour.RGBToColor(rgb))
	}

	out := image.NewRGBA(image.Rect(0, 0, columns*cellSize, rows*cellSize))
	draw.NearestNeighbor.Scale(out, out.Bounds(), small, small.Bounds(), draw.Src, nil)

	return out
}
