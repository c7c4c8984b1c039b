package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/annotate"
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/document"
	"github.com/jmylchreest/swatch/internal/labels"
)

var checkPreview bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <palette>...",
	Short: "Scan palette files and report non-conforming lines",
	Long: `Scan palette files and report every line inside the used range that is
not a 6-digit hex colour code.

The report is advisory: markers never fail the command and the exit code
is always zero when the files could be read. Lines after the last
non-blank line are a trailing blank run and are never reported.

Examples:
  # Report non-conforming lines
  swatch check theme.hex

  # Report with colour previews of the valid lines
  swatch check --preview theme.hex`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkPreview, "preview", false, "show colour previews of valid lines")
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	total := 0
	for _, path := range args {
		doc, err := document.Load(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		// Headless runs resolve labels synchronously; a missing or
		// unparseable sibling falls back to the static table.
		table, err := labels.Load(context.Background(), path)
		if err != nil {
			logger.Debug("constants source unavailable, using static labels", "path", path, "error", err)
		}

		set := annotate.Scan(doc.Snapshot(), table)

		if checkPreview {
			printPreview(cmd.OutOrStdout(), set)
		}

		for _, m := range set.Markers {
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: warning: %s\n", path, m.Line+1, m.Message)
		}
		total += len(set.Markers)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "%d non-conforming line(s) across %d file(s)\n", total, len(args))
	}

	return nil
}

// printPreview lists every valid line with its tokens and a colour block
// carrying the hex text. The block narrows on cramped terminals; width is
// probed from the destination, so redirected output keeps the default.
func printPreview(out io.Writer, set *annotate.Set) {
	blockWidth := 8
	if f, ok := out.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width < 60 {
			blockWidth = 4
		}
	}

	for _, b := range set.Bindings {
		rgb := b.Colour.ToRGB()

		index, label := "", ""
		for _, tok := range set.TokensAt(b.Line) {
			switch tok.Kind {
			case annotate.TokenIndex:
				index = tok.Text
			case annotate.TokenLabel:
				label = tok.Text
			}
		}

		if blockWidth < len(rgb.Hex()) {
			// Too narrow for an overlay; plain block with the hex beside it.
			fmt.Fprintf(out, "%3s  %-20s %s %s\n", index, label, colour.Preview(rgb, blockWidth), rgb.Hex())
		} else {
			fmt.Fprintf(out, "%3s  %-20s %s\n", index, label, colour.PreviewWithText(rgb, rgb.Hex(), blockWidth))
		}
	}
}
