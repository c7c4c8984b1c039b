package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/document"
	"github.com/jmylchreest/swatch/internal/ui"
)

var viewDebounce time.Duration

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view <palette>...",
	Short: "Open palette files in the interactive previewer",
	Long: `Open one or more palette files in the interactive previewer.

Each line gets an index token, a label token where one resolves, an
inline swatch and its raw text; lines that are not 6-digit hex codes are
flagged with a warning marker. Press ? inside the previewer for the key
reference.

Labels come from a same-named sibling source file defining COLOR_<NAME>
integer constants when one exists, falling back to the standard 16 ANSI
colour names.

Examples:
  # Preview a palette
  swatch view theme.hex

  # Preview several palettes, switch with [ and ]
  swatch view dark.hex light.hex`,
	Args: cobra.MinimumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().DurationVar(&viewDebounce, "debounce", 50*time.Millisecond, "coalesce window for rescans after rapid edits")
}

// runView executes the view command.
func runView(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	sessions := make([]*document.Session, 0, len(args))
	for _, path := range args {
		doc, err := document.Load(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		sessions = append(sessions, document.NewSession(doc, logger, viewDebounce))
	}

	app := ui.New(sessions, logger)
	if err := app.Run(); err != nil {
		return fmt.Errorf("previewer failed: %w", err)
	}

	return nil
}
