package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labdoc/pkg/config"
	"github.com/matzehuels/labdoc/pkg/errors"
	"github.com/matzehuels/labdoc/pkg/highlight"
)

// highlightOpts holds flags for the highlight command.
type highlightOpts struct {
	style string
	ext   string
	cache cacheFlags
}

// highlightCommand creates the highlight command.
func (c *CLI) highlightCommand() *cobra.Command {
	opts := highlightOpts{}

	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Print the RTF labdoc generates for a source file",
		Long: `Highlight runs a source file through the same highlighter build uses
with --highlight and prints the resulting RTF. The lexer is chosen from the
file extension unless --ext is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", args[0])
			}
			ext := opts.ext
			if ext == "" {
				ext = strings.TrimPrefix(filepath.Ext(args[0]), ".")
			}

			ch, keyer, err := c.openCache(cmd.Context(), opts.cache)
			if err != nil {
				return err
			}
			defer ch.Close()

			h, err := highlight.New(opts.style,
				highlight.WithCache(ch, keyer),
				highlight.WithLogger(c.Logger),
			)
			if err != nil {
				return err
			}
			c.Logger.Debug("highlighting", "file", args[0], "lexer", highlight.Lexer(ext, string(src)).Config().Name, "style", h.Style())

			out, err := h.Highlight(cmd.Context(), ext, string(src))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.style, "style", "s", config.DefaultHighlightStyle, "chroma style")
	cmd.Flags().StringVar(&opts.ext, "ext", "", "lexer extension override (e.g. py)")
	opts.cache.register(cmd)

	return cmd
}
