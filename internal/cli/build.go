package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labdoc/pkg/pipeline"
	"github.com/matzehuels/labdoc/pkg/report"
)

// buildOpts holds flags for the build command.
type buildOpts struct {
	formats   string
	output    string
	config    string
	strategy  string
	scope     string
	highlight bool
	style     string
	keepInput bool
	watch     bool
	cache     cacheFlags
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Assemble a report directory into a Word document",
		Long: `Build reads output.json and format.toml (or format.yml) from a report
directory and writes labfile.docx next to them. Relative directories are
resolved against your home directory; without an argument the current
directory is used.

output.json is removed after a successful build unless --keep-input is set.`,
		Example: `  labdoc build labs/week3
  labdoc build /tmp/lab -f docx,json --keep-input
  labdoc build --highlight --style monokai
  labdoc build --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(args)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), opts.cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			popts := opts.pipelineOptions(dir)
			popts.Logger = c.Logger
			if opts.watch {
				return c.watch(cmd.Context(), runner, popts)
			}
			return c.runBuild(cmd.Context(), runner, popts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output formats: docx, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base name (default: labfile)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "format file (default: format.toml in the report directory)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "formatting recovery: heuristic or stream")
	cmd.Flags().StringVar(&opts.scope, "used-scope", "", "fuzzy match bookkeeping: block or line")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "highlight solutions that have no RTF")
	cmd.Flags().StringVar(&opts.style, "style", "", "chroma style for --highlight")
	cmd.Flags().BoolVar(&opts.keepInput, "keep-input", false, "keep output.json after building")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rebuild whenever output.json or the format file changes")
	opts.cache.register(cmd)

	return cmd
}

func (o buildOpts) pipelineOptions(dir string) pipeline.Options {
	return pipeline.Options{
		Dir:            dir,
		ConfigPath:     o.config,
		Formats:        parseFormats(o.formats),
		OutputName:     o.output,
		Strategy:       o.strategy,
		UsedScope:      o.scope,
		Highlight:      o.highlight,
		HighlightStyle: o.style,
		KeepInput:      o.keepInput,
	}
}

// runBuild runs one build and prints its outcome.
func (c *CLI) runBuild(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) error {
	prog := newProgress(c.Logger)
	result, err := runner.Build(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Built report")

	for i, e := range result.Entries {
		c.logEntry(i, e)
	}

	printSuccess("Report built")
	for _, p := range result.Paths {
		printFile(p)
	}
	printStats(result.Stats)
	return nil
}

// logEntry prints the debug summary of one entry.
func (c *CLI) logEntry(i int, e report.Entry) {
	q := []rune(e.Question)
	if len(q) > 50 {
		q = q[:50]
	}
	c.Logger.Debug("entry",
		"n", i+1,
		"index", e.Index,
		"question", string(q),
		"code_rtf", e.CodeRTF != nil,
		"output", e.Output != "")
}
