package pipeline

import (
	"github.com/matzehuels/labdoc/pkg/config"
	pkgio "github.com/matzehuels/labdoc/pkg/io"
	"github.com/matzehuels/labdoc/pkg/report"
)

// Load reads the format file and the entries of a report directory and
// applies the render overrides in opts.
func Load(opts Options) (*config.Config, []report.Entry, error) {
	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = config.Find(opts.Dir); err != nil {
			return nil, nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := opts.apply(cfg); err != nil {
		return nil, nil, err
	}

	entries, err := pkgio.ImportEntries(opts.InputPath())
	if err != nil {
		return nil, nil, err
	}
	return cfg, entries, nil
}
