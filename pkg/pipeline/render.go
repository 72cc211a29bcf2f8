package pipeline

import (
	"fmt"

	"github.com/matzehuels/labdoc/pkg/buildinfo"
	"github.com/matzehuels/labdoc/pkg/doc"
	"github.com/matzehuels/labdoc/pkg/errors"
	"github.com/matzehuels/labdoc/pkg/sink"
)

// Render serializes d in every format of opts.
func Render(d doc.Document, buildID string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOCX:
			data, err = sink.RenderDOCX(d,
				sink.WithDOCXTitle(opts.OutputName),
				sink.WithDOCXCreator(buildinfo.Creator()),
			)
		case FormatJSON:
			data, err = sink.RenderJSON(d,
				sink.WithJSONBuildID(buildID),
				sink.WithJSONSource(opts.Dir),
			)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
