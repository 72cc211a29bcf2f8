// Package pipeline builds a lab report from a report directory.
//
// A build runs four stages:
//
//  1. Load: read the format file and output.json from the directory
//  2. Highlight: produce RTF for solutions that lack it (optional)
//  3. Assemble: lay the entries out as a document
//  4. Render: serialize the document in each requested format
//
// [Runner.Execute] runs the stages and returns the artifacts in memory;
// [Runner.Build] additionally writes them next to the input and removes
// output.json unless asked to keep it.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Build(ctx, pipeline.Options{Dir: dir})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Paths)
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labdoc/pkg/config"
	"github.com/matzehuels/labdoc/pkg/doc"
	"github.com/matzehuels/labdoc/pkg/errors"
	pkgio "github.com/matzehuels/labdoc/pkg/io"
	"github.com/matzehuels/labdoc/pkg/report"
)

// DefaultOutputName is the base name of written artifacts.
const DefaultOutputName = "labfile"

// Format constants for output formats.
const (
	FormatDOCX = "docx"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOCX: true,
	FormatJSON: true,
}

// Options configures one build.
type Options struct {
	// Dir is the report directory holding output.json and the format file.
	Dir string

	// ConfigPath overrides the format file looked up in Dir.
	ConfigPath string

	// Formats lists the artifacts to produce. Defaults to docx.
	Formats []string

	// OutputName is the artifact base name. Defaults to "labfile".
	OutputName string

	// Overrides for the format file's [render] table. Empty values keep
	// the file's settings.
	Strategy       string
	UsedScope      string
	Highlight      bool
	HighlightStyle string

	// KeepInput leaves output.json in place after a successful build.
	KeepInput bool

	Logger *log.Logger

	validated bool
}

// Result contains the outputs of a build.
type Result struct {
	// BuildID identifies this build in logs and the JSON artifact.
	BuildID string

	Config   *config.Config
	Entries  []report.Entry
	Document doc.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Paths lists the files written by [Runner.Build], in format order.
	Paths []string

	Stats Stats
}

// Stats contains build statistics and stage timings.
type Stats struct {
	Report      report.Stats
	Highlighted int

	LoadTime      time.Duration
	HighlightTime time.Duration
	AssembleTime  time.Duration
	RenderTime    time.Duration
	WriteTime     time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: docx, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Dir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "report directory is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOCX}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.OutputName == "" {
		o.OutputName = DefaultOutputName
	}
	if err := errors.ValidateFileName(o.OutputName); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	o.validated = true
	return nil
}

// InputPath returns the path of the entry file in the report directory.
func (o *Options) InputPath() string {
	return filepath.Join(o.Dir, pkgio.EntryFile)
}

// OutputPath returns the path of the artifact for format.
func (o *Options) OutputPath(format string) string {
	name := o.OutputName
	if name == "" {
		name = DefaultOutputName
	}
	return filepath.Join(o.Dir, fmt.Sprintf("%s.%s", name, format))
}

// apply writes the render overrides into cfg.
func (o *Options) apply(cfg *config.Config) error {
	if o.Strategy != "" {
		cfg.Render.Strategy = o.Strategy
	}
	if o.UsedScope != "" {
		cfg.Render.UsedScope = o.UsedScope
	}
	if o.Highlight {
		cfg.Render.Highlight = true
	}
	if o.HighlightStyle != "" {
		cfg.Render.HighlightStyle = o.HighlightStyle
	}
	return cfg.Validate()
}
