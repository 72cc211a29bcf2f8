package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/labdoc/pkg/core/align"
	"github.com/matzehuels/labdoc/pkg/errors"
)

// FileNames lists the format file names [Find] looks for, in order.
var FileNames = []string{"format.toml", "format.yml", "format.yaml"}

// Find returns the path of the format file in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrCodeFileNotFound,
		"no format file in %s (looked for %s)", dir, strings.Join(FileNames, ", "))
}

// Load reads, defaults and validates the format file at path. The parser is
// chosen by extension: .yml and .yaml are YAML, anything else is TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read format file")
		}
		return nil, fmt.Errorf("read format file: %w", err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		cfg, err = DecodeYAML(bytes.NewReader(data))
	default:
		cfg, err = DecodeTOML(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// DecodeTOML decodes a TOML format, applies defaults and validates it.
func DecodeTOML(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
	}
	return finish(&cfg)
}

// DecodeYAML decodes a YAML format, applies defaults and validates it.
func DecodeYAML(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml")
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg *Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks option values that defaults cannot repair.
func (c *Config) Validate() error {
	if _, err := align.ParseStrategy(c.Render.Strategy); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.strategy")
	}
	if _, err := align.ParseScope(c.Render.UsedScope); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.used_scope")
	}
	if c.Code.Size < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "code.size must be positive, got %d", c.Code.Size)
	}

	for _, np := range c.paragraphs() {
		if err := np.p.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", np.name)
		}
	}
	return nil
}

type namedParagraph struct {
	name string
	p    *Paragraph
}

func (c *Config) paragraphs() []namedParagraph {
	var ps []namedParagraph
	if c.Header != nil {
		ps = append(ps, namedParagraph{"header", c.Header})
	}
	ps = append(ps,
		namedParagraph{"question", &c.Question},
		namedParagraph{"solution", &c.Solution.Paragraph},
		namedParagraph{"solution.title", &c.Solution.Title},
		namedParagraph{"output", &c.Output.Paragraph},
		namedParagraph{"output.title", &c.Output.Title},
	)
	if c.Footer != nil {
		ps = append(ps, namedParagraph{"footer", c.Footer})
	}
	return ps
}

func (p *Paragraph) validate() error {
	if p.Size < 0 {
		return fmt.Errorf("size must be positive, got %d", p.Size)
	}
	if !isHexColor(p.Color) {
		return fmt.Errorf("invalid color %q (want six hex digits)", p.Color)
	}
	if p.LineSpacing < 0 || p.MarginTop < 0 || p.MarginBottom < 0 || p.Indent < 0 {
		return fmt.Errorf("spacing and indent must not be negative")
	}
	return nil
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
