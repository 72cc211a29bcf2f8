package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labdoc/pkg/config"
	"github.com/matzehuels/labdoc/pkg/errors"
)

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default format.toml into a report directory",
		Long: `Init writes the default report format to format.toml so it can be
edited. It refuses to overwrite an existing file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(args)
			if err != nil {
				return err
			}
			path, err := writeDefaultFormat(dir)
			if err != nil {
				return err
			}
			c.Logger.Debug("wrote format", "path", path)

			printSuccess("Created format file")
			printFile(path)
			printNextStep("Build the report", "labdoc build "+dir)
			return nil
		},
	}
}

// writeDefaultFormat creates dir/format.toml holding [config.Default].
func writeDefaultFormat(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}
	path := filepath.Join(dir, config.FileNames[0])
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if os.IsExist(err) {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s already exists", path)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := config.Write(f, config.Default()); err != nil {
		f.Close()
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return path, f.Close()
}
