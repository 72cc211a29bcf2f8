package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labdoc/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the highlight cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached highlighting",
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, _, err := c.openCache(cmd.Context(), cacheFlags{url: url})
			if err != nil {
				return err
			}
			defer ch.Close()

			if cl, ok := ch.(cache.Clearer); ok {
				if err := cl.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
			}

			printSuccess("Cleared highlight cache")
			if url == "" && os.Getenv(envRedisURL) == "" {
				if dir, err := cacheDir(); err == nil {
					printDetail("Directory: %s", dir)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "cache-url", "", "Redis cache URL (default $"+envRedisURL+")")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
