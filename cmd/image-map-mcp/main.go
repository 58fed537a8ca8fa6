package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-map-mcp/internal/config"
	"github.com/ironsheep/image-map-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger writes to w, which must not be stdout: stdout carries the MCP
// protocol.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "image-map-mcp",
	})
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	load := func() (config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		return cfg, nil
	}

	root := &cobra.Command{
		Use:   "image-map-mcp",
		Short: "MCP server for HTML image-map areas",
		Long: `image-map-mcp computes the corner and centre of <area> elements of HTML
image maps and inspects the image pixels under them.

It communicates via MCP protocol over stdin/stdout. Configure it in your
MCP client; logs are written to stderr.`,
		Version:      Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}

			logger := newLogger(os.Stderr, level)
			logger.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

			srv := server.New(cfg, server.WithLogger(logger), server.WithVersion(Version))
			if err := srv.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("server error", "err", err)
				return err
			}
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("image-map-mcp %s\n  Build time: %s\n  Git commit: %s\n", Version, BuildTime, GitCommit))
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "# source: %s\n", cfg.Source)
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	})

	return root
}
