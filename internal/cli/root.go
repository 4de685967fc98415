// Package cli wires the jpassword commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jpassword/jpassword-go/internal/config"
	"github.com/jpassword/jpassword-go/internal/generator"
	"github.com/jpassword/jpassword-go/internal/logger"
)

// app carries what every subcommand needs after startup.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	closer io.Closer
}

// NewRootCommand builds the jpassword command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "jpassword",
		Short:         "Generate random passwords from selected character classes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}

	cmd.AddCommand(
		newGenerateCommand(a),
		newInteractiveCommand(a),
		newServeCommand(a),
	)
	return cmd
}

func (a *app) init(logOut io.Writer) error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	l, closer, err := logger.NewWithWriter(cfg, logOut)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	slog.SetDefault(l)

	a.cfg = cfg
	a.logger = l
	a.closer = closer
	return nil
}

// source picks the random source; secure forces crypto/rand.
func (a *app) source(secure bool) (generator.Source, error) {
	name := a.cfg.RandomSource
	if secure {
		name = "crypto"
	}
	src, ok := generator.SourceByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown random source %q", name)
	}
	return src, nil
}
