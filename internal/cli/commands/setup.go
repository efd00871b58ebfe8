// Package commands implements the waterdash subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/waterdash/internal/cli/config"
	"github.com/leapstack-labs/waterdash/internal/cli/output"
	"github.com/leapstack-labs/waterdash/internal/dataset"
	"github.com/leapstack-labs/waterdash/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a loaded engine and a renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	if _, err := eng.Load(cmd.Context()); err != nil {
		return nil, err
	}

	cmdCtx.Engine = eng
	return cmdCtx, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, falling back to defaults
// when no config has been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Source:        config.SourceConfig{Path: config.DefaultSourcePath, Type: dataset.InferType(config.DefaultSourcePath)},
		NationalState: dataset.NationalState,
		LogLevel:      config.DefaultLogLevel,
		OutputFormat:  config.DefaultOutput,
	}
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	eng, err := engine.New(engine.Config{
		Source:   cfg.Source,
		National: cfg.NationalState,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return eng, nil
}
