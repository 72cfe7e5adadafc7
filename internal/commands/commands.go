// Package commands holds the goopt command handlers.
package commands

import (
	"fmt"

	"github.com/napalu/goopt/v2"

	"github.com/napalu/renew-locales/internal/config"
	"github.com/napalu/renew-locales/internal/errors"
	"github.com/napalu/renew-locales/internal/logger"
	"github.com/napalu/renew-locales/internal/messages"
	"github.com/napalu/renew-locales/internal/options"
	"github.com/napalu/renew-locales/internal/renew"
)

// Prune is the command handler for the prune command
func Prune(parser *goopt.Parser, _ *goopt.Command) error {
	cfg, ok := goopt.GetStructCtxAs[*options.AppConfig](parser)
	if !ok {
		return errors.ErrFailedToGetConfig
	}
	return ExecutePruneCommand(cfg, &cfg.Prune)
}

// ExecutePruneCommand removes the unused keys from the configured dictionaries
func ExecutePruneCommand(cfg *options.AppConfig, cmd *options.PruneCmd) error {
	_, err := run(cfg, cmd.DryRun)
	return err
}

// Check is the command handler for the check command
func Check(parser *goopt.Parser, _ *goopt.Command) error {
	cfg, ok := goopt.GetStructCtxAs[*options.AppConfig](parser)
	if !ok {
		return errors.ErrFailedToGetConfig
	}
	return ExecuteCheckCommand(cfg, &cfg.Check)
}

// ExecuteCheckCommand reports, without writing, whether pruning would remove anything
func ExecuteCheckCommand(cfg *options.AppConfig, _ *options.CheckCmd) error {
	report, err := run(cfg, true)
	if err != nil {
		return err
	}

	if report.Changed() {
		return errors.ErrPruneRequired.WithArgs(report.Removed(), report.Source)
	}

	fmt.Fprintln(cfg.Out(), translator(cfg).T(messages.Keys.AppRenew.CheckPassed, report.Source))
	return nil
}

func run(cfg *options.AppConfig, dryRun bool) (*renew.Report, error) {
	runCfg, err := ResolveConfig(cfg)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(runCfg.Log.Level, runCfg.Log.Format)
	if err != nil {
		return nil, err
	}
	defer func() { _ = log.Sync() }()

	return renew.Run(cfg.Context(), runCfg,
		renew.WithLogger(log),
		renew.WithOutput(cfg.Out()),
		renew.WithTranslator(translator(cfg)),
		renew.WithDryRun(dryRun))
}

// ResolveConfig loads the configuration named by the --config flag, or found in the working
// directory, and applies the flags given on the command line over it.
func ResolveConfig(cfg *options.AppConfig) (*config.Config, error) {
	c, err := config.Load(cfg.Config)
	if err != nil {
		return nil, err
	}

	outputFollowsSrc := c.Output == c.Src
	if cfg.Src != "" {
		c.Src = cfg.Src
		if outputFollowsSrc {
			c.Output = c.Src
		}
	}
	if cfg.Output != "" {
		c.Output = cfg.Output
	}
	if len(cfg.Targets) > 0 {
		c.Targets = cfg.Targets
	}
	if cfg.FilesReg != "" {
		c.FilesReg = cfg.FilesReg
	}
	if len(cfg.Persisted) > 0 {
		c.PersistedMessages = cfg.Persisted
	}
	if len(cfg.PersistedPattern) > 0 {
		c.PersistedPatterns = cfg.PersistedPattern
	}
	if len(cfg.Exclude) > 0 {
		c.Exclude = cfg.Exclude
	}
	if len(cfg.Locales) > 0 {
		c.Locales = cfg.Locales
	}
	if cfg.BackupDir != "" {
		c.BackupDir = cfg.BackupDir
	}
	if cfg.Concurrency > 0 {
		c.Concurrency = cfg.Concurrency
	}
	if cfg.LogLevel != "" {
		c.Log.Level = cfg.LogLevel
	}
	if cfg.Verbose {
		c.Log.Level = "debug"
	}
	if cfg.LogFormat != "" {
		c.Log.Format = cfg.LogFormat
	}

	return c, nil
}

func translator(cfg *options.AppConfig) renew.Translator {
	if cfg.TR == nil {
		return messages.Bundle()
	}
	return cfg.TR
}
