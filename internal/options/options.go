package options

import (
	"context"
	"io"
	"os"

	"github.com/napalu/goopt/v2"
	"github.com/napalu/goopt/v2/i18n"
)

// PruneCmd command configuration
type PruneCmd struct {
	DryRun bool `goopt:"short:n;desc:Report what would be removed without writing any file;descKey:app.app_config.dry_run_desc"`
	Exec   goopt.CommandFunc
}

// CheckCmd command configuration
type CheckCmd struct {
	Exec goopt.CommandFunc
}

// AppConfig main application configuration. Flags left empty keep the value from the
// configuration file, the environment or the defaults.
type AppConfig struct {
	Config           string          `goopt:"short:c;desc:Configuration file (yaml, toml or json);descKey:app.app_config.config_desc"`
	Src              string          `goopt:"short:s;desc:Base-language dictionary;descKey:app.app_config.src_desc"`
	Targets          []string        `goopt:"short:t;desc:Directories scanned for key usage;descKey:app.app_config.targets_desc"`
	Output           string          `goopt:"short:o;desc:File receiving the pruned dictionary;descKey:app.app_config.output_desc"`
	FilesReg         string          `goopt:"short:f;desc:Regular expression selecting the scanned files;descKey:app.app_config.files_reg_desc"`
	Persisted        []string        `goopt:"short:p;desc:Keys kept even when unused;descKey:app.app_config.persisted_desc"`
	PersistedPattern []string        `goopt:"short:P;desc:Glob patterns of keys kept even when unused;descKey:app.app_config.persisted_pattern_desc"`
	Exclude          []string        `goopt:"short:x;desc:Path patterns that are not scanned;descKey:app.app_config.exclude_desc"`
	Locales          []string        `goopt:"short:L;desc:Other-language dictionaries pruned to the same keys;descKey:app.app_config.locales_desc"`
	BackupDir        string          `goopt:"short:b;desc:Directory receiving a copy of every overwritten dictionary;descKey:app.app_config.backup_dir_desc"`
	Concurrency      int             `goopt:"short:j;desc:Number of files read at once;descKey:app.app_config.concurrency_desc"`
	Verbose          bool            `goopt:"short:v;desc:Enable verbose output;descKey:app.app_config.verbose_desc"`
	LogLevel         string          `goopt:"desc:Log level (debug, info, warn, error);descKey:app.app_config.log_level_desc"`
	LogFormat        string          `goopt:"desc:Log format (console, json);descKey:app.app_config.log_format_desc"`
	Language         string          `goopt:"short:l;desc:Language for output (en, de);descKey:app.app_config.language_desc"`
	Help             bool            `goopt:"short:h;desc:Show help;descKey:app.app_config.help_desc"`
	Prune            PruneCmd        `goopt:"kind:command;name:prune;desc:Remove unused keys from the dictionaries;descKey:app.app_config.prune_desc"`
	Check            CheckCmd        `goopt:"kind:command;name:check;desc:Fail when the dictionary holds unused keys;descKey:app.app_config.check_desc"`
	TR               i18n.Translator `ignore:"true"` // Translator for messages
	Ctx              context.Context `ignore:"true"`
	Stdout           io.Writer       `ignore:"true"`
}

// Context returns the context commands run in.
func (c *AppConfig) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Out returns where command output is printed.
func (c *AppConfig) Out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}
