// Package messages holds the tool's own message catalog: the embedded locale files and
// typed access to their keys.
package messages

import (
	"embed"
	"sync"

	"github.com/napalu/goopt/v2/i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

var (
	bundle     *i18n.Bundle
	bundleErr  error
	bundleOnce sync.Once
)

// Bundle returns the catalog loaded from the embedded locales. It panics when the
// embedded files are broken, which can only happen at build time.
func Bundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle, bundleErr = i18n.NewBundleWithFS(localesFS, "locales")
	})
	if bundleErr != nil {
		panic(bundleErr)
	}
	return bundle
}

// Keys provides typed access to translation keys
var Keys = struct {
	AppConfig appConfigKeys
	AppRenew  appRenewKeys
	AppError  appErrorKeys
}{
	AppConfig: appConfigKeys{
		ConfigDesc:           "app.app_config.config_desc",
		SrcDesc:              "app.app_config.src_desc",
		TargetsDesc:          "app.app_config.targets_desc",
		OutputDesc:           "app.app_config.output_desc",
		FilesRegDesc:         "app.app_config.files_reg_desc",
		PersistedDesc:        "app.app_config.persisted_desc",
		PersistedPatternDesc: "app.app_config.persisted_pattern_desc",
		ExcludeDesc:          "app.app_config.exclude_desc",
		LocalesDesc:          "app.app_config.locales_desc",
		BackupDirDesc:        "app.app_config.backup_dir_desc",
		ConcurrencyDesc:      "app.app_config.concurrency_desc",
		DryRunDesc:           "app.app_config.dry_run_desc",
		VerboseDesc:          "app.app_config.verbose_desc",
		LogLevelDesc:         "app.app_config.log_level_desc",
		LogFormatDesc:        "app.app_config.log_format_desc",
		LanguageDesc:         "app.app_config.language_desc",
		HelpDesc:             "app.app_config.help_desc",
		PruneDesc:            "app.app_config.prune_desc",
		CheckDesc:            "app.app_config.check_desc",
	},
	AppRenew: appRenewKeys{
		Scanned:           "app.renew.scanned",
		ExistingKeys:      "app.renew.existing_keys",
		OldKeys:           "app.renew.old_keys",
		RemovedKeysNumber: "app.renew.removed_keys_number",
		RemovedKeys:       "app.renew.removed_keys",
		MissingKeys:       "app.renew.missing_keys",
		LocalePruned:      "app.renew.locale_pruned",
		DryRun:            "app.renew.dry_run",
		Success:           "app.renew.success",
		CheckPassed:       "app.renew.check_passed",
	},
	AppError: appErrorKeys{
		ParseError:              "app.error.parse_error",
		CommandFailed:           "app.error.command_failed",
		FailedToGetConfig:       "app.error.failed_to_get_config",
		FailedToLoadConfig:      "app.error.failed_to_load_config",
		NoSourcePath:            "app.error.no_source_path",
		NoTargets:               "app.error.no_targets",
		InvalidFilesReg:         "app.error.invalid_files_reg",
		InvalidExcludePattern:   "app.error.invalid_exclude_pattern",
		InvalidPersistedPattern: "app.error.invalid_persisted_pattern",
		FailedToReadDir:         "app.error.failed_to_read_dir",
		FailedToReadFile:        "app.error.failed_to_read_file",
		FailedToLoadDictionary:  "app.error.failed_to_load_dictionary",
		FailedToWriteDictionary: "app.error.failed_to_write_dictionary",
		FailedToBackup:          "app.error.failed_to_backup",
		FailedToExpandLocales:   "app.error.failed_to_expand_locales",
		PruneRequired:           "app.error.prune_required",
		UnknownLanguage:         "app.error.unknown_language",
		InvalidLogConfiguration: "app.error.invalid_log_configuration",
	},
}

type appConfigKeys struct {
	ConfigDesc           string
	SrcDesc              string
	TargetsDesc          string
	OutputDesc           string
	FilesRegDesc         string
	PersistedDesc        string
	PersistedPatternDesc string
	ExcludeDesc          string
	LocalesDesc          string
	BackupDirDesc        string
	ConcurrencyDesc      string
	DryRunDesc           string
	VerboseDesc          string
	LogLevelDesc         string
	LogFormatDesc        string
	LanguageDesc         string
	HelpDesc             string
	PruneDesc            string
	CheckDesc            string
}

type appRenewKeys struct {
	Scanned           string
	ExistingKeys      string
	OldKeys           string
	RemovedKeysNumber string
	RemovedKeys       string
	MissingKeys       string
	LocalePruned      string
	DryRun            string
	Success           string
	CheckPassed       string
}

type appErrorKeys struct {
	ParseError              string
	CommandFailed           string
	FailedToGetConfig       string
	FailedToLoadConfig      string
	NoSourcePath            string
	NoTargets               string
	InvalidFilesReg         string
	InvalidExcludePattern   string
	InvalidPersistedPattern string
	FailedToReadDir         string
	FailedToReadFile        string
	FailedToLoadDictionary  string
	FailedToWriteDictionary string
	FailedToBackup          string
	FailedToExpandLocales   string
	PruneRequired           string
	UnknownLanguage         string
	InvalidLogConfiguration string
}
