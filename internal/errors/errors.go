package errors

import (
	"github.com/napalu/goopt/v2/i18n"

	"github.com/napalu/renew-locales/internal/messages"
)

var provider = i18n.NewBundleMessageProvider(messages.Bundle())

func newError(key string) *i18n.TrError {
	e := i18n.NewError(key)
	e.SetProvider(provider)
	return e
}

var (
	// ErrParseError is returned when a parse error occurs
	ErrParseError = newError(messages.Keys.AppError.ParseError)

	// ErrCommandFailed is returned when a command execution fails
	ErrCommandFailed = newError(messages.Keys.AppError.CommandFailed)

	// ErrFailedToGetConfig is returned when the parser carries no configuration
	ErrFailedToGetConfig = newError(messages.Keys.AppError.FailedToGetConfig)

	// ErrFailedToLoadConfig is returned when the configuration file cannot be read
	ErrFailedToLoadConfig = newError(messages.Keys.AppError.FailedToLoadConfig)

	// ErrUnknownLanguage is returned for an unsupported --language value
	ErrUnknownLanguage = newError(messages.Keys.AppError.UnknownLanguage)

	// ErrInvalidLogConfiguration is returned when the logger cannot be built
	ErrInvalidLogConfiguration = newError(messages.Keys.AppError.InvalidLogConfiguration)

	// Configuration errors

	// ErrNoSourcePath is returned when no base dictionary is configured
	ErrNoSourcePath = newError(messages.Keys.AppError.NoSourcePath)

	// ErrNoTargets is returned when no directory to scan is configured
	ErrNoTargets = newError(messages.Keys.AppError.NoTargets)

	// ErrInvalidFilesReg is returned when the file pattern does not compile
	ErrInvalidFilesReg = newError(messages.Keys.AppError.InvalidFilesReg)

	// ErrInvalidExcludePattern is returned when an exclude glob is malformed
	ErrInvalidExcludePattern = newError(messages.Keys.AppError.InvalidExcludePattern)

	// ErrInvalidPersistedPattern is returned when a persisted key glob is malformed
	ErrInvalidPersistedPattern = newError(messages.Keys.AppError.InvalidPersistedPattern)

	// Discovery and read errors

	// ErrFailedToReadDir is returned when a scanned directory cannot be listed
	ErrFailedToReadDir = newError(messages.Keys.AppError.FailedToReadDir)

	// ErrFailedToReadFile is returned when a matched file cannot be read
	ErrFailedToReadFile = newError(messages.Keys.AppError.FailedToReadFile)

	// Dictionary errors

	// ErrFailedToLoadDictionary is returned when a dictionary cannot be read or parsed
	ErrFailedToLoadDictionary = newError(messages.Keys.AppError.FailedToLoadDictionary)

	// ErrFailedToWriteDictionary is returned when a dictionary cannot be written
	ErrFailedToWriteDictionary = newError(messages.Keys.AppError.FailedToWriteDictionary)

	// ErrFailedToBackup is returned when the previous dictionary cannot be saved aside
	ErrFailedToBackup = newError(messages.Keys.AppError.FailedToBackup)

	// ErrFailedToExpandLocales is returned when a sibling locale glob is malformed
	ErrFailedToExpandLocales = newError(messages.Keys.AppError.FailedToExpandLocales)

	// ErrPruneRequired is returned by check when keys would be removed
	ErrPruneRequired = newError(messages.Keys.AppError.PruneRequired)
)
