package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/napalu/goopt/v2"
	"github.com/napalu/goopt/v2/i18n"
	"golang.org/x/text/language"

	"github.com/napalu/renew-locales/internal/commands"
	"github.com/napalu/renew-locales/internal/errors"
	"github.com/napalu/renew-locales/internal/messages"
	"github.com/napalu/renew-locales/internal/options"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	cfg := &options.AppConfig{Ctx: ctx}

	// Assign command functions
	cfg.Prune.Exec = commands.Prune
	cfg.Check.Exec = commands.Check

	bundle := messages.Bundle()
	cfg.TR = bundle

	parser, err := goopt.NewParserFromStruct(cfg,
		goopt.WithFlagNameConverter(goopt.ToKebabCase),
		goopt.WithCommandNameConverter(goopt.ToKebabCase),
		goopt.WithUserBundle(bundle))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	success := parser.Parse(args)

	// Handle language switching
	if cfg.Language != "" && cfg.Language != bundle.GetDefaultLanguage().String() {
		lang := parseLanguage(cfg.Language)
		if lang == language.Und {
			fmt.Fprintln(os.Stderr, errors.ErrUnknownLanguage.WithArgs(cfg.Language))
			return 1
		}
		bundle.SetDefaultLanguage(lang)
		// goopt's own messages follow the same language
		i18n.Default().SetDefaultLanguage(lang)
	}

	if cfg.Help {
		parser.PrintUsageWithGroups(os.Stdout)
		return 0
	}

	if !success {
		for _, err := range parser.GetErrors() {
			fmt.Fprintln(os.Stderr, errors.ErrParseError.WithArgs(err))
			fmt.Fprintln(os.Stderr)
		}
		parser.PrintUsageWithGroups(os.Stderr)
		return 1
	}

	// Without a command the tool prunes
	if !parser.HasCommand("prune") && !parser.HasCommand("check") {
		if err := commands.ExecutePruneCommand(cfg, &cfg.Prune); err != nil {
			fmt.Fprintln(os.Stderr, errors.ErrCommandFailed.WithArgs("prune", err))
			return 1
		}
		return 0
	}

	if errCount := parser.ExecuteCommands(); errCount > 0 {
		for _, cmdErr := range parser.GetCommandExecutionErrors() {
			fmt.Fprintln(os.Stderr, errors.ErrCommandFailed.WithArgs(cmdErr.Key, cmdErr.Value))
		}
		return 1
	}

	return 0
}

func parseLanguage(lang string) language.Tag {
	switch strings.ToLower(lang) {
	case "en":
		return language.English
	case "de":
		return language.German
	default:
		return language.Und
	}
}
