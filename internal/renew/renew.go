// Package renew runs the whole pruning pipeline: load the base dictionary, find the files
// to scan, collect the keys they use, reconcile, report and write.
//
// Nothing is written until every input has been read and every result computed, so a run
// that fails, or is cancelled, leaves all dictionaries as they were.
package renew

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/napalu/renew-locales/internal/config"
	"github.com/napalu/renew-locales/internal/discovery"
	"github.com/napalu/renew-locales/internal/errors"
	"github.com/napalu/renew-locales/internal/locale"
	"github.com/napalu/renew-locales/internal/messages"
	"github.com/napalu/renew-locales/internal/reconcile"
	"github.com/napalu/renew-locales/internal/usage"
)

// Translator renders a message of the tool's catalog.
type Translator interface {
	T(key string, args ...interface{}) string
}

// Report is the outcome of a run.
type Report struct {
	// Source and Output are the dictionary read and the dictionary written.
	Source string
	Output string
	// Files is the number of scanned files.
	Files       int
	Diagnostics reconcile.Diagnostics
	// Locales lists the other-language dictionaries pruned alongside, in path order.
	Locales []LocaleResult
	// Written lists the files actually written, empty for a dry run.
	Written []string
	// BackupDir is the backup session directory, when one was used.
	BackupDir string
	DryRun    bool
}

// Changed reports whether pruning removes anything from the base dictionary or from one of the
// other-language dictionaries.
func (r *Report) Changed() bool {
	return r.Removed() > 0
}

// Removed returns how many keys pruning removes across all dictionaries.
func (r *Report) Removed() int {
	n := len(r.Diagnostics.Removed)
	for _, l := range r.Locales {
		n += len(l.Removed)
	}
	return n
}

// LocaleResult is what pruning did to one other-language dictionary.
type LocaleResult struct {
	Path    string
	Removed []string
}

type runner struct {
	log    *zap.Logger
	out    io.Writer
	tr     Translator
	dryRun bool
}

// Option configures Run.
type Option func(*runner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithOutput sets where the diagnostics are printed. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(r *runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithTranslator sets the catalog the diagnostics are rendered with.
func WithTranslator(tr Translator) Option {
	return func(r *runner) {
		if tr != nil {
			r.tr = tr
		}
	}
}

// WithDryRun computes and reports everything but writes nothing.
func WithDryRun(dryRun bool) Option {
	return func(r *runner) {
		r.dryRun = dryRun
	}
}

type pending struct {
	path string
	dict *locale.Dictionary
}

// Run prunes the dictionary described by cfg. cfg is not modified.
func Run(ctx context.Context, cfg *config.Config, opts ...Option) (*Report, error) {
	r := &runner{
		log: zap.NewNop(),
		out: os.Stdout,
		tr:  messages.Bundle(),
	}
	for _, opt := range opts {
		opt(r)
	}

	c := *cfg
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	matcher, err := c.Matcher()
	if err != nil {
		return nil, err
	}
	allowlist, err := c.Allowlist()
	if err != nil {
		return nil, err
	}

	source, err := locale.Load(c.Src)
	if err != nil {
		return nil, errors.ErrFailedToLoadDictionary.WithArgs(c.Src).Wrap(err)
	}
	r.log.Debug("loaded source dictionary", zap.String("path", c.Src), zap.Int("keys", source.Len()))

	files, err := discovery.Files(ctx, c.Targets, matcher)
	if err != nil {
		return nil, err
	}
	r.log.Debug("discovered files", zap.Strings("targets", c.Targets), zap.Int("files", len(files)))

	used, err := usage.Collect(ctx, files, source.Keys(), c.Concurrency)
	if err != nil {
		return nil, err
	}
	r.log.Debug("collected used keys", zap.Int("keys", len(used)))

	res := reconcile.Reconcile(reconcile.Input{
		Source:    source,
		Used:      used,
		Allowlist: allowlist,
	})
	for _, key := range res.Diagnostics.Missing {
		r.log.Warn("persisted key missing from source dictionary", zap.String("key", key), zap.String("path", c.Src))
	}

	siblings, results, err := r.pruneLocales(c, res.Kept)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Source:      c.Src,
		Output:      c.Output,
		Files:       len(files),
		Diagnostics: res.Diagnostics,
		Locales:     results,
		DryRun:      r.dryRun,
	}
	r.printDiagnostics(report, source.Len())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.dryRun {
		r.printf(messages.Keys.AppRenew.DryRun, c.Output)
		return report, nil
	}

	writes := append([]pending{{path: c.Output, dict: res.Dictionary}}, siblings...)
	if err := r.write(c, writes, report); err != nil {
		return report, err
	}

	r.printf(messages.Keys.AppRenew.Success)
	return report, nil
}

// pruneLocales loads every other-language dictionary and restricts it to keep. The source
// and output dictionaries are skipped. Only changed dictionaries are returned for writing.
func (r *runner) pruneLocales(c config.Config, keep locale.KeySet) ([]pending, []LocaleResult, error) {
	if len(c.Locales) == 0 {
		return nil, nil, nil
	}

	paths, err := discovery.Expand(c.Locales)
	if err != nil {
		return nil, nil, err
	}

	var skip []os.FileInfo
	for _, p := range []string{c.Src, c.Output} {
		if info, err := os.Stat(p); err == nil {
			skip = append(skip, info)
		}
	}

	var writes []pending
	var results []LocaleResult
	for _, path := range paths {
		if sameFileAsAny(path, skip) {
			continue
		}

		d, err := locale.Load(path)
		if err != nil {
			return nil, nil, errors.ErrFailedToLoadDictionary.WithArgs(path).Wrap(err)
		}

		removed := reconcile.Restrict(d, keep)
		results = append(results, LocaleResult{Path: path, Removed: removed})
		if len(removed) > 0 {
			writes = append(writes, pending{path: path, dict: d})
		}
		r.log.Debug("pruned locale", zap.String("path", path), zap.Int("removed", len(removed)))
	}

	return writes, results, nil
}

// sameFileAsAny reports whether path is one of files, whichever way either was spelled.
func sameFileAsAny(path string, files []os.FileInfo) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	for _, f := range files {
		if os.SameFile(info, f) {
			return true
		}
	}
	return false
}

func (r *runner) printDiagnostics(report *Report, original int) {
	d := report.Diagnostics

	r.printf(messages.Keys.AppRenew.Scanned, report.Files, original)
	r.printf(messages.Keys.AppRenew.ExistingKeys, d.Existing)
	r.printf(messages.Keys.AppRenew.OldKeys, d.Original)
	r.printf(messages.Keys.AppRenew.RemovedKeysNumber, len(d.Removed))
	r.printf(messages.Keys.AppRenew.RemovedKeys, strings.Join(d.Removed, ", "))
	if len(d.Missing) > 0 {
		r.printf(messages.Keys.AppRenew.MissingKeys, strings.Join(d.Missing, ", "))
	}
	for _, l := range report.Locales {
		r.printf(messages.Keys.AppRenew.LocalePruned, l.Path, len(l.Removed))
	}
}

// write backs up every target and then saves all dictionaries together, so that a failure
// while preparing one of them leaves every target as it was.
func (r *runner) write(c config.Config, writes []pending, report *Report) error {
	if c.BackupDir != "" {
		session, err := locale.NewBackupSession(c.BackupDir)
		if err != nil {
			return errors.ErrFailedToBackup.WithArgs(c.BackupDir).Wrap(err)
		}
		for _, w := range writes {
			backup, err := session.Save(w.path)
			if err != nil {
				return errors.ErrFailedToBackup.WithArgs(w.path).Wrap(err)
			}
			if backup != "" {
				report.BackupDir = session.Dir()
				r.log.Info("backed up dictionary", zap.String("path", w.path), zap.String("backup", backup))
			}
		}
	}

	batch := make([]locale.Write, 0, len(writes))
	for _, w := range writes {
		batch = append(batch, locale.Write{Path: w.path, Dict: w.dict})
	}
	if failed, err := locale.SaveAll(batch); err != nil {
		return errors.ErrFailedToWriteDictionary.WithArgs(failed).Wrap(err)
	}

	for _, w := range writes {
		report.Written = append(report.Written, w.path)
		r.log.Info("wrote dictionary", zap.String("path", w.path), zap.Int("keys", w.dict.Len()))
	}
	return nil
}

func (r *runner) printf(key string, args ...interface{}) {
	_, _ = io.WriteString(r.out, r.tr.T(key, args...)+"\n")
}
