// Package reconcile builds the pruned dictionary from the source dictionary, the set of used
// keys and the persisted allowlist. It performs no I/O.
package reconcile

import (
	"sort"

	"github.com/gobwas/glob"

	"github.com/napalu/renew-locales/internal/errors"
	"github.com/napalu/renew-locales/internal/locale"
)

// Allowlist holds the keys that survive pruning whether or not they are used.
type Allowlist struct {
	keys     []string
	patterns []glob.Glob
}

// NewAllowlist returns an allowlist of the literal keys plus every key matching one of the
// glob patterns.
func NewAllowlist(keys []string, patterns []string) (*Allowlist, error) {
	a := &Allowlist{keys: keys}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.ErrInvalidPersistedPattern.WithArgs(p).Wrap(err)
		}
		a.patterns = append(a.patterns, g)
	}
	return a, nil
}

// Keys returns the literal persisted keys.
func (a *Allowlist) Keys() []string {
	if a == nil {
		return nil
	}
	return a.keys
}

// Matches reports whether key is kept by a persisted pattern.
func (a *Allowlist) Matches(key string) bool {
	if a == nil {
		return false
	}
	for _, g := range a.patterns {
		if g.Match(key) {
			return true
		}
	}
	return false
}

// Input is what a reconciliation works on.
type Input struct {
	Source    *locale.Dictionary
	Used      locale.KeySet
	Allowlist *Allowlist
}

// Diagnostics describes a reconciliation.
type Diagnostics struct {
	// Existing is the number of kept keys: used, persisted or matched by a persisted pattern.
	Existing int
	// Original is the number of keys in the source dictionary.
	Original int
	// Removed lists, sorted, the source keys that were dropped.
	Removed []string
	// Missing lists, sorted, the persisted keys that the source dictionary does not have.
	Missing []string
}

// Changed reports whether the output differs from the source.
func (d Diagnostics) Changed() bool {
	return len(d.Removed) > 0
}

// SymmetricDifference returns the keys present in exactly one of the kept key set and the
// source key set, sorted. That is every removed key plus every missing persisted key.
func (d Diagnostics) SymmetricDifference() []string {
	keys := make([]string, 0, len(d.Removed)+len(d.Missing))
	keys = append(keys, d.Removed...)
	keys = append(keys, d.Missing...)
	sort.Strings(keys)
	return keys
}

// Result is the pruned dictionary and what happened to produce it.
type Result struct {
	Dictionary  *locale.Dictionary
	Kept        locale.KeySet
	Diagnostics Diagnostics
}

// Reconcile keeps every source key that is used or persisted, in source order, with its
// source value. Persisted keys absent from the source are not invented; they are reported
// as missing.
func Reconcile(in Input) Result {
	source := in.Source
	if source == nil {
		source = locale.NewDictionary()
	}

	persisted := locale.NewKeySet(in.Allowlist.Keys()...)
	wanted := locale.Union(in.Used, persisted)

	out := locale.NewDictionary()
	kept := locale.NewKeySet()
	var removed []string
	for _, key := range source.Keys() {
		if !wanted.Has(key) && !in.Allowlist.Matches(key) {
			removed = append(removed, key)
			continue
		}
		value, _ := source.Get(key)
		out.Set(key, value)
		kept.Add(key)
	}

	var missing []string
	for key := range persisted {
		if !source.Has(key) {
			missing = append(missing, key)
		}
	}
	sort.Strings(removed)
	sort.Strings(missing)

	return Result{
		Dictionary: out,
		Kept:       kept,
		Diagnostics: Diagnostics{
			Existing: len(kept) + len(missing),
			Original: source.Len(),
			Removed:  removed,
			Missing:  missing,
		},
	}
}

// Restrict removes from d every key not in keep and returns the removed keys, sorted.
// Keys are never added.
func Restrict(d *locale.Dictionary, keep locale.KeySet) []string {
	var removed []string
	for _, key := range d.Keys() {
		if !keep.Has(key) {
			d.Delete(key)
			removed = append(removed, key)
		}
	}
	sort.Strings(removed)
	return removed
}
