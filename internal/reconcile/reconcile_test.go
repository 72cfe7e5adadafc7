package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/napalu/renew-locales/internal/errors"
	"github.com/napalu/renew-locales/internal/locale"
)

func mustParse(t *testing.T, doc string) *locale.Dictionary {
	t.Helper()
	d, err := locale.Parse([]byte(doc))
	require.NoError(t, err)
	return d
}

func mustAllowlist(t *testing.T, keys []string, patterns ...string) *Allowlist {
	t.Helper()
	a, err := NewAllowlist(keys, patterns)
	require.NoError(t, err)
	return a
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		used        []string
		persisted   []string
		patterns    []string
		wantKeys    []string
		wantRemoved []string
		wantMissing []string
		wantExist   int
	}{
		{
			name:        "used keys survive",
			source:      `{"a":"A","b":"B","c":"C"}`,
			used:        []string{"a", "c"},
			wantKeys:    []string{"a", "c"},
			wantRemoved: []string{"b"},
			wantExist:   2,
		},
		{
			name:        "persisted keys survive without usage",
			source:      `{"a":"A","b":"B","c":"C"}`,
			persisted:   []string{"b"},
			wantKeys:    []string{"b"},
			wantRemoved: []string{"a", "c"},
			wantExist:   1,
		},
		{
			name:        "persisted key missing from source",
			source:      `{"a":"A","b":"B"}`,
			used:        []string{"a"},
			persisted:   []string{"d"},
			wantKeys:    []string{"a"},
			wantRemoved: []string{"b"},
			wantMissing: []string{"d"},
			wantExist:   2,
		},
		{
			name:      "used and persisted overlap",
			source:    `{"name":"N","short_name":"S","description":"D"}`,
			used:      []string{"name", "short_name"},
			persisted: []string{"name", "short_name", "description"},
			wantKeys:  []string{"name", "short_name", "description"},
			wantExist: 3,
		},
		{
			name:        "persisted patterns",
			source:      `{"options_filter_ads":"1","options_filter_social":"2","options_title":"3","popup":"4"}`,
			used:        []string{"options_title"},
			patterns:    []string{"options_filter_*"},
			wantKeys:    []string{"options_filter_ads", "options_filter_social", "options_title"},
			wantRemoved: []string{"popup"},
			wantExist:   3,
		},
		{
			name:        "keeps source order",
			source:      `{"z":"1","m":"2","a":"3","q":"4"}`,
			used:        []string{"a", "z", "q"},
			wantKeys:    []string{"z", "a", "q"},
			wantRemoved: []string{"m"},
			wantExist:   3,
		},
		{
			name:        "empty usage removes everything",
			source:      `{"a":"A","b":"B"}`,
			wantKeys:    []string{},
			wantRemoved: []string{"a", "b"},
			wantExist:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mustParse(t, tt.source)
			res := Reconcile(Input{
				Source:    source,
				Used:      locale.NewKeySet(tt.used...),
				Allowlist: mustAllowlist(t, tt.persisted, tt.patterns...),
			})

			assert.Equal(t, tt.wantKeys, res.Dictionary.Keys())
			assert.Equal(t, tt.wantRemoved, res.Diagnostics.Removed)
			assert.Equal(t, tt.wantMissing, res.Diagnostics.Missing)
			assert.Equal(t, tt.wantExist, res.Diagnostics.Existing)
			assert.Equal(t, source.Len(), res.Diagnostics.Original)
			assert.Equal(t, len(tt.wantRemoved) > 0, res.Diagnostics.Changed())

			for _, key := range res.Dictionary.Keys() {
				want, ok := source.Get(key)
				require.True(t, ok, "key %q not in source", key)
				got, _ := res.Dictionary.Get(key)
				assert.Equal(t, string(want), string(got))
			}
		})
	}
}

func TestReconcile_Output(t *testing.T) {
	source := mustParse(t, `{"a":"A","b":"B","c":"C"}`)

	res := Reconcile(Input{
		Source:    source,
		Used:      locale.NewKeySet("a", "c"),
		Allowlist: mustAllowlist(t, nil),
	})

	out, err := res.Dictionary.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": \"A\",\n    \"c\": \"C\"\n}\n", string(out))

	// the source is left untouched
	assert.Equal(t, []string{"a", "b", "c"}, source.Keys())
}

func TestReconcile_Idempotent(t *testing.T) {
	source := mustParse(t, `{"a":"A","b":"B","c":"C","name":"N"}`)
	used := locale.NewKeySet("a", "c")
	allow := mustAllowlist(t, []string{"name", "ghost"})

	first := Reconcile(Input{Source: source, Used: used, Allowlist: allow})
	second := Reconcile(Input{Source: first.Dictionary, Used: used, Allowlist: allow})

	assert.Equal(t, first.Dictionary.Keys(), second.Dictionary.Keys())
	assert.Empty(t, second.Diagnostics.Removed)
	assert.False(t, second.Diagnostics.Changed())
}

func TestReconcile_SubsetOfSourceAndPersisted(t *testing.T) {
	source := mustParse(t, `{"a":"A","b":"B"}`)
	persisted := []string{"b", "x"}

	res := Reconcile(Input{
		Source:    source,
		Used:      locale.NewKeySet("a", "unknown"),
		Allowlist: mustAllowlist(t, persisted),
	})

	allowed := locale.Union(source.KeySet(), locale.NewKeySet(persisted...))
	for _, key := range res.Dictionary.Keys() {
		assert.True(t, allowed.Has(key), key)
	}
	assert.Equal(t, []string{"a", "b"}, res.Kept.Sorted())
}

func TestReconcile_NilInputs(t *testing.T) {
	res := Reconcile(Input{})
	assert.Equal(t, 0, res.Dictionary.Len())
	assert.Equal(t, 0, res.Diagnostics.Original)
	assert.Empty(t, res.Diagnostics.Removed)
}

func TestDiagnostics_SymmetricDifference(t *testing.T) {
	source := mustParse(t, `{"a":"A","b":"B","c":"C"}`)
	res := Reconcile(Input{
		Source:    source,
		Used:      locale.NewKeySet("a"),
		Allowlist: mustAllowlist(t, []string{"d"}),
	})

	assert.Equal(t, []string{"b", "c"}, res.Diagnostics.Removed)
	assert.Equal(t, []string{"d"}, res.Diagnostics.Missing)
	assert.Equal(t, []string{"b", "c", "d"}, res.Diagnostics.SymmetricDifference())
}

func TestNewAllowlist_InvalidPattern(t *testing.T) {
	_, err := NewAllowlist(nil, []string{"options_[a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidPersistedPattern))
}

func TestAllowlist_Matches(t *testing.T) {
	a := mustAllowlist(t, []string{"name"}, "options_*", "popup_{title,header}")

	assert.True(t, a.Matches("options_filters"))
	assert.True(t, a.Matches("popup_title"))
	assert.False(t, a.Matches("popup_footer"))
	assert.False(t, a.Matches("name"))

	var none *Allowlist
	assert.False(t, none.Matches("name"))
	assert.Nil(t, none.Keys())
}

func TestRestrict(t *testing.T) {
	d := mustParse(t, `{"a":"1","b":"2","c":"3","d":"4"}`)

	removed := Restrict(d, locale.NewKeySet("c", "a", "extra"))

	assert.Equal(t, []string{"b", "d"}, removed)
	assert.Equal(t, []string{"a", "c"}, d.Keys())
	assert.False(t, d.Has("extra"))
}
