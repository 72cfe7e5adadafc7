// Package locale implements the locale dictionary: an ordered mapping from translation key
// to its message, loaded from and written back to a JSON message catalog.
//
// Values are kept as raw JSON so that a pruned dictionary carries every surviving entry
// exactly as the source had it, whether the entry is a plain string or an object such as
// {"message": "...", "description": "..."}.
package locale

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Indent is the indentation used when a dictionary is written.
const Indent = "    "

// Dictionary is a message catalog for one language. Keys keep the order in which they were
// first seen in the source document.
type Dictionary struct {
	entries *orderedmap.OrderedMap[string, json.RawMessage]
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: orderedmap.New[string, json.RawMessage]()}
}

// Parse decodes a JSON object into a dictionary. A key repeated in the document keeps its
// first position and its last value.
func Parse(data []byte) (*Dictionary, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("dictionary must be a JSON object")
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("dictionary is not valid JSON")
	}

	d := NewDictionary()
	if err := d.entries.UnmarshalJSON(trimmed); err != nil {
		return nil, err
	}

	return d, nil
}

// Load reads and parses the dictionary stored at path.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Set stores value under key, appending the key when it is new.
func (d *Dictionary) Set(key string, value json.RawMessage) {
	d.entries.Set(key, value)
}

// Get returns the raw value stored under key.
func (d *Dictionary) Get(key string) (json.RawMessage, bool) {
	return d.entries.Get(key)
}

// Has reports whether key is present.
func (d *Dictionary) Has(key string) bool {
	_, ok := d.entries.Get(key)
	return ok
}

// Delete removes key.
func (d *Dictionary) Delete(key string) {
	d.entries.Delete(key)
}

// Len returns the number of keys.
func (d *Dictionary) Len() int {
	return d.entries.Len()
}

// Keys returns the keys in dictionary order.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, d.entries.Len())
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// KeySet returns the keys as a set.
func (d *Dictionary) KeySet() KeySet {
	return NewKeySet(d.Keys()...)
}

// Marshal renders the dictionary as pretty-printed JSON indented with Indent, terminated by
// a newline. HTML characters are not escaped.
func (d *Dictionary) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	if d.entries.Len() == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("{\n")
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		key, err := encodeString(pair.Key)
		if err != nil {
			return nil, err
		}

		var value bytes.Buffer
		if err := json.Indent(&value, pair.Value, Indent, Indent); err != nil {
			return nil, fmt.Errorf("value of %q: %w", pair.Key, err)
		}

		buf.WriteString(Indent)
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value.Bytes())
		if pair.Next() != nil {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
