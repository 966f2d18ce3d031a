package program

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ImportTable maps call-site names to qualified paths. Key order follows
// the document so that reverse lookups resolve ties deterministically.
type ImportTable struct {
	keys  []string
	paths map[string]string
}

// NewImportTable creates an empty table.
func NewImportTable() *ImportTable {
	return &ImportTable{paths: make(map[string]string)}
}

// Add appends an entry. Re-adding a key replaces its path but keeps its
// original position.
func (t *ImportTable) Add(name, path string) {
	if _, exists := t.paths[name]; !exists {
		t.keys = append(t.keys, name)
	}
	t.paths[name] = path
}

// Lookup returns the path mapped to name.
func (t *ImportTable) Lookup(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	path, ok := t.paths[name]
	return path, ok
}

// ReverseLookup returns the first key, in table order, whose path equals
// target.
func (t *ImportTable) ReverseLookup(target string) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, k := range t.keys {
		if t.paths[k] == target {
			return k, true
		}
	}
	return "", false
}

// Keys returns the table keys in document order.
func (t *ImportTable) Keys() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.keys...)
}

// Len returns the number of entries.
func (t *ImportTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// UnmarshalJSON implements json.Unmarshaler. Entries whose value is not a
// string are dropped.
func (t *ImportTable) UnmarshalJSON(data []byte) error {
	*t = *NewImportTable()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("imports must be an object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if path, ok := v.(string); ok {
			t.Add(key, path)
		}
	}

	_, err = dec.Token()
	return err
}
