package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNotObject is returned when a stored document is valid JSON but not an object.
var ErrNotObject = errors.New("document is not a JSON object")

// Document is one persisted top-level JSON object. Values stay raw until a caller
// decodes them, so a document whose nesting is wrong still loads and the mismatch
// surfaces as a decode error at the call that reads it.
type Document map[string]json.RawMessage

// Get decodes the value at key into v. It reports false when the key is absent.
func (d Document) Get(key string, v any) (bool, error) {
	raw, ok := d[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode key %q: %w", key, err)
	}
	return true, nil
}

// Put encodes v and stores it at key, replacing any previous value.
func (d Document) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode key %q: %w", key, err)
	}
	d[key] = raw
	return nil
}

// Delete removes key and reports whether it was present.
func (d Document) Delete(key string) bool {
	if _, ok := d[key]; !ok {
		return false
	}
	delete(d, key)
	return true
}

// Keys returns the document's keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Scan calls fn for every key in sorted order, stopping at the first error.
func (d Document) Scan(fn func(key string, raw json.RawMessage) error) error {
	for _, k := range d.Keys() {
		if err := fn(k, d[k]); err != nil {
			return err
		}
	}
	return nil
}

func (d Document) clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
