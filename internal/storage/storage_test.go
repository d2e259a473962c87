package storage_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe/internal/storage"
)

type record struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// runBackendTests runs a common suite against any Backend implementation.
func runBackendTests(t *testing.T, b storage.Backend) {
	t.Helper()

	t.Run("Load never saved", func(t *testing.T) {
		doc, err := b.Load("nothing")
		require.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Empty(t, doc)
	})

	t.Run("Save and Load", func(t *testing.T) {
		doc := storage.Document{}
		require.NoError(t, doc.Put("k1", record{Name: "hello", Items: []string{"a", "b"}}))
		require.NoError(t, doc.Put("k2", map[string]int{"count": 42}))
		require.NoError(t, b.Save("col", doc))

		loaded, err := b.Load("col")
		require.NoError(t, err)
		assert.Equal(t, []string{"k1", "k2"}, loaded.Keys())

		var got record
		ok, err := loaded.Get("k1", &got)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, record{Name: "hello", Items: []string{"a", "b"}}, got)
	})

	t.Run("Save replaces whole document", func(t *testing.T) {
		doc := storage.Document{}
		require.NoError(t, doc.Put("k3", record{Name: "only"}))
		require.NoError(t, b.Save("col", doc))

		loaded, err := b.Load("col")
		require.NoError(t, err)
		assert.Equal(t, []string{"k3"}, loaded.Keys())
	})

	t.Run("Save empty document", func(t *testing.T) {
		require.NoError(t, b.Save("col", storage.Document{}))
		loaded, err := b.Load("col")
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("Loaded document is a copy", func(t *testing.T) {
		doc := storage.Document{}
		require.NoError(t, doc.Put("k", record{Name: "orig"}))
		require.NoError(t, b.Save("copy", doc))

		loaded, err := b.Load("copy")
		require.NoError(t, err)
		require.NoError(t, loaded.Put("k", record{Name: "mutated"}))

		again, err := b.Load("copy")
		require.NoError(t, err)
		var got record
		_, err = again.Get("k", &got)
		require.NoError(t, err)
		assert.Equal(t, "orig", got.Name)
	})

	t.Run("Documents are independent", func(t *testing.T) {
		a := storage.Document{}
		require.NoError(t, a.Put("x", 1))
		require.NoError(t, b.Save("a", a))
		require.NoError(t, b.Save("b", storage.Document{}))

		loaded, err := b.Load("a")
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
	})
}

func TestFileBackend(t *testing.T) {
	b, err := storage.NewFileBackend(t.TempDir(), false)
	require.NoError(t, err)
	runBackendTests(t, b)
}

func TestFileBackendAtomic(t *testing.T) {
	dir := t.TempDir()
	b, err := storage.NewFileBackend(dir, true)
	require.NoError(t, err)
	runBackendTests(t, b)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp files must be cleaned up")
	}
}

func TestMemoryBackend(t *testing.T) {
	runBackendTests(t, storage.NewMemoryBackend())
}

func TestBoltBackend(t *testing.T) {
	b, err := storage.NewBoltBackend(filepath.Join(t.TempDir(), "test.bolt"))
	require.NoError(t, err)
	defer b.Close()
	runBackendTests(t, b)
}

func TestSqliteBackend(t *testing.T) {
	b, err := storage.OpenGormBackend("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer b.Close()
	runBackendTests(t, b)
}

func TestSqliteBackendLargeDocument(t *testing.T) {
	b, err := storage.OpenGormBackend("sqlite", filepath.Join(t.TempDir(), "large.db"))
	require.NoError(t, err)
	defer b.Close()

	// 3 bind parameters per row; one statement would pass SQLite's 32766 limit
	const n = 12000
	doc := storage.Document{}
	for i := 0; i < n; i++ {
		require.NoError(t, doc.Put(fmt.Sprintf("u%05d", i), record{Name: "x"}))
	}
	require.NoError(t, b.Save("users", doc))

	loaded, err := b.Load("users")
	require.NoError(t, err)
	assert.Len(t, loaded, n)

	// a second save replaces every row
	require.NoError(t, b.Save("users", storage.Document{"only": json.RawMessage(`{}`)}))
	loaded, err = b.Load("users")
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, loaded.Keys())
}

func TestNewFactory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"", "json", "memory", "bolt", "sqlite"} {
		b, err := storage.New(storage.Options{Backend: name, Dir: dir})
		require.NoError(t, err, name)
		require.NoError(t, b.Save("users", storage.Document{}))
		require.NoError(t, b.Close())
	}

	_, err := storage.New(storage.Options{Backend: "mongo", Dir: dir})
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestFileBackendMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	b, err := storage.NewFileBackend(dir, false)
	require.NoError(t, err)

	cases := map[string]string{
		"empty":     "",
		"truncated": `{"u1": {"i1": {"name": "sh`,
		"garbage":   "not json at all",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(content), 0o644))
			doc, err := b.Load(name)
			require.NoError(t, err)
			assert.Empty(t, doc)
		})
	}

	t.Run("null", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "null.json"), []byte("null"), 0o644))
		doc, err := b.Load("null")
		require.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Empty(t, doc)
	})
}

func TestFileBackendRejectsNonObjectDocument(t *testing.T) {
	dir := t.TempDir()
	b, err := storage.NewFileBackend(dir, false)
	require.NoError(t, err)

	cases := map[string]string{
		"array":  `[{"legacy": "data"}]`,
		"string": `"str"`,
		"number": `42`,
		"bool":   `true`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(content), 0o644))
			doc, err := b.Load(name)
			assert.ErrorIs(t, err, storage.ErrNotObject)
			assert.Nil(t, doc)
		})
	}
}

func TestFileBackendWrongNestingSurfacesOnGet(t *testing.T) {
	dir := t.TempDir()
	b, err := storage.NewFileBackend(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.json"), []byte(`{"u1": ["not", "a", "map"]}`), 0o644))

	doc, err := b.Load("items")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, doc.Keys())

	var partition map[string]record
	ok, err := doc.Get("u1", &partition)
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestFileBackendReadErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	b, err := storage.NewFileBackend(dir, false)
	require.NoError(t, err)
	// a directory where the document file should be cannot be read or written
	require.NoError(t, os.Mkdir(filepath.Join(dir, "users.json"), 0o755))

	_, err = b.Load("users")
	assert.Error(t, err)

	err = b.Save("users", storage.Document{})
	assert.ErrorContains(t, err, "write document users")
}

func TestFileBackendWritesIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	b, err := storage.NewFileBackend(dir, false)
	require.NoError(t, err)

	doc := storage.Document{}
	require.NoError(t, doc.Put("u1", map[string]record{"o1": {Name: "x", Items: []string{}}}))
	require.NoError(t, b.Save("outfits", doc))

	raw, err := os.ReadFile(filepath.Join(dir, "outfits.json"))
	require.NoError(t, err)
	var decoded map[string]map[string]record
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "x", decoded["u1"]["o1"].Name)
	assert.Contains(t, string(raw), "\n  ")
}

func TestDocumentHelpers(t *testing.T) {
	doc := storage.Document{}
	require.NoError(t, doc.Put("b", 2))
	require.NoError(t, doc.Put("a", 1))

	var seen []string
	require.NoError(t, doc.Scan(func(key string, raw json.RawMessage) error {
		seen = append(seen, key+"="+string(raw))
		return nil
	}))
	assert.Equal(t, []string{"a=1", "b=2"}, seen)

	var n int
	ok, err := doc.Get("missing", &n)
	assert.False(t, ok)
	assert.NoError(t, err)

	assert.True(t, doc.Delete("a"))
	assert.False(t, doc.Delete("a"))
	assert.Equal(t, []string{"b"}, doc.Keys())

	assert.Error(t, doc.Put("bad", make(chan int)))
}
