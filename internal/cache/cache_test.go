package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mizuleo/tstruct/internal/schema"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func usersTable() *schema.Table {
	return &schema.Table{
		Name: "users",
		Fields: []schema.Field{
			{Name: "id", Type: "Int", Nullable: false},
			{Name: "name", Type: "Varchar", Nullable: true},
			{Name: "profile", Type: "Json", Nullable: true},
		},
	}
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// ---------------------------------------------------------------------------
// Open / Close
// ---------------------------------------------------------------------------

func TestCacheOpenClose(t *testing.T) {
	tmpDir := t.TempDir()

	c, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer c.Close()

	cacheDir := filepath.Join(tmpDir, CacheDir)
	if _, err := os.Stat(cacheDir); os.IsNotExist(err) {
		t.Errorf("cache directory was not created")
	}

	wantPath := filepath.Join(cacheDir, CacheFile)
	if c.Path() != wantPath {
		t.Errorf("Path() = %q, want %q", c.Path(), wantPath)
	}
	if _, err := os.Stat(wantPath); os.IsNotExist(err) {
		t.Errorf("cache database was not created")
	}
}

func TestCacheReopen(t *testing.T) {
	tmpDir := t.TempDir()
	table := usersTable()
	checksum := table.Checksum()

	c, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	if err := c.Put(checksum, table); err != nil {
		t.Fatalf("failed to put snapshot: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("failed to close cache: %v", err)
	}

	// Reopen: the memory layer is gone, SQLite must still serve the entry.
	c2, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("failed to reopen cache: %v", err)
	}
	defer c2.Close()

	got, err := c2.Get(checksum)
	if err != nil {
		t.Fatalf("failed to get snapshot after reopen: %v", err)
	}
	if got == nil {
		t.Fatal("snapshot missing after reopen")
	}
	if !reflect.DeepEqual(got, table) {
		t.Errorf("snapshot mismatch after reopen:\n got %+v\nwant %+v", got, table)
	}
}

// ---------------------------------------------------------------------------
// Get / Put
// ---------------------------------------------------------------------------

func TestCachePutGet(t *testing.T) {
	c := openTestCache(t)
	table := usersTable()
	checksum := table.Checksum()

	if err := c.Put(checksum, table); err != nil {
		t.Fatalf("failed to put snapshot: %v", err)
	}

	got, err := c.Get(checksum)
	if err != nil {
		t.Fatalf("failed to get snapshot: %v", err)
	}
	if got == nil {
		t.Fatal("snapshot missing after put")
	}
	if !reflect.DeepEqual(got, table) {
		t.Errorf("snapshot mismatch:\n got %+v\nwant %+v", got, table)
	}

	// Second read exercises the memory layer path.
	again, err := c.Get(checksum)
	if err != nil {
		t.Fatalf("failed to get snapshot twice: %v", err)
	}
	if !reflect.DeepEqual(again, table) {
		t.Errorf("second read mismatch:\n got %+v\nwant %+v", again, table)
	}
}

func TestCacheGetMiss(t *testing.T) {
	c := openTestCache(t)

	got, err := c.Get("deadbeef")
	if err != nil {
		t.Fatalf("miss should not error: %v", err)
	}
	if got != nil {
		t.Errorf("miss returned a snapshot: %+v", got)
	}
}

func TestCachePutOverwrite(t *testing.T) {
	c := openTestCache(t)
	checksum := "abc123"

	first := usersTable()
	if err := c.Put(checksum, first); err != nil {
		t.Fatalf("failed to put first snapshot: %v", err)
	}

	second := &schema.Table{
		Name:   "t",
		Fields: []schema.Field{{Name: "x", Type: "Json", Nullable: true}},
	}
	if err := c.Put(checksum, second); err != nil {
		t.Fatalf("failed to overwrite snapshot: %v", err)
	}

	got, err := c.Get(checksum)
	if err != nil {
		t.Fatalf("failed to get snapshot: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("overwrite not visible:\n got %+v\nwant %+v", got, second)
	}
}

// ---------------------------------------------------------------------------
// Delete / Purge
// ---------------------------------------------------------------------------

func TestCacheDelete(t *testing.T) {
	c := openTestCache(t)
	table := usersTable()
	checksum := table.Checksum()

	if err := c.Put(checksum, table); err != nil {
		t.Fatalf("failed to put snapshot: %v", err)
	}
	if err := c.Delete(checksum); err != nil {
		t.Fatalf("failed to delete snapshot: %v", err)
	}

	got, err := c.Get(checksum)
	if err != nil {
		t.Fatalf("get after delete errored: %v", err)
	}
	if got != nil {
		t.Errorf("snapshot survived delete: %+v", got)
	}
}

func TestCachePurge(t *testing.T) {
	c := openTestCache(t)

	tables := []*schema.Table{
		usersTable(),
		{Name: "orders", Fields: []schema.Field{{Name: "placed", Type: "Date", Nullable: false}}},
	}
	for _, table := range tables {
		if err := c.Put(table.Checksum(), table); err != nil {
			t.Fatalf("failed to put snapshot for %s: %v", table.Name, err)
		}
	}

	n, err := c.Len()
	if err != nil {
		t.Fatalf("failed to count snapshots: %v", err)
	}
	if n != len(tables) {
		t.Fatalf("Len() = %d, want %d", n, len(tables))
	}

	if err := c.Purge(); err != nil {
		t.Fatalf("failed to purge: %v", err)
	}

	n, err = c.Len()
	if err != nil {
		t.Fatalf("failed to count snapshots after purge: %v", err)
	}
	if n != 0 {
		t.Errorf("Len() after purge = %d, want 0", n)
	}

	for _, table := range tables {
		got, err := c.Get(table.Checksum())
		if err != nil {
			t.Fatalf("get after purge errored: %v", err)
		}
		if got != nil {
			t.Errorf("snapshot for %s survived purge", table.Name)
		}
	}
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

func TestSerializeRoundTrip(t *testing.T) {
	table := usersTable()

	data, err := SerializeTable(table)
	if err != nil {
		t.Fatalf("failed to serialize: %v", err)
	}

	got, err := DeserializeTable(data)
	if err != nil {
		t.Fatalf("failed to deserialize: %v", err)
	}
	if !reflect.DeepEqual(got, table) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, table)
	}
}

func TestDeserializeInvalid(t *testing.T) {
	if _, err := DeserializeTable([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
