package archive

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/dra/core/sqlite"
)

// createTestDB writes a small SQLite database and returns its bytes.
func createTestDB(t *testing.T, dir string) []byte {
	t.Helper()
	path := filepath.Join(dir, "plain.db")
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE books (code TEXT, long TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO books VALUES ('Gn', 'Genesis')`); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	db.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read database: %v", err)
	}
	return data
}

func writeXZ(t *testing.T, path string, data []byte) {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func writeGzip(t *testing.T, path string, data []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestMaterialize_Uncompressed(t *testing.T) {
	dir := t.TempDir()
	createTestDB(t, dir)
	plain := filepath.Join(dir, "plain.db")

	got, err := Materialize(plain, filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if got != plain {
		t.Errorf("Materialize() = %s, want %s unchanged", got, plain)
	}
	if _, err := os.Stat(filepath.Join(dir, "cache")); !os.IsNotExist(err) {
		t.Error("cache directory should not be created for uncompressed stores")
	}
}

func TestMaterialize_Compressed(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		write func(t *testing.T, path string, data []byte)
	}{
		{"xz", "dra.db.xz", writeXZ},
		{"gzip", "dra.db.gz", writeGzip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			data := createTestDB(t, dir)
			compressed := filepath.Join(dir, tt.file)
			tt.write(t, compressed, data)
			cacheDir := filepath.Join(dir, "cache")

			first, err := Materialize(compressed, cacheDir)
			if err != nil {
				t.Fatalf("Materialize() error = %v", err)
			}
			if filepath.Dir(first) != cacheDir {
				t.Errorf("cached store %s not under %s", first, cacheDir)
			}

			sum, err := HashFile(compressed)
			if err != nil {
				t.Fatalf("HashFile() error = %v", err)
			}
			if filepath.Base(first) != sum+".db" {
				t.Errorf("cached name = %s, want %s.db", filepath.Base(first), sum)
			}

			got, err := os.ReadFile(first)
			if err != nil {
				t.Fatalf("failed to read cached store: %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Error("decompressed store differs from the source database")
			}

			info, err := os.Stat(first)
			if err != nil {
				t.Fatalf("stat cached store: %v", err)
			}

			second, err := Materialize(compressed, cacheDir)
			if err != nil {
				t.Fatalf("second Materialize() error = %v", err)
			}
			if second != first {
				t.Errorf("second Materialize() = %s, want %s", second, first)
			}
			info2, err := os.Stat(second)
			if err != nil {
				t.Fatalf("stat cached store: %v", err)
			}
			if !info2.ModTime().Equal(info.ModTime()) {
				t.Error("cached store should be reused, not rewritten")
			}

			entries, err := os.ReadDir(cacheDir)
			if err != nil {
				t.Fatalf("read cache dir: %v", err)
			}
			for _, e := range entries {
				if strings.HasPrefix(e.Name(), ".store-") {
					t.Errorf("temp file left behind: %s", e.Name())
				}
			}
		})
	}
}

func TestMaterialize_NotSQLite(t *testing.T) {
	dir := t.TempDir()
	compressed := filepath.Join(dir, "notes.xz")
	writeXZ(t, compressed, []byte("In the beginning God created heaven, and earth."))

	if _, err := Materialize(compressed, filepath.Join(dir, "cache")); err == nil {
		t.Fatal("Materialize() should reject compressed non-sqlite content")
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "cache"))
	if len(entries) != 0 {
		t.Errorf("cache should be empty after failure, has %d entries", len(entries))
	}
}

func TestMaterialize_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Materialize("", dir); err == nil {
		t.Error("empty path should fail")
	}
	if _, err := Materialize(filepath.Join(dir, "missing.db"), dir); err == nil {
		t.Error("missing file should fail")
	}
}

func TestDefaultCacheDir(t *testing.T) {
	if got := DefaultCacheDir(); filepath.Base(got) != "dra" {
		t.Errorf("DefaultCacheDir() = %s, want a dra directory", got)
	}
}
