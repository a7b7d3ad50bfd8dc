package archive

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/dra/internal/logging"
	"github.com/FocuswithJustin/dra/internal/validation"
)

// DefaultCacheDir returns <user cache dir>/dra, falling back to the system
// temp directory when no user cache directory is available.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "dra")
}

// Materialize returns a path to an uncompressed SQLite store for path.
// Uncompressed stores are returned unchanged. Compressed stores are
// decompressed once into cacheDir, named by the BLAKE3 hash of the
// compressed file, and reused on later calls.
func Materialize(path, cacheDir string) (string, error) {
	if err := validation.ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid store path: %w", err)
	}

	r, err := NewReader(path)
	if err != nil {
		return "", err
	}
	compressed := r.Compressed()
	r.Close()
	if !compressed {
		return path, nil
	}

	sum, err := HashFile(path)
	if err != nil {
		return "", err
	}

	target := filepath.Join(cacheDir, sum+".db")
	if _, err := os.Stat(target); err == nil {
		logging.Debug("store_cache_hit", "path", path, "cached", target)
		return target, nil
	}

	if err := extract(path, cacheDir, target); err != nil {
		return "", err
	}
	logging.Info("store_cache_fill", "path", path, "cached", target)
	return target, nil
}

// HashFile returns the hex BLAKE3 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash store: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// extract decompresses path into target, writing through a temp file in
// cacheDir so a partial write is never visible under the final name.
func extract(path, cacheDir, target string) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	r, err := NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	tempFile, err := os.CreateTemp(cacheDir, ".store-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := io.Copy(tempFile, r); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("decompress store: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := checkSQLite(tempPath); err != nil {
		os.Remove(tempPath)
		return err
	}

	if err := os.Rename(tempPath, target); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to move store into cache: %w", err)
	}
	return nil
}

func checkSQLite(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open decompressed store: %w", err)
	}
	defer f.Close()

	fileType, err := validation.DetectStoreType(f, path)
	if err != nil {
		return err
	}
	if fileType != validation.FileTypeSQLite {
		return fmt.Errorf("decompressed store is %s, not sqlite", fileType)
	}
	return nil
}
