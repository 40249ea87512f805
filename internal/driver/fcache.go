package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"pumlfmt/internal/project"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// ResultCache записывает дайджесты уже отформатированных документов на диск,
// чтобы повторные прогоны пропускали нетронутые файлы.
// Thread-safe for concurrent access.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload stores what we know about a clean document.
type cachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Path the digest was last seen at (informational only; the key is the
	// content digest, so renames still hit).
	Path string

	// SeenUnix is when the document was last confirmed clean.
	SeenUnix int64
}

// OpenResultCache initializes and returns a disk cache at the standard
// location ($XDG_CACHE_HOME/<app> or ~/.cache/<app>).
func OpenResultCache(app string) (*ResultCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

func (c *ResultCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "clean" — для удобства читаемости/очистки.
	return filepath.Join(c.dir, "clean", hexKey+".mp")
}

// MarkClean records that the document with the given content digest is
// already formatted.
func (c *ResultCache) MarkClean(key project.Digest, path string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	payload := cachePayload{
		Schema:   cacheSchemaVersion,
		Path:     path,
		SeenUnix: time.Now().Unix(),
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// IsClean reports whether the digest is recorded as already formatted.
func (c *ResultCache) IsClean(key project.Digest) (bool, error) {
	if c == nil || key.IsZero() {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, err
	}
	// Записи других схем считаем отсутствующими.
	return payload.Schema == cacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after formatter changes.
func (c *ResultCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
