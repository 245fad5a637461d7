// Package executable indexes the commands reachable through PATH. Typo rules
// match a mistyped program name against this index.
//
// Scanning every PATH directory on each invocation is the slowest thing a
// correction pass does, so the scan result is memoized per process and cached
// on disk keyed by a hash of the PATH value and directory mtimes. A stale or
// unreadable cache degrades to a fresh scan, never an error.
package executable

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"oops/internal/logger"
)

var executablesBucket = []byte("executables")

// Index enumerates executables on PATH.
type Index struct {
	cachePath string

	once  sync.Once
	names []string
}

// NewIndex creates an index backed by the given cache database path. An empty
// path disables the disk cache.
func NewIndex(cachePath string) *Index {
	return &Index{cachePath: cachePath}
}

// All returns the names of every executable on PATH, sorted and deduplicated.
// The scan runs at most once per Index.
func (ix *Index) All() []string {
	ix.once.Do(func() {
		key := ix.cacheKey()
		if names, ok := ix.fromCache(key); ok {
			ix.names = names
			return
		}
		ix.names = scanPath()
		ix.toCache(key, ix.names)
	})
	return ix.names
}

// Contains reports whether name is an executable on PATH.
func (ix *Index) Contains(name string) bool {
	for _, n := range ix.All() {
		if n == name {
			return true
		}
	}
	return false
}

// cacheKey hashes the PATH value together with each directory's mtime, so the
// cache invalidates when anything is installed or removed.
func (ix *Index) cacheKey() string {
	path := os.Getenv("PATH")
	h := xxhash.New()
	_, _ = h.WriteString(path)
	for _, dir := range filepath.SplitList(path) {
		if info, err := os.Stat(dir); err == nil {
			_, _ = h.WriteString(fmt.Sprintf("|%s:%d", dir, info.ModTime().UnixNano()))
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func (ix *Index) fromCache(key string) ([]string, bool) {
	if ix.cachePath == "" {
		return nil, false
	}
	db, err := openCache(ix.cachePath)
	if err != nil {
		logger.Debug("executable cache unavailable", "error", err)
		return nil, false
	}
	defer db.Close()

	var names []string
	found := false
	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(executablesBucket)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(key))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &names); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		logger.Debug("executable cache read failed", "error", err)
		return nil, false
	}
	return names, found
}

func (ix *Index) toCache(key string, names []string) {
	if ix.cachePath == "" {
		return
	}
	db, err := openCache(ix.cachePath)
	if err != nil {
		logger.Debug("executable cache unavailable", "error", err)
		return
	}
	defer db.Close()

	raw, err := json.Marshal(names)
	if err != nil {
		return
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(executablesBucket)
		if err != nil {
			return err
		}
		// One entry is enough; earlier PATH generations are dead keys.
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if string(k) != key {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return b.Put([]byte(key), raw)
	})
	if err != nil {
		logger.Debug("executable cache write failed", "error", err)
	}
}

func openCache(path string) (*bbolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return bbolt.Open(path, 0600, &bbolt.Options{Timeout: 200 * time.Millisecond})
}

// scanPath walks every PATH directory collecting executable entries.
func scanPath() []string {
	seen := map[string]struct{}{}
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if runtime.GOOS == "windows" {
				name = strings.TrimSuffix(name, ".exe")
			} else if info, err := entry.Info(); err != nil || info.Mode()&0111 == 0 {
				continue
			}
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ShellBuiltins are command words the PATH scan can never see but that users
// mistype just as often.
func ShellBuiltins() []string {
	return []string{
		"alias", "bg", "cd", "command", "declare", "echo", "eval", "exec",
		"exit", "export", "fg", "hash", "history", "jobs", "kill", "popd",
		"pushd", "pwd", "read", "set", "source", "type", "ulimit", "umask",
		"unalias", "unset", "wait",
	}
}
