package executable

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

func writeExecutable(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestAllScansPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dir := t.TempDir()
	writeExecutable(t, dir, "mytool")
	writeExecutable(t, dir, "othertool")
	// Non-executable files are skipped.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	ix := NewIndex("")
	names := ix.All()

	if !sort.StringsAreSorted(names) {
		t.Error("names not sorted")
	}
	if !ix.Contains("mytool") || !ix.Contains("othertool") {
		t.Errorf("missing expected executables: %v", names)
	}
	if ix.Contains("notes.txt") {
		t.Error("non-executable file indexed")
	}
}

func TestAllMemoized(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dir := t.TempDir()
	writeExecutable(t, dir, "first")
	t.Setenv("PATH", dir)

	ix := NewIndex("")
	_ = ix.All()

	// New executables appear only to a fresh Index.
	writeExecutable(t, dir, "second")
	if ix.Contains("second") {
		t.Error("scan ran twice on the same Index")
	}
	if !NewIndex("").Contains("second") {
		t.Error("fresh Index missed new executable")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dir := t.TempDir()
	writeExecutable(t, dir, "cachedtool")
	t.Setenv("PATH", dir)

	cache := filepath.Join(t.TempDir(), "cache.db")

	warm := NewIndex(cache)
	want := warm.All()

	// Second index with the same PATH should be served from the cache.
	cold := NewIndex(cache)
	got := cold.All()
	if len(got) != len(want) {
		t.Fatalf("cache round trip lost entries: %v vs %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiskCacheInvalidatedByPathChange(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dirA := t.TempDir()
	writeExecutable(t, dirA, "toola")
	cache := filepath.Join(t.TempDir(), "cache.db")

	t.Setenv("PATH", dirA)
	_ = NewIndex(cache).All()

	dirB := t.TempDir()
	writeExecutable(t, dirB, "toolb")
	t.Setenv("PATH", dirB)

	ix := NewIndex(cache)
	if ix.Contains("toola") || !ix.Contains("toolb") {
		t.Errorf("stale cache served after PATH change: %v", ix.All())
	}
}

func TestShellBuiltinsContainCd(t *testing.T) {
	found := false
	for _, b := range ShellBuiltins() {
		if b == "cd" {
			found = true
		}
	}
	if !found {
		t.Error("cd missing from shell builtins")
	}
}
