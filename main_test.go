package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestDefaultTACCacheHonorsEnv(t *testing.T) {
	t.Setenv("TACCACHE", "/tmp/tac-cache-test")
	assert.Equal(t, "/tmp/tac-cache-test", defaultTACCache())
}

func TestDefaultTACCacheFallsBack(t *testing.T) {
	t.Setenv("TACCACHE", "")
	got := defaultTACCache()
	if got == "" {
		t.Fatalf("expected a default cache directory")
	}
	if filepath.Base(got) != "tac" {
		t.Fatalf("expected cache dir to end in tac, got %q", got)
	}
}

func TestSourceFilesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.tac", "{ }")
	writeSource(t, dir, "a.tac", "{ }")
	writeSource(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.tac"), 0755))

	files, err := sourceFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.tac"), filepath.Join(dir, "b.tac")}, files)
}

func TestTranslateFileWritesOutputs(t *testing.T) {
	srcDir := t.TempDir()
	pkgDir := filepath.Join(t.TempDir(), "pkg")
	src := writeSource(t, srcDir, "prog.tac", "{ int a; float b; a = 1 + 2 * 3; }")

	cached, err := translateFile(pkgDir, src)
	require.NoError(t, err)
	assert.False(t, cached)

	out := outputPaths(pkgDir, "prog")
	code, err := os.ReadFile(out.code)
	require.NoError(t, err)
	assert.Equal(t, "L1:\n\tt1 = 2 * 3\n\ta = 1 + t1\nL2:\n", string(code))

	frame, err := os.ReadFile(out.frame)
	require.NoError(t, err)
	assert.Equal(t, "a\tint\t4\nb\tfloat\t12\nframe\t12\n", string(frame))

	cached, err = translateFile(pkgDir, src)
	require.NoError(t, err)
	assert.True(t, cached, "unchanged source should reuse its outputs")

	writeSource(t, srcDir, "prog.tac", "{ int a; a = 2; }")
	cached, err = translateFile(pkgDir, src)
	require.NoError(t, err)
	assert.False(t, cached)
	code, err = os.ReadFile(out.code)
	require.NoError(t, err)
	assert.Equal(t, "L1:\n\ta = 2\nL2:\n", string(code))
}

func TestTranslateFileFailureLeavesNoOutputs(t *testing.T) {
	srcDir := t.TempDir()
	pkgDir := t.TempDir()
	src := writeSource(t, srcDir, "prog.tac", "{ int a; a = 1; }")
	_, err := translateFile(pkgDir, src)
	require.NoError(t, err)

	writeSource(t, srcDir, "prog.tac", "{ a = 1; }")
	_, err = translateFile(pkgDir, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared identifier")
	assert.True(t, strings.HasPrefix(err.Error(), src+":1:3:"), err.Error())

	out := outputPaths(pkgDir, "prog")
	for _, path := range []string{out.code, out.frame, out.hash} {
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "%s should have been removed", path)
	}
}

func TestRunCountsFailures(t *testing.T) {
	srcDir := t.TempDir()
	cacheDir := t.TempDir()
	writeSource(t, srcDir, "good.tac", "{ int i; i = 0; while (i < 3) i = i + 1; }")
	writeSource(t, srcDir, "bad.tac", "{ break; }")

	failed, err := run(srcDir, cacheDir)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	pkgDir := pkgDirFor(cacheDir, srcDir)
	_, err = os.Stat(outputPaths(pkgDir, "good").code)
	assert.NoError(t, err)
	_, err = os.Stat(outputPaths(pkgDir, "bad").code)
	assert.True(t, os.IsNotExist(err))
}

func TestPkgDirSeparatesSameBaseName(t *testing.T) {
	root := t.TempDir()
	cacheDir := t.TempDir()
	a := filepath.Join(root, "a", "src")
	b := filepath.Join(root, "b", "src")

	assert.NotEqual(t, pkgDirFor(cacheDir, a), pkgDirFor(cacheDir, b))
	assert.Equal(t, pkgDirFor(cacheDir, a), pkgDirFor(cacheDir, filepath.Join(root, "b", "..", "a", "src")))
	assert.True(t, strings.HasPrefix(filepath.Base(pkgDirFor(cacheDir, a)), "src-"))
}

func TestRunKeepsSameBaseNameDirsApart(t *testing.T) {
	root := t.TempDir()
	cacheDir := t.TempDir()
	a := filepath.Join(root, "a", "src")
	b := filepath.Join(root, "b", "src")
	require.NoError(t, os.MkdirAll(a, 0755))
	require.NoError(t, os.MkdirAll(b, 0755))
	writeSource(t, a, "prog.tac", "{ int x; x = 1; }")
	writeSource(t, b, "other.tac", "{ int y; y = 2; }")

	failed, err := run(a, cacheDir)
	require.NoError(t, err)
	require.Zero(t, failed)

	old := time.Now().Add(-2 * STALE_AGE)
	aOut := outputPaths(pkgDirFor(cacheDir, a), "prog")
	require.NoError(t, os.Chtimes(aOut.hash, old, old))

	failed, err = run(b, cacheDir)
	require.NoError(t, err)
	require.Zero(t, failed)

	code, err := os.ReadFile(aOut.code)
	require.NoError(t, err)
	assert.Contains(t, string(code), "x = 1")
	_, err = os.Stat(outputPaths(pkgDirFor(cacheDir, b), "other").code)
	assert.NoError(t, err)
}

func TestRunMissingDirectory(t *testing.T) {
	_, err := run(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
}

func TestCleanupStaleOutputs(t *testing.T) {
	srcDir := t.TempDir()
	pkgDir := t.TempDir()
	keep := writeSource(t, srcDir, "keep.tac", "{ }")
	gone := writeSource(t, srcDir, "gone.tac", "{ }")
	for _, src := range []string{keep, gone} {
		_, err := translateFile(pkgDir, src)
		require.NoError(t, err)
	}

	old := time.Now().Add(-2 * STALE_AGE)
	for _, name := range []string{"keep", "gone"} {
		require.NoError(t, os.Chtimes(outputPaths(pkgDir, name).hash, old, old))
	}

	cleanupStale(pkgDir, []string{keep}, STALE_AGE)

	_, err := os.Stat(outputPaths(pkgDir, "keep").code)
	assert.NoError(t, err)
	_, err = os.Stat(outputPaths(pkgDir, "gone").code)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(outputPaths(pkgDir, "gone").hash)
	assert.True(t, os.IsNotExist(err))
}

func TestCleanupKeepsRecentOutputs(t *testing.T) {
	srcDir := t.TempDir()
	pkgDir := t.TempDir()
	src := writeSource(t, srcDir, "fresh.tac", "{ }")
	_, err := translateFile(pkgDir, src)
	require.NoError(t, err)

	cleanupStale(pkgDir, nil, STALE_AGE)
	_, err = os.Stat(outputPaths(pkgDir, "fresh").code)
	assert.NoError(t, err)
}

func TestCleanupWaitsForLock(t *testing.T) {
	srcDir := t.TempDir()
	pkgDir := t.TempDir()
	src := writeSource(t, srcDir, "gone.tac", "{ }")
	_, err := translateFile(pkgDir, src)
	require.NoError(t, err)
	out := outputPaths(pkgDir, "gone")
	old := time.Now().Add(-2 * STALE_AGE)
	require.NoError(t, os.Chtimes(out.hash, old, old))

	lock := flock.New(filepath.Join(pkgDir, ".lock"))
	require.NoError(t, lock.Lock())

	done := make(chan struct{})
	go func() {
		cleanupStale(pkgDir, nil, STALE_AGE)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("cleanup ran while the output lock was held")
	case <-time.After(100 * time.Millisecond):
	}
	_, err = os.Stat(out.code)
	assert.NoError(t, err)

	require.NoError(t, lock.Unlock())
	<-done
	_, err = os.Stat(out.hash)
	assert.True(t, os.IsNotExist(err))
}
