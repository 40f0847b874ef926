package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/thiremani/tac/ast"
	"github.com/thiremani/tac/compiler"
)

// pkgDirFor names the cache directory for the sources in dir. The base name
// keeps it readable; the hash of the absolute path keeps directories that
// share a base name apart.
func pkgDirFor(cacheDir, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(cacheDir, filepath.Base(abs)+"-"+hex.EncodeToString(sum[:6]))
}

// outputs are the files kept in the cache for one source file. The hash file
// is written last and acts as the completion marker.
type outputs struct {
	code  string
	frame string
	hash  string
}

func outputPaths(pkgDir, name string) outputs {
	base := filepath.Join(pkgDir, name)
	return outputs{
		code:  base + CODE_SUFFIX,
		frame: base + FRAME_SUFFIX,
		hash:  base + HASH_SUFFIX,
	}
}

func (o outputs) remove() {
	for _, path := range []string{o.hash, o.code, o.frame} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("warning: failed to remove %s: %v\n", path, err)
		}
	}
}

// sourceHash hashes the source together with the translator version, so a new
// build never reuses output of an older one.
func sourceHash(src []byte) string {
	h := sha256.New()
	h.Write([]byte(Version))
	h.Write([]byte(Commit))
	h.Write(src)
	return hex.EncodeToString(h.Sum(nil))
}

// frameMap lists every declared variable with its type and frame offset,
// followed by the total frame size.
func frameMap(prog *ast.Program) string {
	var sb strings.Builder
	for _, d := range prog.Decls {
		fmt.Fprintf(&sb, "%s\t%s\t%d\n", d.Name, d.Type(), d.Offset)
	}
	fmt.Fprintf(&sb, "frame\t%d\n", prog.FrameSize)
	return sb.String()
}

// translateFile translates srcPath into pkgDir. It reports cached when the
// outputs of an identical earlier translation were reused. A file lock on
// pkgDir ensures concurrent runs see either complete outputs or none.
func translateFile(pkgDir, srcPath string) (cached bool, err error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", srcPath, err)
	}
	if err := os.MkdirAll(pkgDir, 0755); err != nil {
		return false, fmt.Errorf("create output dir: %w", err)
	}

	lock := flock.New(filepath.Join(pkgDir, ".lock"))
	if err := lock.Lock(); err != nil {
		return false, fmt.Errorf("acquire output lock: %w", err)
	}
	defer lock.Unlock()

	name := strings.TrimSuffix(filepath.Base(srcPath), SRC_SUFFIX)
	out := outputPaths(pkgDir, name)
	fullHash := sourceHash(src)

	if stored, err := os.ReadFile(out.hash); err == nil && string(stored) == fullHash {
		if _, err := os.Stat(out.code); err == nil {
			return true, nil
		}
	}

	// Drop the completion marker first so a failed run never looks cached.
	out.remove()

	res, err := compiler.Translate(srcPath, string(src))
	if err != nil {
		return false, err
	}

	if err := os.WriteFile(out.code, []byte(res.Code.String()), 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", out.code, err)
	}
	if err := os.WriteFile(out.frame, []byte(frameMap(res.Program)), 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", out.frame, err)
	}
	if err := os.WriteFile(out.hash, []byte(fullHash), 0644); err != nil {
		return false, fmt.Errorf("write hash file: %w", err)
	}
	return false, nil
}

// cleanupStale removes outputs whose source file is gone. Only outputs older
// than minAge are deleted, since a concurrent run may have just written them.
// It holds the same lock as translateFile.
func cleanupStale(pkgDir string, sources []string, minAge time.Duration) {
	entries, err := os.ReadDir(pkgDir)
	if err != nil {
		return
	}

	lock := flock.New(filepath.Join(pkgDir, ".lock"))
	if err := lock.Lock(); err != nil {
		fmt.Printf("warning: skipping cleanup of %s: %v\n", pkgDir, err)
		return
	}
	defer lock.Unlock()

	live := make(map[string]bool, len(sources))
	for _, src := range sources {
		live[strings.TrimSuffix(filepath.Base(src), SRC_SUFFIX)] = true
	}

	cutoff := time.Now().Add(-minAge)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), HASH_SUFFIX) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), HASH_SUFFIX)
		if live[name] {
			continue
		}
		if info, err := e.Info(); err == nil && info.ModTime().Before(cutoff) {
			outputPaths(pkgDir, name).remove()
		}
	}
}
