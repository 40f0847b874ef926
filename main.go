package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
)

var SRC_SUFFIX = ".tac"
var CODE_SUFFIX = ".3ac"
var FRAME_SUFFIX = ".frame"
var HASH_SUFFIX = ".hash"

// Outputs of deleted sources are kept this long before cleanup.
var STALE_AGE = 7 * 24 * time.Hour

// defaultTACCache gets env variable TACCACHE
// if it is not set sets it to default value for windows, mac, linux
func defaultTACCache() string {
	if env := os.Getenv("TACCACHE"); env != "" {
		return env
	}

	homeDir, _ := os.UserHomeDir()
	var taccache string
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LocalAppData"); localAppData != "" {
			taccache = filepath.Join(localAppData, "tac")
			return taccache
		}
		taccache = filepath.Join(homeDir, "AppData", "Local", "tac")

	case "darwin":
		taccache = filepath.Join(homeDir, "Library", "Caches", "tac")

	default: // Linux and others
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			taccache = filepath.Join(xdg, "tac")
			return taccache
		}
		taccache = filepath.Join(homeDir, ".cache", "tac")
	}

	os.Setenv("TACCACHE", taccache)
	return taccache
}

// sourceFiles returns the sorted paths of all source files directly in dir.
func sourceFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			// TODO translate sources in subdirectories into matching cache subdirectories
			continue
		}
		if strings.HasSuffix(entry.Name(), SRC_SUFFIX) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// run translates every source file in dir into its directory under cacheDir
// and returns the number of files that failed.
func run(dir, cacheDir string) (int, error) {
	files, err := sourceFiles(dir)
	if err != nil {
		return 0, fmt.Errorf("read source directory: %w", err)
	}

	pkgDir := pkgDirFor(cacheDir, dir)
	failed := 0
	for _, file := range files {
		cached, err := translateFile(pkgDir, file)
		name := strings.TrimSuffix(filepath.Base(file), SRC_SUFFIX)
		switch {
		case err != nil:
			fmt.Printf("⚠️ %v\n", err)
			failed++
		case cached:
			fmt.Printf("✅ %s is up to date\n", name)
		default:
			fmt.Printf("✅ Translated %s -> %s\n", filepath.Base(file), filepath.Join(pkgDir, name+CODE_SUFFIX))
		}
	}

	cleanupStale(pkgDir, files, STALE_AGE)
	return failed, nil
}

func main() {
	var cwd string
	var err error
	if len(os.Args) > 1 {
		if os.Args[1] == "-version" || os.Args[1] == "--version" {
			printVersion()
			return
		}
		cwd = os.Args[1]
	} else {
		cwd, err = os.Getwd()
		if err != nil {
			fmt.Printf("Error getting current working directory: %v\n", err)
			os.Exit(1)
		}
	}

	cwd, err = filepath.Abs(cwd)
	if err != nil {
		fmt.Printf("Error resolving %s: %v\n", cwd, err)
		os.Exit(1)
	}
	fmt.Println("Current working directory is", cwd)

	taccache := defaultTACCache()
	fmt.Printf("Using TACCACHE: %s\n", taccache)
	if err := os.MkdirAll(taccache, 0755); err != nil {
		fmt.Printf("Error creating TACCACHE directory: %v\n", err)
		os.Exit(1)
	}

	failed, err := run(cwd, taccache)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		fmt.Printf("%d file(s) failed to translate\n", failed)
		os.Exit(1)
	}
}
