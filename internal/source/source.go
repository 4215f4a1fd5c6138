// Package source provides the file-system collaborators the front end
// treats as out of scope: reading source text, resolving the bare
// import path a `import "foo"` statement names to a concrete `.luka`
// file, copying a file, and enumerating a directory's source files.
// Per spec §5 the pipeline is single-threaded cooperative, so this
// package does no concurrent I/O of its own.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Extension is Luka's canonical source file extension.
const Extension = ".luka"

// Read reads the full contents of path as source text.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("source: read %s: %w", path, err)
	}
	return string(data), nil
}

// ResolveImport resolves a bare import string relative to
// importerDir: if raw already names an existing file, it is used
// as-is; otherwise Extension is appended.
func ResolveImport(importerDir, raw string) (string, error) {
	candidate := raw
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(importerDir, candidate)
	}
	if _, err := os.Stat(candidate); err == nil {
		return filepath.Clean(candidate), nil
	}
	withExt := candidate + Extension
	if _, err := os.Stat(withExt); err == nil {
		return filepath.Clean(withExt), nil
	}
	return "", fmt.Errorf("source: cannot resolve import %q from %s", raw, importerDir)
}

// Copy copies src to dst, preserving dst's directory but not src's
// permissions beyond the default mode the OS assigns to a new file.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("source: copy open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("source: copy create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("source: copy %s -> %s: %w", src, dst, err)
	}
	return nil
}

// EnumerateDir lists every *.luka file under root, recursively, in
// lexical order. The driver does not call it: it compiles a single
// entry file and the files that file imports.
func EnumerateDir(root string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "**/*.luka")
	if err != nil {
		return nil, fmt.Errorf("source: enumerate %s: %w", root, err)
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(root, m)
	}
	return paths, nil
}

// CanonicalPath returns path's absolute, symlink-resolved form, the
// identity the module table keys on.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// A file that does not exist yet (e.g. an output path) still
		// has a canonical parent; fall back to the absolute form.
		return abs, nil
	}
	return resolved, nil
}
