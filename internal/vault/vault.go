// Package vault is the file-system boundary: it enumerates the markdown
// notes under a root directory and reads, overwrites, and deletes them by
// vault-relative path.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrNotUTF8 is returned by Read for notes whose bytes are not valid UTF-8.
// Callers treat this as a per-note skip, never a fatal error.
var ErrNotUTF8 = errors.New("note content is not valid UTF-8")

// Vault provides access to the notes under a root directory.
type Vault struct {
	root string // absolute path
}

// Open resolves root to an absolute path and verifies it is a directory.
func Open(root string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("vault root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root is not a directory: %s", abs)
	}
	return &Vault{root: abs}, nil
}

// Root returns the absolute vault root path.
func (v *Vault) Root() string {
	return v.root
}

// Notes enumerates the vault's markdown files, sorted by relative path.
// When recursive is false only the top level is scanned. Hidden files and
// hidden directories (dotfiles, which include the review state files) are
// never treated as notes.
func (v *Vault) Notes(recursive bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if d.IsDir() {
			if p == v.root {
				return nil
			}
			if strings.HasPrefix(name, ".") || !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".md") {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning vault: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Read returns the full content of a note. Invalid UTF-8 yields ErrNotUTF8.
func (v *Vault) Read(rel string) (string, error) {
	abs, err := v.resolve(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("reading note %s: %w", rel, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("note %s: %w", rel, ErrNotUTF8)
	}
	return string(data), nil
}

// Write overwrites a note's content.
func (v *Vault) Write(rel, content string) error {
	abs, err := v.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing note %s: %w", rel, err)
	}
	return nil
}

// Delete removes a note from the vault.
func (v *Vault) Delete(rel string) error {
	abs, err := v.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("deleting note %s: %w", rel, err)
	}
	return nil
}

// StateFile returns the absolute path for a state file name in the vault
// root (progress record, config record, history database).
func (v *Vault) StateFile(name string) string {
	return filepath.Join(v.root, name)
}

// resolve maps a vault-relative path to an absolute one and rejects paths
// that escape the root.
func (v *Vault) resolve(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("empty note path")
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("note path escapes vault root: %s", rel)
	}
	return filepath.Join(v.root, cleaned), nil
}
