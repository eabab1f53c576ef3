// Package adapter contains parsing and infrastructure adapters for the Heft CLI.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "github.com/mouse-blink/heft/internal/model"
)

// jsFileExtensions lists the source extensions a scan picks up.
var jsFileExtensions = map[string]struct{}{
	".js":  {},
	".jsx": {},
	".mjs": {},
	".cjs": {},
}

// skippedDirNames lists directories never worth descending into.
var skippedDirNames = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"__tests__":    {},
}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It intentionally hides direct `os`
// access so the workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get collects the JavaScript sources under the provided roots. A root
	// ending in /... is scanned recursively; exclude patterns are regular
	// expressions matched against absolute paths.
	Get(roots []m.Path, exclude ...string) ([]m.Source, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns a stable fingerprint (e.g. SHA-256) for the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the concrete SourceFSAdapter backed by the local
// filesystem.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects JavaScript source files for the provided roots and returns
// Source entries carrying absolute paths and content hashes. Duplicates
// reached through more than one root are returned once.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, exclude ...string) ([]m.Source, error) {
	if len(roots) == 0 {
		return []m.Source{}, nil
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var sources []m.Source

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			source, ok, err := a.processFilePath(rootPath, excludes)
			if err != nil {
				return nil, err
			}

			if ok {
				if _, exists := seen[string(source.Origin)]; !exists {
					seen[string(source.Origin)] = struct{}{}
					sources = append(sources, source)
				}
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if skipDir(path, excludes) {
					return filepath.SkipDir
				}

				return nil
			}

			source, ok, err := a.processFilePath(path, excludes)
			if err != nil {
				return err
			}

			if !ok {
				return nil
			}

			if _, exists := seen[string(source.Origin)]; exists {
				return nil
			}

			seen[string(source.Origin)] = struct{}{}
			sources = append(sources, source)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return sources, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func (a *LocalSourceFSAdapter) processFilePath(path string, excludes []*regexp.Regexp) (m.Source, bool, error) {
	if !isJSFile(path) {
		return m.Source{}, false, nil
	}

	if isTestFile(path) {
		return m.Source{}, false, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return m.Source{}, false, err
	}

	if matchesAny(absPath, excludes) {
		return m.Source{}, false, nil
	}

	hash, err := a.HashFile(m.Path(absPath))
	if err != nil {
		return m.Source{}, false, fmt.Errorf("hash error for %s: %w", absPath, err)
	}

	return m.Source{Origin: m.Path(absPath), Hash: hash}, true, nil
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}

// isJSFile reports whether path carries a JavaScript source extension.
func isJSFile(path string) bool {
	_, ok := jsFileExtensions[strings.ToLower(filepath.Ext(path))]

	return ok
}

// isTestFile reports whether path names a JavaScript test file. Test suites
// carry deliberate repetition that would drown the scores of the code under
// test, so scans leave them out.
func isTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return strings.HasSuffix(name, ".test") || strings.HasSuffix(name, ".spec")
}

func skipDir(path string, excludes []*regexp.Regexp) bool {
	if _, ok := skippedDirNames[filepath.Base(path)]; ok {
		return true
	}

	return matchesAny(path, excludes)
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func matchesAny(path string, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}
