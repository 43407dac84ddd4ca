// Package project locates the repository root and normalizes working-tree
// paths to repository-relative form. It also lays down the .git skeleton
// for a fresh repository.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoRepository reports that no ancestor directory carries a .git folder.
var ErrNoRepository = errors.New("no .git/ found")

// FindRoot walks up from the current working directory to the nearest
// ancestor containing a .git directory.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from dir to the nearest ancestor containing .git.
func FindRootFrom(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, ".git")); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoRepository
		}
		abs = parent
	}
}

// Rel converts path (absolute or relative to the current working
// directory) to its repository-relative form with forward slashes.
func Rel(path, projRoot string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(projRoot, abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", nil
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %s is outside the repository", path)
	}
	return filepath.ToSlash(rel), nil
}

/*
	mugit init
	.git -- HEAD
	     |- objects/
	     |    |- info/
	     |    |- pack/
	     |- refs/
	          |- heads/
	          |- tags/
*/

// Init creates the .git skeleton under path. Existing files and
// directories are left untouched; reinit reports whether .git already
// existed.
func Init(path, defaultBranch string) (reinit bool, err error) {
	gitDir := filepath.Join(path, ".git")
	if _, serr := os.Stat(gitDir); serr == nil {
		reinit = true
	} else if err := os.MkdirAll(gitDir, 0755); err != nil {
		return false, fmt.Errorf("create .git: %w", err)
	}

	headPath := filepath.Join(gitDir, "HEAD")
	if _, serr := os.Stat(headPath); os.IsNotExist(serr) {
		initial := fmt.Sprintf("ref: refs/heads/%s\n", defaultBranch)
		if err := os.WriteFile(headPath, []byte(initial), 0644); err != nil {
			return reinit, fmt.Errorf("write HEAD: %w", err)
		}
	}

	for _, dir := range []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "objects", "info"),
		filepath.Join(gitDir, "objects", "pack"),
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	} {
		if _, serr := os.Stat(dir); os.IsNotExist(serr) {
			if err := os.Mkdir(dir, 0755); err != nil {
				return reinit, fmt.Errorf("create %s: %w", dir, err)
			}
		}
	}

	return reinit, nil
}
