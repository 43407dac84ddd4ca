// Package refs resolves the symbolic HEAD reference and reads and writes
// branch tips under .git/refs/heads.
package refs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mugit-vcs/mugit/internal/hash"
)

// DefaultBranch is the branch a fresh repository points at.
const DefaultBranch = "master"

// ErrDetachedHead reports a HEAD that names a commit rather than a branch.
var ErrDetachedHead = errors.New("HEAD is detached")

// Head is the resolved state of .git/HEAD.
//
// A symbolic HEAD carries the branch name; the tip is present only once
// the branch has a commit. A detached HEAD stores 20 raw hash bytes in
// the HEAD file itself (an on-disk quirk of this format).
type Head struct {
	Branch   string
	Tip      hash.Hash
	HasTip   bool
	Detached bool
}

// Resolve reads and interprets .git/HEAD for projRoot. A missing HEAD
// file yields the zero Head.
func Resolve(projRoot string) (*Head, error) {
	headPath := filepath.Join(projRoot, ".git", "HEAD")
	raw, err := os.ReadFile(headPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Head{}, nil
		}
		return nil, fmt.Errorf("read HEAD: %w", err)
	}

	if !bytes.HasPrefix(raw, []byte("ref: ")) {
		head := &Head{Detached: true}
		if h, err := hash.FromBytes(raw); err == nil {
			head.Tip = h
			head.HasTip = true
		}
		return head, nil
	}

	refPath := strings.TrimSuffix(strings.TrimPrefix(string(raw), "ref: "), "\n")
	branch := strings.TrimPrefix(refPath, "refs/heads/")
	if branch == refPath {
		return nil, fmt.Errorf("parse HEAD: unexpected ref %q", refPath)
	}

	head := &Head{Branch: branch}
	tipRaw, err := os.ReadFile(filepath.Join(projRoot, ".git", refPath))
	if err != nil {
		if os.IsNotExist(err) {
			return head, nil // branch with no commits yet
		}
		return nil, fmt.Errorf("read %s: %w", refPath, err)
	}
	tip, err := hash.FromHex(strings.TrimSpace(string(tipRaw)))
	if err != nil {
		return nil, fmt.Errorf("parse branch tip: %w", err)
	}
	head.Tip = tip
	head.HasTip = true
	return head, nil
}

// WriteBranchTip overwrites the tip of branch with the 40-character hex
// form of h, no trailing newline. Advancing the tip is the linearization
// point of commit creation.
func WriteBranchTip(projRoot, branch string, h hash.Hash) error {
	headsDir := filepath.Join(projRoot, ".git", "refs", "heads")
	if err := os.MkdirAll(headsDir, 0755); err != nil {
		return fmt.Errorf("create refs/heads: %w", err)
	}
	if err := os.WriteFile(filepath.Join(headsDir, branch), []byte(h.Hex()), 0644); err != nil {
		return fmt.Errorf("write branch tip: %w", err)
	}
	return nil
}
