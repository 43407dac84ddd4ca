package objects

import (
	"fmt"
	"strings"

	"github.com/mugit-vcs/mugit/internal/codec"
	"github.com/mugit-vcs/mugit/internal/hash"
)

// Commit is a snapshot record: a root tree, zero or more parent commits,
// authorship, and a message. Immutable once persisted.
type Commit struct {
	Tree      hash.Hash
	Parents   []hash.Hash
	Author    CommitUser
	Committer CommitUser
	Message   string
}

// NewCommit composes a commit value.
func NewCommit(tree hash.Hash, parents []hash.Hash, author, committer CommitUser, message string) *Commit {
	return &Commit{
		Tree:      tree,
		Parents:   parents,
		Author:    author,
		Committer: committer,
		Message:   message,
	}
}

// CommitFromBytes parses a canonical commit serialization.
func CommitFromBytes(data []byte) (*Commit, error) {
	payload, err := parseHeader(KindCommit, data)
	if err != nil {
		return nil, err
	}

	c := &Commit{}
	lines := strings.Split(string(payload), "\n")
	idx := 0
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "tree"):
			h, err := hash.FromHex(strings.TrimPrefix(line, "tree "))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrParse, err)
			}
			c.Tree = h
		case strings.HasPrefix(line, "parent"):
			h, err := hash.FromHex(strings.TrimPrefix(line, "parent "))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrParse, err)
			}
			c.Parents = append(c.Parents, h)
		case strings.HasPrefix(line, "author"):
			u, err := ParseCommitUser(line)
			if err != nil {
				return nil, err
			}
			c.Author = u
		case strings.HasPrefix(line, "committer"):
			u, err := ParseCommitUser(line)
			if err != nil {
				return nil, err
			}
			c.Committer = u
		}
		idx++
		if len(line) == 0 {
			break
		}
	}
	c.Message = strings.Join(lines[idx:], "\n")

	return c, nil
}

// CommitFromCompressed parses a zlib-compressed commit.
func CommitFromCompressed(data []byte) (*Commit, error) {
	raw, err := codec.Decompress(data)
	if err != nil {
		return nil, err
	}
	return CommitFromBytes(raw)
}

func (c *Commit) Kind() Kind { return KindCommit }

// Bytes returns the canonical serialization. The parent-less form carries
// no trailing newline after the message; the parent-bearing form does.
// The asymmetry is part of the wire format and must survive round trips.
func (c *Commit) Bytes() []byte {
	var body string
	if len(c.Parents) == 0 {
		body = fmt.Sprintf("tree %s\n%s\n%s\n\n%s",
			c.Tree.Hex(), c.Author.String(), c.Committer.String(), c.Message)
	} else {
		parents := make([]string, 0, len(c.Parents))
		for _, p := range c.Parents {
			parents = append(parents, fmt.Sprintf("parent %s", p.Hex()))
		}
		body = fmt.Sprintf("tree %s\n%s\n%s\n%s\n\n%s\n",
			c.Tree.Hex(), strings.Join(parents, "\n"),
			c.Author.String(), c.Committer.String(), c.Message)
	}
	return append(header(KindCommit, len(body)), body...)
}

func (c *Commit) Hash() hash.Hash {
	return hash.Sum(c.Bytes())
}

// LogEntry renders one history block for this commit. refs, when present,
// decorate the header line as "(ref ref)".
func (c *Commit) LogEntry(h hash.Hash, refs []string) string {
	refsString := ""
	if len(refs) > 0 {
		refsString = fmt.Sprintf("(%s)", strings.Join(refs, " "))
	}
	message := "    " + strings.ReplaceAll(c.Message, "\n", "\n    ")

	return fmt.Sprintf("commit %s %s\nAuthor: %s <%s>\nDate:   %s\n\n%s\n",
		h.Hex(), refsString, c.Author.Name, c.Author.Email,
		c.Author.When.Format("Mon Jan 2 15:04:05 2006 -0700"), message)
}
