package objects

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mugit-vcs/mugit/internal/hash"
)

const commitFixture = "commit 228\x00" +
	"tree 411b074c90e611e12b9afee191124dbe4c755370\n" +
	"parent 0b326340dcedb7a2782beb8bed4d1b5812ad4243\n" +
	"author saiton03 <saiton15603@gmail.com> 1633325813 +0900\n" +
	"committer saiton 03 <saiton15603@gmail.com> 1633332967 +0900\n" +
	"\n" +
	"multiple\nlines\n"

func TestCommitFromBytes(t *testing.T) {
	c, err := CommitFromBytes([]byte(commitFixture))
	require.NoError(t, err)

	assert.Equal(t, mustHash(t, "411b074c90e611e12b9afee191124dbe4c755370"), c.Tree)
	require.Len(t, c.Parents, 1)
	assert.Equal(t, mustHash(t, "0b326340dcedb7a2782beb8bed4d1b5812ad4243"), c.Parents[0])

	assert.Equal(t, RoleAuthor, c.Author.Role)
	assert.Equal(t, "saiton03", c.Author.Name)
	assert.Equal(t, int64(1633325813), c.Author.When.Unix())

	assert.Equal(t, RoleCommitter, c.Committer.Role)
	assert.Equal(t, "saiton 03", c.Committer.Name)
	assert.Equal(t, int64(1633332967), c.Committer.When.Unix())

	assert.Equal(t, "multiple\nlines\n", c.Message)
}

func TestCommitBytesParentless(t *testing.T) {
	author := NewCommitUser(RoleAuthor, "a", "a@example.com", time.Unix(100, 0).UTC())
	c := NewCommit(mustHash(t, "411b074c90e611e12b9afee191124dbe4c755370"), nil,
		author, author.WithRole(RoleCommitter), "first")

	body := "tree 411b074c90e611e12b9afee191124dbe4c755370\n" +
		"author a <a@example.com> 100 0000\n" +
		"committer a <a@example.com> 100 0000\n" +
		"\nfirst"
	want := fmt.Sprintf("commit %d\x00%s", len(body), body)
	assert.Equal(t, []byte(want), c.Bytes())

	// The parent-less form carries no trailing newline after the message.
	assert.False(t, strings.HasSuffix(string(c.Bytes()), "\n"))
}

func TestCommitBytesWithParentsHasTrailingNewline(t *testing.T) {
	author := NewCommitUser(RoleAuthor, "a", "a@example.com", time.Unix(100, 0).UTC())
	parents := []hash.Hash{
		mustHash(t, "0b326340dcedb7a2782beb8bed4d1b5812ad4243"),
		mustHash(t, "064a92d783f99851d1517b51ba0b2aed4a1d3128"),
	}
	c := NewCommit(mustHash(t, "411b074c90e611e12b9afee191124dbe4c755370"),
		parents, author, author.WithRole(RoleCommitter), "second")

	body := "tree 411b074c90e611e12b9afee191124dbe4c755370\n" +
		"parent 0b326340dcedb7a2782beb8bed4d1b5812ad4243\n" +
		"parent 064a92d783f99851d1517b51ba0b2aed4a1d3128\n" +
		"author a <a@example.com> 100 0000\n" +
		"committer a <a@example.com> 100 0000\n" +
		"\nsecond\n"
	want := fmt.Sprintf("commit %d\x00%s", len(body), body)
	assert.Equal(t, []byte(want), c.Bytes())
}

func TestCommitRoundTripParentless(t *testing.T) {
	author := NewCommitUser(RoleAuthor, "a", "a@example.com", time.Unix(100, 0).In(time.FixedZone("", 9*3600)))
	messages := []string{"first", "first\n", "multi\nline\nmessage"}
	for _, msg := range messages {
		c := NewCommit(mustHash(t, "411b074c90e611e12b9afee191124dbe4c755370"), nil,
			author, author.WithRole(RoleCommitter), msg)

		back, err := CommitFromBytes(c.Bytes())
		require.NoError(t, err)
		assert.Equal(t, c.Tree, back.Tree)
		assert.Empty(t, back.Parents)
		assert.True(t, c.Author.Equal(back.Author))
		assert.True(t, c.Committer.Equal(back.Committer))
		assert.Equal(t, msg, back.Message)
		assert.Equal(t, c.Bytes(), back.Bytes())
	}
}

func TestCommitFromBytesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong kind", "blob 1\x00x"},
		{"length mismatch", "commit 5\x00tree"},
		{"bad tree hash", "commit 10\x00tree xyz\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CommitFromBytes([]byte(tt.input))
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestLogEntry(t *testing.T) {
	c, err := CommitFromBytes([]byte(commitFixture))
	require.NoError(t, err)
	h := c.Hash()

	entry := c.LogEntry(h, nil)
	want := fmt.Sprintf("commit %s \n", h.Hex()) +
		"Author: saiton03 <saiton15603@gmail.com>\n" +
		"Date:   Mon Oct 4 14:36:53 2021 +0900\n" +
		"\n" +
		"    multiple\n    lines\n    \n"
	assert.Equal(t, want, entry)
}

func TestLogEntryWithRefs(t *testing.T) {
	c, err := CommitFromBytes([]byte(commitFixture))
	require.NoError(t, err)
	h := c.Hash()

	entry := c.LogEntry(h, []string{"master", "origin/master"})
	assert.True(t, strings.HasPrefix(entry, fmt.Sprintf("commit %s (master origin/master)\n", h.Hex())))
}
