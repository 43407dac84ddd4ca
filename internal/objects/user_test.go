package objects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommitUser(t *testing.T) {
	u, err := ParseCommitUser("committer hogeo hoge <hoge@example.com> 1633332967 +0900")
	require.NoError(t, err)

	assert.Equal(t, RoleCommitter, u.Role)
	assert.Equal(t, "hogeo hoge", u.Name)
	assert.Equal(t, "hoge@example.com", u.Email)
	assert.Equal(t, int64(1633332967), u.When.Unix())
	_, offset := u.When.Zone()
	assert.Equal(t, 9*3600, offset)
}

func TestCommitUserRoundTrip(t *testing.T) {
	lines := []string{
		"committer hogeo hoge <hoge@example.com> 1633332967 +0900",
		"author saiton03 <saiton15603@gmail.com> 1633325813 +0900",
		"author negative offset <x@example.com> 1633325813 -0530",
		"author zero <x@example.com> 1633325813 0000",
	}
	for _, line := range lines {
		u, err := ParseCommitUser(line)
		require.NoError(t, err)
		assert.Equal(t, line, u.String())
	}
}

func TestCommitUserString(t *testing.T) {
	when := time.Unix(1633332967, 0).In(time.FixedZone("", 9*3600))
	u := NewCommitUser(RoleAuthor, "hogeo hoge", "hoge@example.com", when)
	assert.Equal(t, "author hogeo hoge <hoge@example.com> 1633332967 +0900", u.String())

	// Zero offset serializes without a sign.
	utc := NewCommitUser(RoleAuthor, "x", "x@example.com", time.Unix(0, 0).UTC())
	assert.Equal(t, "author x <x@example.com> 0 0000", utc.String())

	// Negative offsets keep zero-padded hours and minutes.
	west := NewCommitUser(RoleAuthor, "x", "x@example.com", time.Unix(100, 0).In(time.FixedZone("", -(5*3600+30*60))))
	assert.Equal(t, "author x <x@example.com> 100 -0530", west.String())
}

func TestParseCommitUserSignlessOffsetIsUTC(t *testing.T) {
	u, err := ParseCommitUser("author x <x@example.com> 12 0900")
	require.NoError(t, err)
	_, offset := u.When.Zone()
	assert.Equal(t, 0, offset)
}

func TestParseCommitUserErrors(t *testing.T) {
	lines := []string{
		"gardener x <x@example.com> 12 +0900", // unknown role
		"author x x@example.com 12 +0900",     // no brackets
		"author x <x@example.com> +0900",      // no timestamp
		"author x <not-an-email> 12 +0900",
	}
	for _, line := range lines {
		_, err := ParseCommitUser(line)
		assert.ErrorIs(t, err, ErrParse, line)
	}
}

func TestWithRole(t *testing.T) {
	u := NewCommitUser(RoleAuthor, "x", "x@example.com", time.Unix(0, 0).UTC())
	c := u.WithRole(RoleCommitter)
	assert.Equal(t, RoleAuthor, u.Role)
	assert.Equal(t, RoleCommitter, c.Role)
	assert.True(t, u.Equal(c.WithRole(RoleAuthor)))
}
