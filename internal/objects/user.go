package objects

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Role says whether a commit user line is the author or the committer.
type Role string

const (
	RoleAuthor    Role = "author"
	RoleCommitter Role = "committer"
)

func roleFromBytes(b []byte) (Role, error) {
	switch {
	case len(b) >= len(RoleAuthor) && string(b[:len(RoleAuthor)]) == string(RoleAuthor):
		return RoleAuthor, nil
	case len(b) >= len(RoleCommitter) && string(b[:len(RoleCommitter)]) == string(RoleCommitter):
		return RoleCommitter, nil
	}
	return "", fmt.Errorf("%w: invalid commit user role", ErrParse)
}

// CommitUser is one authorship line of a commit: role, display name, email
// address, and a timestamp carrying a fixed UTC offset.
type CommitUser struct {
	Role  Role
	Name  string
	Email string
	When  time.Time
}

var userLineRe = regexp.MustCompile(
	`^(\w*) (.*) <([a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)*)> (\d+) ([+-]?\d{4})`)

// NewCommitUser builds a user line stamped with when, which keeps its
// location's fixed UTC offset.
func NewCommitUser(role Role, name, email string, when time.Time) CommitUser {
	return CommitUser{Role: role, Name: name, Email: email, When: when}
}

// ParseCommitUser parses "<role> <name> <<email>> <unix-seconds> <±HHMM>".
func ParseCommitUser(line string) (CommitUser, error) {
	m := userLineRe.FindStringSubmatch(line)
	if m == nil {
		return CommitUser{}, fmt.Errorf("%w: bad commit user line %q", ErrParse, line)
	}

	role, err := roleFromBytes([]byte(m[1]))
	if err != nil {
		return CommitUser{}, err
	}
	epoch, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		return CommitUser{}, fmt.Errorf("%w: bad timestamp %q", ErrParse, m[4])
	}
	offset, err := parseUTCOffset(m[5])
	if err != nil {
		return CommitUser{}, err
	}

	return CommitUser{
		Role:  role,
		Name:  m[2],
		Email: m[3],
		When:  time.Unix(epoch, 0).In(time.FixedZone("", offset)),
	}, nil
}

// parseUTCOffset converts "±HHMM" to seconds east of UTC. A signless
// offset resolves to zero.
func parseUTCOffset(s string) (int, error) {
	if len(s) < 4 || len(s) > 5 {
		return 0, fmt.Errorf("%w: bad UTC offset %q", ErrParse, s)
	}
	if s[0] != '+' && s[0] != '-' {
		return 0, nil
	}
	hour, err := strconv.Atoi(s[1:3])
	if err != nil {
		return 0, fmt.Errorf("%w: bad UTC offset %q", ErrParse, s)
	}
	min, err := strconv.Atoi(s[3:5])
	if err != nil {
		return 0, fmt.Errorf("%w: bad UTC offset %q", ErrParse, s)
	}
	value := hour*3600 + min*60
	if s[0] == '-' {
		value = -value
	}
	return value, nil
}

// WithRole returns a copy with the role replaced.
func (u CommitUser) WithRole(role Role) CommitUser {
	u.Role = role
	return u
}

// offsetString renders the timestamp's UTC offset. Zero serializes as
// "0000" with no sign; the parser accepts that form back.
func (u CommitUser) offsetString() string {
	_, offset := u.When.Zone()
	if offset == 0 {
		return "0000"
	}
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("%s%02d%02d", sign, offset/3600, (offset%3600)/60)
}

// String renders "<role> <name> <<email>> <unix-seconds> <offset>".
func (u CommitUser) String() string {
	return fmt.Sprintf("%s %s <%s> %d %s", u.Role, u.Name, u.Email, u.When.Unix(), u.offsetString())
}

// Bytes returns the serialized line.
func (u CommitUser) Bytes() []byte {
	return []byte(u.String())
}

// Equal compares users field-wise; timestamps compare by instant and offset.
func (u CommitUser) Equal(other CommitUser) bool {
	_, uo := u.When.Zone()
	_, oo := other.When.Zone()
	return u.Role == other.Role && u.Name == other.Name && u.Email == other.Email &&
		u.When.Unix() == other.When.Unix() && uo == oo
}
