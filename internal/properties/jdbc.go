package properties

import "strings"

const (
	jdbcUserMarker = "jdbc.user="
	jdbcURLMarker  = "jdbc.URL="
)

// JDBCLines holds the jdbc.user and jdbc.URL lines of one file, in file order.
// Entries are whole trimmed lines, prefixes included.
type JDBCLines struct {
	Users []string
	URLs  []string
}

// Balanced reports whether every user line has a URL line to pair with.
func (l JDBCLines) Balanced() bool {
	return len(l.Users) == len(l.URLs)
}

// PairCount is the number of positional pairs that can be formed.
func (l JDBCLines) PairCount() int {
	return min(len(l.Users), len(l.URLs))
}

// ExtractJDBCLines collects lines containing "jdbc.user=" or "jdbc.URL=".
// A line carrying both markers counts as a user line.
func ExtractJDBCLines(text string) JDBCLines {
	var out JDBCLines
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.Contains(line, jdbcUserMarker):
			out.Users = append(out.Users, line)
		case strings.Contains(line, jdbcURLMarker):
			out.URLs = append(out.URLs, line)
		}
	}
	return out
}
