package properties

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	text := `
# comment line
a = 1
b=two=parts

   # indented comment
not a pair
c=
a=overwritten
`
	m := Parse(text)

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, "overwritten", m.Value("a"))
	assert.Equal(t, "two=parts", m.Value("b"))

	v, ok := m.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	assert.False(t, m.Has("not a pair"))
	assert.Equal(t, 3, m.Len())
}

func TestParse_CRLF(t *testing.T) {
	m := Parse("dbURL=jdbc:y\r\ndbUser=u\r\n")
	assert.Equal(t, "jdbc:y", m.Value("dbURL"))
	assert.Equal(t, "u", m.Value("dbUser"))
}

func TestMap_NilSafe(t *testing.T) {
	var m *Map
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.Equal(t, "", m.Value("x"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cloak.properties")
	require.NoError(t, os.WriteFile(path, []byte("dbUser=r\xE9mi\n"), 0644))

	m, err := Load(path, "auto")
	require.NoError(t, err)
	assert.Equal(t, "rémi", m.Value("dbUser"))

	_, err = Load(filepath.Join(dir, "missing.properties"), "auto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read properties file")
}

func TestParse_OverlongLineDoesNotStopParsing(t *testing.T) {
	garbage := "garbage=" + strings.Repeat("A", 2*1024*1024)
	m := Parse("mariadb.tds.db.URL.US=jdbc:x\n" + garbage + "\ndbURL=jdbc:y\n")

	assert.Equal(t, []string{"mariadb.tds.db.URL.US", "garbage", "dbURL"}, m.Keys())
	assert.Equal(t, "jdbc:y", m.Value("dbURL"))
	assert.Len(t, ExtractCredentials(m), 2)
}
