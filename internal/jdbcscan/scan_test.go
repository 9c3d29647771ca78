package jdbcscan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kamusis/credscan/internal/record"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScan_CollectsPairsInWalkOrder(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, root, "a/app.properties", "app.jdbc.user=alice\napp.jdbc.URL=jdbc:mysql://h1/db\n")
	b := writeFile(t, root, "b/batch.properties", "#jdbc.user=old\nx.jdbc.user=bob\nx.jdbc.URL=jdbc:oracle:thin:@h2:1521/s\ny.jdbc.user=carol\ny.jdbc.URL=jdbc:h2:mem:y\n")
	writeFile(t, root, "b/readme.txt", "jdbc.user=ignored\njdbc.URL=ignored\n")
	writeFile(t, root, "c/nothing.properties", "key=value\n")

	res, err := NewScanner(zap.NewNop()).Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Scanned)
	require.Len(t, res.Files, 2)
	assert.Equal(t, a, res.Files[0].Path)
	assert.Equal(t, b, res.Files[1].Path)

	assert.Equal(t, []record.JDBCPairRecord{
		{File: a, User: "app.jdbc.user=alice", URL: "app.jdbc.URL=jdbc:mysql://h1/db"},
		{File: b, User: "x.jdbc.user=bob", URL: "x.jdbc.URL=jdbc:oracle:thin:@h2:1521/s"},
		{File: b, User: "y.jdbc.user=carol", URL: "y.jdbc.URL=jdbc:h2:mem:y"},
	}, res.Records())
}

func TestScan_DenylistedPathContributesNothing(t *testing.T) {
	root := t.TempDir()
	excluded := writeFile(t, root, "idealx-docker/conf/app.properties", "jdbc.user=u\njdbc.URL=jdbc:x\n")
	writeFile(t, root, "tools/Deployment_Scripts/app.properties", "jdbc.user=u\njdbc.URL=jdbc:x\n")
	kept := writeFile(t, root, "service/app.properties", "jdbc.user=u\njdbc.URL=jdbc:x\n")

	res, err := NewScanner(nil).Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, res.Files, 1)
	assert.Equal(t, kept, res.Files[0].Path)
	assert.Contains(t, res.Excluded, excluded)
	for _, r := range res.Records() {
		assert.NotContains(t, r.File, "idealx-docker")
	}
}

func TestScan_UnequalCountsTruncateAndReport(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "app.properties", "jdbc.user=a\njdbc.user=b\njdbc.URL=jdbc:a\n")

	core, logs := observer.New(zap.WarnLevel)
	res, err := NewScanner(zap.New(core)).Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, res.Files, 1)
	assert.Equal(t, []record.JDBCPairRecord{{File: path, User: "jdbc.user=a", URL: "jdbc.URL=jdbc:a"}}, res.Files[0].Pairs)
	assert.Equal(t, []Inconsistency{{Path: path, Users: 2, URLs: 1}}, res.Inconsistent)
	assert.Equal(t, 1, logs.FilterMessageSnippet("pairing truncated").Len())
}

func TestScan_UsersWithoutURLs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.properties", "jdbc.user=a\n")

	res, err := NewScanner(nil).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Len(t, res.Inconsistent, 1)
}

func TestScan_Latin1Content(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.properties", "jdbc.user=j\xE9r\xF4me\njdbc.URL=jdbc:x\n")

	res, err := NewScanner(nil).Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "jdbc.user=jérôme", res.Files[0].Pairs[0].User)
}

func TestScan_Errors(t *testing.T) {
	_, err := NewScanner(nil).Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := writeFile(t, t.TempDir(), "app.properties", "")
	_, err = NewScanner(nil).Scan(context.Background(), file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestScan_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.properties", "jdbc.user=a\njdbc.URL=b\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScanner(nil).Scan(ctx, root)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanner_Excluded(t *testing.T) {
	s := &Scanner{Denylist: []string{"build_property_replace", ""}}
	assert.True(t, s.Excluded("/src/build_property_replace/x.properties"))
	assert.False(t, s.Excluded("/src/service/x.properties"))
}
