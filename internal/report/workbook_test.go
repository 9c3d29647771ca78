package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kamusis/credscan/internal/record"
)

func TestWriteWorkbook_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloak.xlsx")
	records := record.Reportables([]record.KeyPatternRecord{
		{Category: record.CategoryTDSMain, Region: "US", URL: "jdbc:x", Username: "u", Password: "p"},
		{Category: record.CategoryMainDatabase, Region: "SPARKDB", URL: "jdbc:y"},
	})

	require.NoError(t, WriteWorkbook(path, records, WorkbookOptions{Sheet: "Databases"}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Databases")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Database Type", "Region", "URL", "Username", "Password"}, rows[0])
	assert.Equal(t, []string{"TDS Main", "US", "jdbc:x", "u", "p"}, rows[1])
	assert.Equal(t, []string{"Main Database", "SPARKDB", "jdbc:y"}, rows[2][:3])
	assertBlank(t, rows[2][3:])

	styleID, err := f.GetCellStyle("Databases", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestBuildWorkbook_GroupBySource(t *testing.T) {
	records := record.Reportables([]record.JDBCPairRecord{
		{File: "/a.properties", User: "jdbc.user=a1", URL: "jdbc.URL=x1"},
		{File: "/a.properties", User: "jdbc.user=a2", URL: "jdbc.URL=x2"},
		{File: "/b.properties", User: "jdbc.user=b1", URL: "jdbc.URL=y1"},
	})

	f, err := BuildWorkbook(records, WorkbookOptions{GroupBySource: true})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(defaultSheet)
	require.NoError(t, err)
	// header, two rows for a, separator, one row for b
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"File", "jdbc.user", "jdbc.URL"}, rows[0])
	assert.Equal(t, "/a.properties", rows[1][0])
	assert.Equal(t, "jdbc.user=a2", rows[2][1])
	assertBlank(t, rows[3])
	assert.Equal(t, []string{"/b.properties", "jdbc.user=b1", "jdbc.URL=y1"}, rows[4])

	merged, err := f.GetMergeCells(defaultSheet)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A2", merged[0].GetStartAxis())
	assert.Equal(t, "A3", merged[0].GetEndAxis())
}

func TestBuildWorkbook_EmptyUsesColumns(t *testing.T) {
	f, err := BuildWorkbook(nil, WorkbookOptions{Columns: []string{"JNDI Name", "Username", "URL"}})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(defaultSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"JNDI Name", "Username", "URL"}}, rows)

	_, err = BuildWorkbook(nil, WorkbookOptions{})
	require.Error(t, err)
}

func assertBlank(t *testing.T, cells []string) {
	t.Helper()
	for i, c := range cells {
		assert.Empty(t, c, "cell %d", i)
	}
}
