package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cloakFixture = `# tds
mariadb.tds.db.URL.US=jdbc:mariadb://tds-us:3306/tds
mariadb.tds.user.US=tds_us
mariadb.tds.pass.US=pw_us
dbURL=jdbc:mariadb://spark:3306/spark
`

func TestCloak_DryRun(t *testing.T) {
	dir := t.TempDir()
	file := writeTestFile(t, dir, "cloak.properties", cloakFixture)
	out := filepath.Join(dir, "cloak.xlsx")

	stdout, _, err := executeRootCmd(t, isolatedArgs(t, "cloak", "--file", file, "--out", out, "--dry-run")...)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	for _, want := range []string{"TDS Main", "tds_us", "Main Database", "SPARKDB", "Found 2 credential groups."} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q, got: %q", want, stdout)
		}
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("dry run should not write %s", out)
	}
}

func TestCloak_WritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	file := writeTestFile(t, dir, "cloak.properties", cloakFixture)
	out := filepath.Join(dir, "reports", "cloak.xlsx")
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeRootCmd(t, isolatedArgs(t, "cloak", "--file", file, "--out", out, "--dry-run=false")...)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.Contains(stdout, "Report written: "+out) {
		t.Errorf("expected report path in output, got: %q", stdout)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected workbook at %s: %v", out, err)
	}
}

func TestCloak_MissingFile(t *testing.T) {
	_, _, err := executeRootCmd(t, isolatedArgs(t, "cloak", "--file", filepath.Join(t.TempDir(), "missing.properties"), "--dry-run")...)
	if err == nil || !strings.Contains(err.Error(), "failed to read properties file") {
		t.Fatalf("expected read error, got: %v", err)
	}
}
