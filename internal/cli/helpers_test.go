package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/backtoschool/progcompare/pkg/program"
)

// isolate clears every environment variable the config layer reads and points
// the XDG directories at a temporary home.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL", "REDIS_URL", "OPENAI_API_KEY",
		"PROGCOMPARE_ADDR", "PROGCOMPARE_OPENAI_MODEL", "PROGCOMPARE_CACHE",
		"PROGCOMPARE_CACHE_DIR", "PROGCOMPARE_CATALOG", "PROGCOMPARE_NO_CACHE",
	} {
		t.Setenv(k, "")
	}
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	return home
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const testCatalog = `[
  {"id": 1, "name": "Bachelor of Accounting", "level": "bachelor",
   "tuition_fee_amount": 50000, "tuition_fee_period": "year", "currency": "MYR",
   "university": {"id": 7, "name": "Universiti Malaya", "city": "Kuala Lumpur"}},
  {"id": 2, "name": "Bachelor of Finance", "level": "bachelor",
   "tuition_fee_amount": 75000, "tuition_fee_period": "year", "currency": "MYR"},
  {"id": 3, "name": "Diploma in IT", "level": "diploma"}
]`

func testPrograms() []program.Program {
	return []program.Program{
		{ID: 1, Name: "Bachelor of Accounting"},
		{ID: 2, Name: "Bachelor of Finance"},
		{ID: 3, Name: "Diploma in IT"},
	}
}

// runCLI executes the root command with args and a quiet logger.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := newRootWithVerbose(c, args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	err := root.ExecuteContext(context.Background())
	if err != nil {
		t.Logf("logs:\n%s", logs.String())
	}
	return err
}
