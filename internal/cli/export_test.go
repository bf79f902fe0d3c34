package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/pipeline"
)

func TestSidesApply(t *testing.T) {
	dir := t.TempDir()
	fileA := writeTestFile(t, dir, "a.json", `{"name": "Inline Accounting"}`)

	tests := []struct {
		name     string
		sides    sides
		args     []string
		wantAID  int64
		wantBID  int64
		inlineA  string
		wantCode errors.Code
	}{
		{name: "two ids", args: []string{"12", "40"}, wantAID: 12, wantBID: 40},
		{name: "file and id", sides: sides{fileA: fileA}, args: []string{"40"}, wantBID: 40, inlineA: "Inline Accounting"},
		{name: "not a number", args: []string{"12", "forty"}, wantCode: errors.ErrCodeInvalidProgram},
		{name: "same program", args: []string{"12", "12"}, wantCode: errors.ErrCodeInvalidInput},
		{name: "negative", args: []string{"-1", "12"}, wantCode: errors.ErrCodeInvalidProgram},
		{name: "missing file", sides: sides{fileB: filepath.Join(dir, "nope.json")}, args: []string{"1"}, wantCode: errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts pipeline.Options
			err := tt.sides.apply(&opts, tt.args)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("apply() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("apply() error: %v", err)
			}
			if opts.ProgramAID != tt.wantAID || opts.ProgramBID != tt.wantBID {
				t.Errorf("ids = %d, %d, want %d, %d", opts.ProgramAID, opts.ProgramBID, tt.wantAID, tt.wantBID)
			}
			if tt.inlineA != "" && (opts.ProgramA == nil || opts.ProgramA.Name != tt.inlineA) {
				t.Errorf("ProgramA = %+v, want name %q", opts.ProgramA, tt.inlineA)
			}
		})
	}
}

func TestApplyRequestFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "request.json", `{
		"programA": {"name": "Accounting"},
		"programB": {"name": "Finance"},
		"includeAIExplanation": true,
		"aiExplanation": "Accounting is cheaper."
	}`)

	var opts pipeline.Options
	if err := applyRequestFile(&opts, path); err != nil {
		t.Fatalf("applyRequestFile() error: %v", err)
	}
	if opts.ProgramA.Name != "Accounting" || opts.ProgramB.Name != "Finance" {
		t.Errorf("programs = %q, %q", opts.ProgramA.Name, opts.ProgramB.Name)
	}
	if !opts.IncludeAIExplanation || opts.AIExplanation != "Accounting is cheaper." {
		t.Errorf("explanation = %v %q", opts.IncludeAIExplanation, opts.AIExplanation)
	}

	opts = pipeline.Options{AIExplanation: "From the flag."}
	if err := applyRequestFile(&opts, path); err != nil {
		t.Fatal(err)
	}
	if opts.AIExplanation != "From the flag." {
		t.Errorf("flag explanation should win, got %q", opts.AIExplanation)
	}

	err := applyRequestFile(&opts, filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.pdf")

	if err := writeFileAtomic(path, []byte("%PDF-1.4")); err != nil {
		t.Fatalf("writeFileAtomic() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF-1.4" {
		t.Fatalf("read back %q, %v", data, err)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}

	if err := writeFileAtomic(dir+string(filepath.Separator), nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("directory path error = %v", err)
	}
}

func TestExportCommand(t *testing.T) {
	home := isolate(t)
	catalog := writeTestFile(t, home, "catalog.json", testCatalog)
	out := filepath.Join(home, "out.pdf")

	if err := runCLI(t, "export", "1", "2", "--catalog", catalog, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("export error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestExportCommandJSON(t *testing.T) {
	home := isolate(t)
	catalog := writeTestFile(t, home, "catalog.json", testCatalog)
	out := filepath.Join(home, "out.json")

	err := runCLI(t, "export", "1", "3",
		"--catalog", catalog,
		"--format", "json",
		"--explanation", "Pick the diploma for a shorter course.",
		"-o", out)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Fatal("output is not valid JSON")
	}
	if !bytes.Contains(data, []byte("Pick the diploma for a shorter course.")) {
		t.Error("recording should contain the supplied explanation")
	}
}

func TestExportCommandErrors(t *testing.T) {
	home := isolate(t)
	catalog := writeTestFile(t, home, "catalog.json", testCatalog)
	out := filepath.Join(home, "out.pdf")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown id", []string{"export", "1", "99", "--catalog", catalog, "-o", out}, errors.ErrCodeProgramNotFound},
		{"no programs", []string{"export", "--catalog", catalog, "-o", out}, errors.ErrCodeInvalidInput},
		{"bad format", []string{"export", "1", "2", "--catalog", catalog, "--format", "docx", "-o", out}, errors.ErrCodeInvalidFormat},
		{"ids without store", []string{"export", "1", "2", "-o", out}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("failed exports must not write the output file")
	}
}

func TestExplainCommandWithoutKey(t *testing.T) {
	home := isolate(t)
	catalog := writeTestFile(t, home, "catalog.json", testCatalog)

	err := runCLI(t, "explain", "1", "2", "--catalog", catalog)
	if !errors.Is(err, errors.ErrCodeAIUnavailable) {
		t.Errorf("error = %v, want AI_UNAVAILABLE", err)
	}
}
