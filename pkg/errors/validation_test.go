package errors

import (
	"testing"
)

func TestValidateProgramID(t *testing.T) {
	tests := []struct {
		name    string
		input   int64
		wantErr bool
	}{
		{"positive", 42, false},
		{"one", 1, false},

		{"zero", 0, true},
		{"negative", -7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProgramID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProgramID(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidProgram) {
				t.Errorf("ValidateProgramID(%d) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateProgramPair(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int64
		wantErr bool
	}{
		{"distinct", 1, 2, false},
		{"same program", 3, 3, true},
		{"invalid first", 0, 2, true},
		{"invalid second", 1, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProgramPair(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProgramPair(%d, %d) error = %v, wantErr %v", tt.a, tt.b, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "comparison.pdf", false},
		{"nested", "out/reports/comparison.pdf", false},
		{"absolute", "/tmp/comparison.pdf", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00.pdf", true},
		{"newline", "foo\n.pdf", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	valid := map[string]bool{"pdf": true, "json": true}

	if err := ValidateFormat("pdf", valid); err != nil {
		t.Errorf("ValidateFormat(pdf) error = %v", err)
	}

	err := ValidateFormat("svg", valid)
	if err == nil {
		t.Fatal("ValidateFormat(svg) should fail")
	}
	want := `invalid format: "svg" (must be one of: json, pdf)`
	if UserMessage(err) != want {
		t.Errorf("UserMessage() = %q, want %q", UserMessage(err), want)
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidProgram,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeProgramNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeAIUnavailable,
		ErrCodeExportFailed,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
