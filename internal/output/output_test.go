package output

import (
	"bytes"
	"strings"
	"testing"
)

// newTestWriter creates a Writer with captured output for testing.
func newTestWriter() (*Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	w := &Writer{
		out:   stdout,
		err:   stderr,
		color: false, // Disable color for predictable test output
		quiet: false,
	}
	return w, stdout, stderr
}

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.out == nil {
		t.Error("out writer is nil")
	}
	if w.err == nil {
		t.Error("err writer is nil")
	}
}

func TestWriter_SetQuiet(t *testing.T) {
	w, _, _ := newTestWriter()

	w.SetQuiet(true)
	if !w.quiet {
		t.Error("SetQuiet(true) did not set quiet")
	}

	w.SetQuiet(false)
	if w.quiet {
		t.Error("SetQuiet(false) did not unset quiet")
	}
}

func TestWriter_Print(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Print("hello %s", "world")

	if got := stdout.String(); got != "hello world" {
		t.Errorf("Print() = %q, want %q", got, "hello world")
	}
}

func TestWriter_Println(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Println("hello %s", "world")

	if got := stdout.String(); got != "hello world\n" {
		t.Errorf("Println() = %q, want %q", got, "hello world\n")
	}
}

func TestWriter_Errorln(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.Errorln("error %d", 42)

	if got := stderr.String(); got != "error 42\n" {
		t.Errorf("Errorln() = %q, want %q", got, "error 42\n")
	}
}

func TestWriter_Warning(t *testing.T) {
	tests := []struct {
		name   string
		quiet  bool
		color  bool
		expect string
	}{
		{"without color", false, false, "warning: caution\n"},
		{"with color", false, true, "\033[33mwarning:\033[0m caution\n"},
		{"quiet mode", true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, stderr := newTestWriter()
			w.color = tt.color
			w.quiet = tt.quiet

			w.Warning("caution")

			if got := stderr.String(); got != tt.expect {
				t.Errorf("Warning() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestWriter_CaseSuccess(t *testing.T) {
	tests := []struct {
		name   string
		quiet  bool
		color  bool
		expect string
	}{
		{"without color", false, false, "Success: deposit BASE USDC\n"},
		{"with color", false, true, "\033[32mSuccess:\033[0m deposit BASE USDC\n"},
		{"quiet mode still reports", true, false, "Success: deposit BASE USDC\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, stdout, _ := newTestWriter()
			w.quiet = tt.quiet
			w.color = tt.color

			w.CaseSuccess("deposit", "BASE", "USDC")

			if got := stdout.String(); got != tt.expect {
				t.Errorf("CaseSuccess() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestWriter_CaseFailed(t *testing.T) {
	tests := []struct {
		name   string
		color  bool
		code   int
		expect string
	}{
		{"without color", false, 2, "Failed: withdraw OPTIMISM OLAS (exit_code=2)\n"},
		{"with color", true, 2, "\033[31mFailed:\033[0m withdraw OPTIMISM OLAS (exit_code=2)\n"},
		{"unexpected status", false, -1, "Failed: withdraw OPTIMISM OLAS (exit_code=-1)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, stdout, _ := newTestWriter()
			w.color = tt.color

			w.CaseFailed("withdraw", "OPTIMISM", "OLAS", tt.code)

			if got := stdout.String(); got != tt.expect {
				t.Errorf("CaseFailed() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestWriter_Block(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.color = true
	w.quiet = true

	text := "=== Summary ===\nTotal: 100%\n"
	w.Block(text)

	if got := stdout.String(); got != text {
		t.Errorf("Block() = %q, want %q", got, text)
	}
}

func TestWriter_ErrorPrefix(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.ErrorPrefix("wallet: %s", "is required")

	if got := stderr.String(); got != "bridgematrix: wallet: is required\n" {
		t.Errorf("ErrorPrefix() = %q", got)
	}
}

func TestWriter_Section(t *testing.T) {
	tests := []struct {
		name   string
		quiet  bool
		color  bool
		expect string
	}{
		{"normal without color", false, false, "\n=== Plan ===\n"},
		{"normal with color", false, true, "\n\033[1m=== Plan ===\033[0m\n"},
		{"quiet mode", true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, stdout, _ := newTestWriter()
			w.quiet = tt.quiet
			w.color = tt.color

			w.Section("Plan")

			if got := stdout.String(); got != tt.expect {
				t.Errorf("Section() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestWriter_Table(t *testing.T) {
	w, stdout, _ := newTestWriter()

	headers := []string{"Name", "ChainID", "Status"}
	rows := [][]string{
		{"BASE", "8453", "ok"},
		{"MODE", "34443", "ok"},
	}

	w.Table(headers, rows)

	output := stdout.String()

	// Verify headers present
	if !strings.Contains(output, "Name") {
		t.Error("Table() missing header 'Name'")
	}
	if !strings.Contains(output, "ChainID") {
		t.Error("Table() missing header 'ChainID'")
	}
	if !strings.Contains(output, "Status") {
		t.Error("Table() missing header 'Status'")
	}

	// Verify rows present
	if !strings.Contains(output, "BASE") {
		t.Error("Table() missing row 'BASE'")
	}
	if !strings.Contains(output, "MODE") {
		t.Error("Table() missing row 'MODE'")
	}

	// Verify separator line exists
	if !strings.Contains(output, "---") {
		t.Error("Table() missing separator line")
	}
}

func TestWriter_Table_VaryingWidths(t *testing.T) {
	w, stdout, _ := newTestWriter()

	headers := []string{"A", "LongHeader"}
	rows := [][]string{
		{"short", "x"},
		{"verylongvalue", "y"},
	}

	w.Table(headers, rows)

	output := stdout.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")

	if len(lines) < 3 {
		t.Fatalf("Table() expected at least 3 lines, got %d", len(lines))
	}

	// Column width should accommodate longest value
	// "verylongvalue" is 13 chars, "LongHeader" is 10 chars
	headerLine := lines[0]
	if !strings.Contains(headerLine, "A") {
		t.Error("Table() header line missing 'A'")
	}
}

func TestWriter_Table_Empty(t *testing.T) {
	w, stdout, _ := newTestWriter()

	headers := []string{"Name", "Value"}
	rows := [][]string{}

	w.Table(headers, rows)

	output := stdout.String()

	// Should still print headers and separator
	if !strings.Contains(output, "Name") {
		t.Error("Table() with empty rows should still print headers")
	}
}

func TestWriter_Table_RowShorterThanHeaders(t *testing.T) {
	w, stdout, _ := newTestWriter()

	headers := []string{"A", "B", "C"}
	rows := [][]string{
		{"1", "2"}, // Missing third column
	}

	w.Table(headers, rows)

	// Should not panic and should handle gracefully
	output := stdout.String()
	if !strings.Contains(output, "1") {
		t.Error("Table() should handle short rows gracefully")
	}
}
