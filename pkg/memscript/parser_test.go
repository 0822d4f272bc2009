package memscript

import (
	"context"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
)

func TestParseStatements(t *testing.T) {
	input := `
	# RA6M3 behind the flash root table
	word  0x407FB19C = 0x0100A000
	words 0x0100A014 = 0x11223344 0x55667788 99
	ascii 0x0100A024 = "R7FA6M3AH3CFC   "
	rascii 0x01001C10 = "R7FA2L1AB2DFM"
	fault on
	`

	script, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(script.Statements) != 5 {
		t.Fatalf("Expected 5 statements, got %d", len(script.Statements))
	}

	st := script.Statements
	if st[0].Word == nil || st[0].Word.Addr != 0x407FB19C || st[0].Word.Value != 0x0100A000 {
		t.Errorf("word statement = %+v", st[0].Word)
	}
	if st[1].Words == nil || len(st[1].Words.Values) != 3 || st[1].Words.Values[2].Value != 99 {
		t.Errorf("words statement = %+v", st[1].Words)
	}
	if st[2].ASCII == nil || st[2].ASCII.Text != "R7FA6M3AH3CFC   " {
		t.Errorf("ascii statement = %+v", st[2].ASCII)
	}
	if st[3].RASCII == nil || st[3].RASCII.Text != "R7FA2L1AB2DFM" {
		t.Errorf("rascii statement = %+v", st[3].RASCII)
	}
	if st[4].Fault == nil || st[4].Fault.State != "on" {
		t.Errorf("fault statement = %+v", st[4].Fault)
	}
	if st[2].Pos.Line != 5 {
		t.Errorf("ascii statement on line %d, want 5", st[2].Pos.Line)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing value", "word 0x1000 ="},
		{"missing assign", "word 0x1000 0x1"},
		{"unknown statement", "poke 0x1000 = 1"},
		{"bad fault state", "fault maybe"},
		{"number too large", "word 0x100000000 = 1"},
		{"unterminated string", `ascii 0x1000 = "R7FA`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseString(tt.input); err == nil {
				t.Errorf("expected parse error for %q", tt.input)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	script, err := ParseString("# nothing here\n\n")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(script.Statements) != 0 {
		t.Errorf("Expected no statements, got %d", len(script.Statements))
	}
}

func TestApply(t *testing.T) {
	script, err := Parse(strings.NewReader(`
		word  0x407FB19C = 0x0100A000
		words 0x0100A014 = 0x11223344 0x55667788
		ascii 0x010080F0 = "R7FA4M3AD3CFP   "
		rascii 0x01001C10 = "R7FA2L1AB2DFM"
		fault on
	`))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	mem := target.NewSimMemory()
	if err := script.Apply(mem); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	ctx := context.Background()
	checks := []struct {
		addr uint32
		want uint32
	}{
		{0x407FB19C, 0x0100A000},
		{0x0100A014, 0x11223344},
		{0x0100A018, 0x55667788},
		{0x010080F0, 0x41463752}, // "R7FA"
		{0x010080FC, 0x20202050}, // "P   "
		{0x01001C10, 0x3244464D}, // "MFD2"
		{0x01001C1C, 0x20202052}, // "R" then padding
	}
	for _, c := range checks {
		got, err := mem.Read32(ctx, c.addr)
		if err != nil {
			t.Errorf("Read32(0x%08X) error = %v", c.addr, err)
			continue
		}
		if got != c.want {
			t.Errorf("Read32(0x%08X) = 0x%08X, want 0x%08X", c.addr, got, c.want)
		}
	}

	if !mem.FaultUnmapped {
		t.Errorf("fault on not applied")
	}
	if _, err := mem.Read32(ctx, 0x20000000); err == nil {
		t.Errorf("unpopulated read succeeded with faults on")
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unaligned word", "word 0x1002 = 1", "unaligned"},
		{"unaligned words", "\nwords 0x1001 = 1 2", "2:1"},
		{"short rascii", `rascii 0x01001C10 = "R7FA"`, "13 to 16"},
		{"long rascii", `rascii 0x01001C10 = "R7FA2L1AB2DFM    "`, "got 17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}
			err = script.Apply(target.NewSimMemory())
			if err == nil {
				t.Fatalf("expected Apply() error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestReversedPadding(t *testing.T) {
	img, err := reversed("R7FA2E1A93CNEXY")
	if err != nil {
		t.Fatal(err)
	}
	if got := string(img); got != "ENC39A1E2AF7RXY " {
		t.Errorf("reversed() = %q", got)
	}
}
