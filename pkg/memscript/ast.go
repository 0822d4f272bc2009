package memscript

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Script is a parsed memory script
type Script struct {
	Statements []*Statement `@@*`
}

// Statement is one line of a script
type Statement struct {
	Pos lexer.Position

	Word   *WordStmt   `  @@`
	Words  *WordsStmt  `| @@`
	ASCII  *ASCIIStmt  `| @@`
	RASCII *RASCIIStmt `| @@`
	Fault  *FaultStmt  `| @@`
}

// WordStmt sets one word
// Example: word 0x407FB19C = 0x01000000
type WordStmt struct {
	Addr  Number `"word" @Number Assign`
	Value Number `@Number`
}

// WordsStmt sets consecutive words
// Example: words 0x01008190 = 0x11223344 0x55667788
type WordsStmt struct {
	Addr   Number   `"words" @Number Assign`
	Values []*Value `@@+`
}

// Value is one word of a WordsStmt
type Value struct {
	Value Number `@Number`
}

// ASCIIStmt lays out a string byte by byte
// Example: ascii 0x010080F0 = "R7FA4M3AD3CFP   "
type ASCIIStmt struct {
	Addr Number `"ascii" @Number Assign`
	Text string `@String`
}

// RASCIIStmt lays out a part number the way fixed location 1 stores it: the
// first 13 characters in reverse order, then up to 3 padding characters
// Example: rascii 0x01001C10 = "R7FA2L1AB2DFM"
type RASCIIStmt struct {
	Addr Number `"rascii" @Number Assign`
	Text string `@String`
}

// FaultStmt switches bus faults for unpopulated words
// Example: fault on
type FaultStmt struct {
	State string `"fault" @( "on" | "off" )`
}

// Number is an unsigned 32-bit literal, decimal or 0x hexadecimal
type Number uint32

// Capture implements participle.Capture
func (n *Number) Capture(values []string) error {
	v, err := strconv.ParseUint(strings.ReplaceAll(values[0], "_", ""), 0, 32)
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}
