// Package memscript reads the text format describing a simulated device
// memory image and applies it to a target.SimMemory.
package memscript

import (
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/juju/errors"
)

var parser = participle.MustBuild[Script](
	participle.Lexer(ScriptLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Parse parses a script from a reader
func Parse(r io.Reader) (*Script, error) {
	s, err := parser.Parse("", r)
	if err != nil {
		return nil, errors.Annotate(err, "parse error")
	}
	return s, nil
}

// ParseString parses a script from a string
func ParseString(input string) (*Script, error) {
	s, err := parser.ParseString("", input)
	if err != nil {
		return nil, errors.Annotate(err, "parse error")
	}
	return s, nil
}

// ParseFile parses a script from a file path
func ParseFile(filename string) (*Script, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open script")
	}
	defer f.Close()

	s, err := parser.Parse(filename, f)
	if err != nil {
		return nil, errors.Annotate(err, "parse error")
	}
	return s, nil
}
