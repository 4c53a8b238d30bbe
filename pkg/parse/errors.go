package parse

import (
	"fmt"
	"strings"

	"github.com/matzehuels/fcss/pkg/errors"
)

// Contexts reported in SyntaxError.Context.
const (
	ContextNode      = "node"      // a top-level entry
	ContextSelector  = "selector"  // a selector and its braces
	ContextObject    = "object"    // a block body
	ContextStatement = "statement" // key:value or ?name
	ContextImport    = "import"    // an @import directive
)

// SyntaxError reports input that does not match the grammar.
type SyntaxError struct {
	Context string // construct that was expected
	Msg     string
	Offset  int    // byte offset into the parsed text
	Line    int    // 1-based
	Column  int    // 1-based, in bytes
	Near    string // input starting at Offset, truncated
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %s at %d:%d: %s (near %q)", e.Context, e.Line, e.Column, e.Msg, e.Near)
}

// Code returns errors.ErrCodeSyntax.
func (e *SyntaxError) Code() errors.Code { return errors.ErrCodeSyntax }

const nearLen = 24

func newSyntaxError(src string, offset int, context, format string, args ...any) *SyntaxError {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndexByte(before, '\n')
	near := src[offset:]
	if len(near) > nearLen {
		near = near[:nearLen]
	}
	return &SyntaxError{
		Context: context,
		Msg:     fmt.Sprintf(format, args...),
		Offset:  offset,
		Line:    line,
		Column:  col,
		Near:    near,
	}
}
