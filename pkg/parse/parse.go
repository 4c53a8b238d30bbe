package parse

import (
	"strings"

	"github.com/matzehuels/fcss/pkg/sheet"
)

const importPrefix = "@import("

// Parse parses the longest document prefix of text and returns the
// unconsumed remainder. It fails only when not even one entry can be parsed;
// a malformed entry after a valid one ends the document and is left in rest.
// Comments are dropped from the returned mapping.
func Parse(text string) (rest string, m sheet.Mapping, err error) {
	p := &parser{src: text}
	m, _, serr := p.list(true)
	if serr != nil {
		return text, nil, serr
	}
	return text[p.pos:], m, nil
}

// Document parses text as a complete document. Any non-whitespace input
// left after the last entry is reported as the SyntaxError that stopped the
// parse.
func Document(text string) (sheet.Mapping, error) {
	p := &parser{src: text}
	m, stop, err := p.list(true)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		if stop != nil {
			return nil, stop
		}
		return nil, p.errorf(p.pos, ContextNode, "unexpected input after last entry")
	}
	return m, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(offset int, context, format string, args ...any) *SyntaxError {
	return newSyntaxError(p.src, offset, context, format, args...)
}

func (p *parser) peek(c byte) bool {
	return p.pos < len(p.src) && p.src[p.pos] == c
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// skipSpace consumes whitespace and reports how much was consumed.
func (p *parser) skipSpace() int {
	start := p.pos
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
	return p.pos - start
}

// takeUntil consumes bytes up to (not including) the first byte in stop.
func (p *parser) takeUntil(stop string) string {
	start := p.pos
	for p.pos < len(p.src) && strings.IndexByte(stop, p.src[p.pos]) < 0 {
		p.pos++
	}
	return p.src[start:p.pos]
}

// list parses whitespace-separated entries. At the top level entries are
// comments, imports or blocks; nested lists hold blocks only. The first entry
// must parse (err). A later entry that fails ends the list with the position
// restored to before its separator; its error is returned as stop so callers
// can report it if the surrounding construct does not continue.
func (p *parser) list(top bool) (m sheet.Mapping, stop, err *SyntaxError) {
	m = sheet.Mapping{}
	p.skipSpace()
	key, n, _, err := p.entry(top)
	if err != nil {
		return nil, nil, err
	}
	add(m, key, n)

	for {
		save := p.pos
		if p.skipSpace() == 0 {
			break
		}
		key, n, _, err := p.entry(top)
		if err != nil {
			p.pos = save
			stop = err
			break
		}
		add(m, key, n)
	}
	p.skipSpace()
	return m, stop, nil
}

// add stores an entry, dropping comments (which carry no key).
func add(m sheet.Mapping, key string, n sheet.Node) {
	if _, ok := n.(sheet.Comment); ok || key == "" {
		return
	}
	m.Set(key, n)
}

// entry parses one list element. opened reports whether a block's "{" was
// consumed before failing, which distinguishes a broken block from input
// that is not a block at all.
func (p *parser) entry(top bool) (key string, n sheet.Node, opened bool, err *SyntaxError) {
	rest := p.src[p.pos:]
	switch {
	case strings.HasPrefix(rest, "//"):
		if !top {
			return "", nil, false, p.errorf(p.pos, ContextObject, "comments are only allowed at the top level")
		}
		line := p.takeUntil("\n")
		return "", sheet.Comment{Text: strings.TrimSpace(strings.TrimPrefix(line, "//"))}, false, nil
	case strings.HasPrefix(rest, importPrefix):
		if !top {
			return "", nil, false, p.errorf(p.pos, ContextObject, "@import is only allowed at the top level")
		}
		key, n, err := p.importDirective()
		return key, n, false, err
	}
	return p.block()
}

func (p *parser) importDirective() (string, sheet.Node, *SyntaxError) {
	start := p.pos
	p.pos += len(importPrefix)
	raw := p.takeUntil(")")
	if !p.peek(')') {
		return "", nil, p.errorf(start, ContextImport, "expected ')' to close @import")
	}
	p.pos++
	path := strings.TrimSpace(raw)
	if path == "" {
		return "", nil, p.errorf(start, ContextImport, "empty import path")
	}
	p.skipSpace()
	if !p.peek(';') {
		return "", nil, p.errorf(p.pos, ContextImport, "expected ';' after @import(%s)", path)
	}
	p.pos++
	return path, sheet.Import{Path: path, Count: 1}, nil
}

func (p *parser) block() (string, sheet.Node, bool, *SyntaxError) {
	start := p.pos
	raw := p.takeUntil("{}")
	selector := strings.TrimSpace(raw)
	if selector == "" {
		return "", nil, false, p.errorf(start, ContextSelector, "expected selector")
	}
	if !p.peek('{') {
		return "", nil, false, p.errorf(p.pos, ContextSelector, "expected '{' after selector %q", selector)
	}
	p.pos++
	body, err := p.object(selector)
	if err != nil {
		return "", nil, true, err
	}
	if !p.peek('}') {
		return "", nil, true, p.errorf(p.pos, ContextSelector, "expected '}' to close %q", selector)
	}
	p.pos++
	return selector, body, true, nil
}

// object parses a block body: either statements or nested blocks. It leaves
// the position at the closing brace.
func (p *parser) object(selector string) (sheet.Mapping, *SyntaxError) {
	start := p.pos
	m, stop, serr := p.statements()
	if serr == nil {
		p.skipSpace()
		if p.peek('}') {
			return m, nil
		}
		if stop != nil {
			return nil, stop
		}
		return nil, p.errorf(p.pos, ContextObject, "expected ';' or '}' in %q", selector)
	}

	// Not a statement body; try nested blocks.
	p.pos = start
	p.skipSpace()
	if p.peek('}') {
		return nil, p.errorf(p.pos, ContextObject, "empty block %q", selector)
	}
	m, stop, berr := p.listNested()
	if berr != nil {
		return nil, berr
	}
	if m == nil {
		// Neither alternative got past its first token.
		return nil, serr
	}
	if !p.peek('}') {
		if stop != nil {
			return nil, p.errorf(p.pos, ContextObject, "expected '}' after nested blocks in %q: %s", selector, stop.Msg)
		}
		return nil, p.errorf(p.pos, ContextObject, "expected '}' after nested blocks in %q", selector)
	}
	return m, nil
}

// listNested parses the nested-block alternative of a body. A first block
// that fails before its "{" means the body is not a block list at all and is
// reported as (nil, nil, nil) so the caller can surface the statement error.
func (p *parser) listNested() (sheet.Mapping, *SyntaxError, *SyntaxError) {
	save := p.pos
	_, _, opened, err := p.entry(false)
	p.pos = save
	if err != nil && !opened {
		if err.Context == ContextObject {
			return nil, nil, err
		}
		return nil, nil, nil
	}
	return p.list(false)
}

// statements parses ";"-separated statements. serr is set when the first
// statement does not parse, meaning the body is not a statement list.
func (p *parser) statements() (m sheet.Mapping, stop, serr *SyntaxError) {
	m = sheet.Mapping{}
	key, n, err := p.statement(true)
	if err != nil {
		return nil, nil, err
	}
	m.Set(key, n)

	for p.peek(';') {
		save := p.pos
		p.pos++
		key, n, err := p.statement(false)
		if err != nil {
			p.pos = save
			stop = err
			break
		}
		m.Set(key, n)
	}
	return m, stop, nil
}

func (p *parser) statement(first bool) (string, sheet.Node, *SyntaxError) {
	p.skipSpace()
	if p.peek('?') {
		start := p.pos
		p.pos++
		name := strings.TrimSpace(p.takeUntil(":;}"))
		if name == "" {
			return "", nil, p.errorf(start, ContextStatement, "expected name after '?'")
		}
		p.terminator()
		return name, sheet.Extend{Name: name}, nil
	}

	start := p.pos
	key := strings.TrimSpace(p.takeUntil(":{}"))
	switch {
	case p.peek('{') && !first && key != "":
		return "", nil, p.errorf(start, ContextObject, "nested selector %q cannot follow statements in the same block", key)
	case key == "":
		return "", nil, p.errorf(start, ContextStatement, "expected property name")
	case !p.peek(':'):
		return "", nil, p.errorf(p.pos, ContextStatement, "expected ':' after %q", key)
	}
	p.pos++
	valStart := p.pos
	raw := p.takeUntil(";{}")
	if raw == "" {
		return "", nil, p.errorf(valStart, ContextStatement, "expected value for %q", key)
	}
	if p.peek('{') {
		return "", nil, p.errorf(p.pos, ContextStatement, "unexpected '{' in value of %q", key)
	}
	p.terminator()
	return key, sheet.Leaf{Value: strings.TrimSpace(raw)}, nil
}

// terminator swallows a ";" that is followed, across whitespace, by the
// closing "}" of the block. Any other ";" is left for the statement list.
func (p *parser) terminator() {
	if !p.peek(';') {
		return
	}
	save := p.pos
	p.pos++
	p.skipSpace()
	if !p.peek('}') {
		p.pos = save
	}
}
