package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	fcsserrors "github.com/matzehuels/fcss/pkg/errors"
	"github.com/matzehuels/fcss/pkg/sheet"
)

func mustDocument(t *testing.T, text string) sheet.Mapping {
	t.Helper()
	m, err := Document(text)
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	return m
}

func TestDocument(t *testing.T) {
	tests := []struct {
		name string
		text string
		want sheet.Mapping
	}{
		{
			name: "single block",
			text: ".a{width:1px;height:2px;}",
			want: sheet.Mapping{".a": sheet.Mapping{
				"width":  sheet.Leaf{Value: "1px"},
				"height": sheet.Leaf{Value: "2px"},
			}},
		},
		{
			name: "whitespace everywhere",
			text: "\n   .a {\n\t width : 1px ;\n height: 2px\n\n }\n\n",
			want: sheet.Mapping{".a": sheet.Mapping{
				"width":  sheet.Leaf{Value: "1px"},
				"height": sheet.Leaf{Value: "2px"},
			}},
		},
		{
			name: "compound selector",
			text: ".x a{color:red}",
			want: sheet.Mapping{".x a": sheet.Mapping{"color": sheet.Leaf{Value: "red"}}},
		},
		{
			name: "multiple blocks",
			text: ".a{w:1px}\n.b{h:2px;}",
			want: sheet.Mapping{
				".a": sheet.Mapping{"w": sheet.Leaf{Value: "1px"}},
				".b": sheet.Mapping{"h": sheet.Leaf{Value: "2px"}},
			},
		},
		{
			name: "extend statements",
			text: ".a1{\n ?w-$1;\n width:1px;\n ?h-$2\n}",
			want: sheet.Mapping{".a1": sheet.Mapping{
				"w-$1":  sheet.Extend{Name: "w-$1"},
				"width": sheet.Leaf{Value: "1px"},
				"h-$2":  sheet.Extend{Name: "h-$2"},
			}},
		},
		{
			name: "nested blocks",
			text: ".d1{\n .a1{ ?w-$1; width:1px }\n .c1{ .a1{ ?h-$2 } }\n}",
			want: sheet.Mapping{".d1": sheet.Mapping{
				".a1": sheet.Mapping{
					"w-$1":  sheet.Extend{Name: "w-$1"},
					"width": sheet.Leaf{Value: "1px"},
				},
				".c1": sheet.Mapping{
					".a1": sheet.Mapping{"h-$2": sheet.Extend{Name: "h-$2"}},
				},
			}},
		},
		{
			name: "redeclared key last write wins",
			text: ".a{w:1px;w:2px}",
			want: sheet.Mapping{".a": sheet.Mapping{"w": sheet.Leaf{Value: "2px"}}},
		},
		{
			name: "redeclared selector last write wins",
			text: ".a{w:1px}\n.a{h:2px}",
			want: sheet.Mapping{".a": sheet.Mapping{"h": sheet.Leaf{Value: "2px"}}},
		},
		{
			name: "import directive",
			text: "@import( res/base.reg );\n.a{w:1px}",
			want: sheet.Mapping{
				"res/base.reg": sheet.Import{Path: "res/base.reg", Count: 1},
				".a":           sheet.Mapping{"w": sheet.Leaf{Value: "1px"}},
			},
		},
		{
			name: "repeated import counts directives",
			text: "@import(b.reg);\n@import(b.reg);",
			want: sheet.Mapping{"b.reg": sheet.Import{Path: "b.reg", Count: 2}},
		},
		{
			name: "pseudo-class nested selector",
			text: ".btn{ a:hover{ color:red } }",
			want: sheet.Mapping{".btn": sheet.Mapping{
				"a:hover": sheet.Mapping{"color": sheet.Leaf{Value: "red"}},
			}},
		},
		{
			name: "empty value",
			text: ".a{w: ;h:1}",
			want: sheet.Mapping{".a": sheet.Mapping{
				"w": sheet.Leaf{Value: ""},
				"h": sheet.Leaf{Value: "1"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustDocument(t, tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Document() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTerminatorLookahead(t *testing.T) {
	withSemi := mustDocument(t, ".a{k1:v1;k2:v2;}")
	without := mustDocument(t, ".a{k1:v1;k2:v2}")
	spaced := mustDocument(t, ".a{k1:v1;k2:v2;  \n  }")

	want := sheet.Mapping{".a": sheet.Mapping{
		"k1": sheet.Leaf{Value: "v1"},
		"k2": sheet.Leaf{Value: "v2"},
	}}
	for name, got := range map[string]sheet.Mapping{"with": withSemi, "without": without, "spaced": spaced} {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s trailing ';' mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestCommentDiscarding(t *testing.T) {
	m := mustDocument(t, "// note\n.a{w:1px}")
	if len(m) != 1 {
		t.Fatalf("len = %d, want 1 (keys %v)", len(m), m.Keys())
	}
	if _, ok := m[".a"]; !ok {
		t.Errorf("missing .a, keys %v", m.Keys())
	}

	m = mustDocument(t, "// @import(./ignored);\n   // another { brace\n.b{h:1}\n// trailing")
	if diff := cmp.Diff([]string{".b"}, m.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParseReturnsRest(t *testing.T) {
	rest, m, err := Parse(".a{w:1px}\n  garbage here")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if rest != "garbage here" {
		t.Errorf("rest = %q, want %q", rest, "garbage here")
	}
	if len(m) != 1 {
		t.Errorf("len = %d, want 1", len(m))
	}

	rest, _, err = Parse(".a{w:1px}\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if rest != "" {
		t.Errorf("rest = %q, want empty", rest)
	}
}

func TestParseFailsOnFirstEntry(t *testing.T) {
	rest, m, err := Parse("not a block")
	if err == nil {
		t.Fatal("Parse() should fail")
	}
	if m != nil {
		t.Errorf("mapping = %v, want nil", m)
	}
	if rest != "not a block" {
		t.Errorf("rest = %q, want whole input", rest)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		context string
		msg     string
	}{
		{"empty input", "", ContextSelector, "expected selector"},
		{"missing colon", ".a{width 1px}", ContextStatement, "expected ':'"},
		{"unterminated block", ".a{w:1px", ContextObject, "expected ';' or '}'"},
		{"unmatched brace", ".a{w:1px}}", ContextNode, "unexpected input"},
		{"missing open brace", ".a w:1px}", ContextSelector, "expected '{'"},
		{"empty block", ".a{ }", ContextObject, "empty block"},
		{"statements then block", ".a{w:1px; .b{h:1}}", ContextObject, "cannot follow statements"},
		{"blocks then statements", ".a{.b{h:1} w:1px}", ContextObject, "after nested blocks"},
		{"nested import", ".a{@import(x);}", ContextObject, "only allowed at the top level"},
		{"nested comment", ".a{// c\n.b{h:1}}", ContextObject, "only allowed at the top level"},
		{"import without semicolon", "@import(a.reg)\n.a{w:1}", ContextImport, "expected ';'"},
		{"import without paren", "@import(a.reg;", ContextImport, "expected ')'"},
		{"empty import", "@import(  );", ContextImport, "empty import path"},
		{"second block broken", ".a{w:1px}\n.b{h}", ContextStatement, "expected ':'"},
		{"deep error", ".a{.b{.c{x}}}", ContextStatement, "expected ':'"},
		{"empty extend", ".a{?;}", ContextStatement, "expected name"},
		{"double semicolon", ".a{w:1;;}", ContextStatement, "expected ':'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Document(tt.text)
			if err == nil {
				t.Fatalf("Document(%q) should fail", tt.text)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error type = %T, want *SyntaxError", err)
			}
			if se.Context != tt.context {
				t.Errorf("Context = %q, want %q (%v)", se.Context, tt.context, se)
			}
			if !strings.Contains(se.Msg, tt.msg) {
				t.Errorf("Msg = %q, want it to contain %q", se.Msg, tt.msg)
			}
			if !fcsserrors.Is(err, fcsserrors.ErrCodeSyntax) {
				t.Errorf("code = %v, want %v", fcsserrors.GetCode(err), fcsserrors.ErrCodeSyntax)
			}
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Document(".a{w:1px}\n.b{\n  h 2px\n}")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if se.Line != 4 || se.Column != 1 {
		t.Errorf("position = %d:%d, want 4:1", se.Line, se.Column)
	}
	if !strings.Contains(se.Error(), "syntax error in statement at 4:1") {
		t.Errorf("Error() = %q", se.Error())
	}
}
