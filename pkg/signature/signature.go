package signature

import (
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/fcss/pkg/sheet"
)

// Set is a set of signatures.
type Set map[string]struct{}

// NewSet returns a set holding sigs.
func NewSet(sigs ...string) Set {
	s := make(Set, len(sigs))
	for _, sig := range sigs {
		s.Add(sig)
	}
	return s
}

// Add inserts sig.
func (s Set) Add(sig string) { s[sig] = struct{}{} }

// Has reports whether sig is in the set.
func (s Set) Has(sig string) bool {
	_, ok := s[sig]
	return ok
}

// Len returns the number of signatures.
func (s Set) Len() int { return len(s) }

// Sorted returns the signatures in lexical order.
func (s Set) Sorted() []string { return slices.Sorted(maps.Keys(s)) }

// Union returns a new set holding the signatures of s and o.
func (s Set) Union(o Set) Set {
	out := maps.Clone(s)
	if out == nil {
		out = Set{}
	}
	maps.Copy(out, o)
	return out
}

// Intersect returns the signatures present in both s and o.
func (s Set) Intersect(o Set) Set {
	out := Set{}
	for sig := range s {
		if o.Has(sig) {
			out.Add(sig)
		}
	}
	return out
}

// Diff returns the signatures of s that are not in o.
func (s Set) Diff(o Set) Set {
	out := Set{}
	for sig := range s {
		if !o.Has(sig) {
			out.Add(sig)
		}
	}
	return out
}

// Normalize returns the signature of one class token.
func Normalize(token string) string {
	segs := strings.Split(token, "-")
	for i := 1; i < len(segs); i++ {
		segs[i] = "$" + strconv.Itoa(i)
	}
	return strings.Join(segs, "-")
}

// Extract returns the signatures of the direct keys of tree. Compound
// selectors contribute one signature per whitespace-separated token; nested
// mappings are not visited.
func Extract(tree sheet.Mapping) Set {
	s := Set{}
	for k := range tree {
		addTokens(s, k)
	}
	return s
}

// FromClasses returns the signatures of every token in lines, where each
// line holds whitespace-separated class names.
func FromClasses(lines []string) Set {
	s := Set{}
	for _, line := range lines {
		addTokens(s, line)
	}
	return s
}

func addTokens(s Set, line string) {
	for _, tok := range strings.Fields(line) {
		s.Add(Normalize(tok))
	}
}

var classAttrRe = regexp.MustCompile(`(?:^|\s)class\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// ScanClasses finds class attributes in markup and returns one line per
// attribute with every class prefixed by "." so the result is comparable
// with selector signatures. Bound attributes such as :class are skipped.
func ScanClasses(src []byte) []string {
	var lines []string
	for _, m := range classAttrRe.FindAllSubmatch(src, -1) {
		val := m[1]
		if val == nil {
			val = m[2]
		}
		fields := strings.Fields(string(val))
		if len(fields) == 0 {
			continue
		}
		for i, f := range fields {
			fields[i] = "." + f
		}
		lines = append(lines, strings.Join(fields, " "))
	}
	return lines
}
