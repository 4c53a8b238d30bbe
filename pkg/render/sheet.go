package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/fcss/pkg/sheet"
)

// Sheet renders m as canonical reg text.
func Sheet(m sheet.Mapping) string {
	var b strings.Builder
	writeMapping(&b, m)
	return b.String()
}

// Write renders m to w.
func Write(w io.Writer, m sheet.Mapping) error {
	bw := bufio.NewWriter(w)
	writeMapping(bw, m)
	return bw.Flush()
}

type stringWriter interface {
	WriteString(s string) (int, error)
}

func writeMapping(w stringWriter, m sheet.Mapping) {
	for _, k := range m.Keys() {
		switch n := m[k].(type) {
		case sheet.Leaf:
			if n.Value == "" {
				// "k:;" would not parse back.
				w.WriteString(k + ": ;\n")
				continue
			}
			w.WriteString(k + ":" + n.Value + ";\n")
		case sheet.Extend:
			w.WriteString("?" + k + ";\n")
		case sheet.Import:
			w.WriteString("@import(" + n.Path + ")\n")
		case sheet.Mapping:
			w.WriteString(k + "{\n")
			writeMapping(w, n)
			w.WriteString("}\n")
		}
	}
}
