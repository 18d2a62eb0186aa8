package render

import (
	"strings"
)

// latexHeadingPrefix marks section labels in the LaTeX prompt text.
const latexHeadingPrefix = "SECTION: "

// Escaped forms that are recognized as already escaped and kept verbatim.
//
//nolint:gochecknoglobals // lookup tables
var (
	latexWords = []string{`\textbackslash{}`, `\textasciitilde{}`, `\textasciicircum{}`}
	latexPlain = map[rune]string{
		'%': `\%`,
		'&': `\&`,
		'#': `\#`,
		'_': `\_`,
		'{': `\{`,
		'}': `\}`,
		'~': `\textasciitilde{}`,
		'^': `\textasciicircum{}`,
	}
)

// EscapeLatex converts the LaTeX special characters % & # _ { } ~ ^ \ to their
// escaped forms. Sequences that are already escaped, such as \% or
// \textbackslash{}, are left alone, so escaping twice changes nothing.
func EscapeLatex(s string) (out string) {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)

	for i := 0; i < len(s); {
		c := s[i]

		if c == '\\' {
			if kept := escapedAt(s, i); kept != "" {
				b.WriteString(kept)
				i += len(kept)
				continue
			}
			b.WriteString(`\textbackslash{}`)
			i++
			continue
		}

		if rep, ok := latexPlain[rune(c)]; ok {
			b.WriteString(rep)
			i++
			continue
		}

		b.WriteByte(c)
		i++
	}

	out = b.String()
	return out
}

// escapedAt returns the escape sequence starting at s[i], or "" when the
// backslash at s[i] is a literal one.
func escapedAt(s string, i int) (seq string) {
	rest := s[i:]
	for _, w := range latexWords {
		if strings.HasPrefix(rest, w) {
			seq = w
			return seq
		}
	}
	if len(rest) > 1 && strings.IndexByte(`%&#_{}`, rest[1]) >= 0 {
		seq = rest[:2]
		return seq
	}
	return seq
}

// upperKeepingEscapes upper-cases s but leaves escape sequences as written,
// so text that already holds \textasciitilde{} still escapes to itself.
func upperKeepingEscapes(s string) (out string) {
	var b strings.Builder
	start := 0
	for i := 0; i < len(s); {
		if s[i] == '\\' {
			if seq := escapedAt(s, i); seq != "" {
				b.WriteString(upper(s[start:i]))
				b.WriteString(seq)
				i += len(seq)
				start = i
				continue
			}
		}
		i++
	}
	b.WriteString(upper(s[start:]))
	out = b.String()
	return out
}

// writeLatexPrompt flattens v into the text handed to the LaTeX generation
// service. User text in v is already escaped; section labels are not.
func writeLatexPrompt(v view) (out string) {
	out = writeText(v, latexHeadingPrefix, false)
	return out
}
