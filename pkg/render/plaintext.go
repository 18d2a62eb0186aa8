package render

import (
	"strings"
	"unicode/utf8"
)

// writeText lays out v as plain structured text. headingPrefix and underline
// let the LaTeX prompt reuse the same layout.
func writeText(v view, headingPrefix string, underline bool) (out string) {
	blocks := make([]string, 0, len(v.Sections)+1)

	// Contact block
	header := make([]string, 0, 2)
	if v.Name != "" {
		header = append(header, v.Name)
	}
	if len(v.Contact) > 0 {
		header = append(header, strings.Join(v.Contact, " | "))
	}
	if len(header) > 0 {
		blocks = append(blocks, strings.Join(header, "\n"))
	}

	for _, s := range v.Sections {
		lines := []string{headingPrefix + s.Heading}
		if underline {
			lines = append(lines, strings.Repeat("-", utf8.RuneCountInString(s.Heading)))
		}

		entries := make([]string, 0, len(s.Entries))
		for _, e := range s.Entries {
			entries = append(entries, textEntry(e))
		}

		sep := "\n\n"
		if s.Compact {
			sep = "\n"
		}
		lines = append(lines, strings.Join(entries, sep))

		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	out = strings.TrimRight(strings.Join(blocks, "\n\n"), " \t\r\n")
	return out
}

func textEntry(e entry) (out string) {
	if e.Label != "" {
		out = e.Label + ": " + e.Value
		return out
	}

	lines := make([]string, 0, 2+len(e.Meta)+len(e.Text)+len(e.Bullets))
	if headline := joinPresent(" | ", e.Title, e.Org); headline != "" {
		lines = append(lines, headline)
	}
	lines = append(lines, e.Meta...)
	for _, t := range e.Text {
		lines = append(lines, trimLines(t))
	}
	for _, b := range e.Bullets {
		lines = append(lines, "- "+b)
	}

	out = strings.Join(lines, "\n")
	return out
}

// trimLines strips trailing whitespace from every line of a multi-line value.
func trimLines(s string) (out string) {
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimRight(p, " \t\r")
	}
	out = strings.Join(parts, "\n")
	return out
}

func joinPresent(sep string, values ...string) (out string) {
	present := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			present = append(present, v)
		}
	}
	out = strings.Join(present, sep)
	return out
}
