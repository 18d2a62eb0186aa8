package export

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/nikogura/cvforge/pkg/render"
)

// Format is a downloadable document type.
type Format string

// Supported formats.
const (
	FormatMarkdown Format = "markdown"
	FormatWord     Format = "word"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ErrUnknownFormat is returned for formats that cannot be exported.
var ErrUnknownFormat = errors.New("unknown export format")

type formatInfo struct {
	target    render.Target
	mimeType  string
	extension string
}

//nolint:gochecknoglobals // lookup table
var formats = map[Format]formatInfo{
	FormatMarkdown: {target: render.TargetPlainText, mimeType: "text/markdown; charset=utf-8", extension: "md"},
	FormatWord:     {target: render.TargetStyledMarkup, mimeType: "application/msword", extension: "doc"},
	FormatHTML:     {target: render.TargetStyledMarkup, mimeType: "text/html; charset=utf-8", extension: "html"},
	FormatPDF:      {target: render.TargetStyledMarkup, mimeType: "application/pdf", extension: "pdf"},
}

// Formats lists the supported formats.
func Formats() (out []Format) {
	out = []Format{FormatMarkdown, FormatWord, FormatHTML, FormatPDF}
	return out
}

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(name string) (format Format, err error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "md", "text", "txt":
		n = string(FormatMarkdown)
	case "doc", "docx":
		n = string(FormatWord)
	}

	format = Format(n)
	if _, ok := formats[format]; !ok {
		format = ""
		err = errors.Wrapf(ErrUnknownFormat, "%q", name)
		return format, err
	}

	return format, err
}

// Target is the render target the format is produced from.
func (f Format) Target() (target render.Target) {
	target = formats[f].target
	return target
}

// MIMEType is the content type served for the format.
func (f Format) MIMEType() (mimeType string) {
	mimeType = formats[f].mimeType
	return mimeType
}

// Extension is the file extension, without the dot.
func (f Format) Extension() (ext string) {
	ext = formats[f].extension
	return ext
}

// Filename builds "<Name>_CV.<ext>" with spaces replaced by underscores. An
// empty name becomes "Resume".
func Filename(name, ext string) (filename string) {
	base := sanitizeFilename(name)
	if base == "" {
		base = "Resume"
	}
	filename = base + "_CV." + strings.TrimPrefix(ext, ".")
	return filename
}

// sanitizeFilename keeps letters, digits, dots, dashes and underscores,
// turning whitespace runs into a single underscore.
func sanitizeFilename(name string) (out string) {
	fields := strings.Fields(name)
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('_')
		}
		for _, r := range f {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
				b.WriteRune(r)
			}
		}
	}
	out = strings.Trim(b.String(), "._")
	return out
}
