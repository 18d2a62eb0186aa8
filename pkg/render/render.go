// Package render projects a profile document into plain text, styled markup
// and the escaped text handed to the LaTeX generation service.
//
// Rendering is pure: the same document, order and target always produce the
// same bytes, and the document is never modified.
package render

import (
	"github.com/pkg/errors"

	"github.com/nikogura/cvforge/pkg/ordering"
	"github.com/nikogura/cvforge/pkg/profile"
)

// Render renders doc with its sections in order. The summary, when present,
// always comes first. Keys in order that name empty sections are skipped.
func Render(doc profile.Document, order []profile.SectionKey, target Target) (out string, err error) {
	switch target {
	case TargetPlainText:
		v := buildView(doc, order, style{escape: identity, upper: upper, upperTitles: true})
		out = writeText(v, "", true)
	case TargetStyledMarkup:
		v := buildView(doc, order, style{escape: identity, upper: upper})
		out, err = writeMarkup(v)
	case TargetLatexPrompt:
		v := buildView(doc, order, style{escape: EscapeLatex, upper: upperKeepingEscapes, upperTitles: true})
		out = writeLatexPrompt(v)
	default:
		err = errors.Wrapf(ErrUnsupportedTarget, "%q", string(target))
	}
	return out, err
}

// RenderDocument reconciles the stored section order of doc and renders it.
func RenderDocument(doc profile.Document, target Target) (out string, err error) {
	out, err = Render(doc, ordering.ReconcileDocument(doc), target)
	return out, err
}
