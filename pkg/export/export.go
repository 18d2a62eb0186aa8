// Package export turns rendered profiles into downloadable files.
package export

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nikogura/cvforge/pkg/profile"
	"github.com/nikogura/cvforge/pkg/render"
)

// PDFPrinter prints a complete HTML document to PDF bytes.
type PDFPrinter interface {
	PrintHTML(ctx context.Context, html string) (pdf []byte, err error)
}

// Artifact is one exported file.
type Artifact struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Exporter produces artifacts. Printer is only needed for PDF.
type Exporter struct {
	Printer PDFPrinter
}

// Export renders doc in its reconciled section order and packages the result
// as format.
func (e *Exporter) Export(ctx context.Context, doc profile.Document, format Format) (artifact Artifact, err error) {
	if _, ok := formats[format]; !ok {
		err = errors.Wrapf(ErrUnknownFormat, "%q", string(format))
		return artifact, err
	}

	var rendered string
	rendered, err = render.RenderDocument(doc, format.Target())
	if err != nil {
		err = errors.Wrapf(err, "failed to render %s export", format)
		return artifact, err
	}

	artifact = Artifact{
		Filename: Filename(doc.Contact.DisplayName(), format.Extension()),
		MIMEType: format.MIMEType(),
	}

	if format != FormatPDF {
		artifact.Data = []byte(rendered)
		return artifact, err
	}

	if e.Printer == nil {
		err = errors.New("no PDF printer configured")
		return artifact, err
	}

	artifact.Data, err = e.Printer.PrintHTML(ctx, rendered)
	if err != nil {
		err = errors.Wrap(err, "failed to print PDF")
		return artifact, err
	}

	return artifact, err
}
