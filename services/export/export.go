// Package exportsvc generates the blank student admission application form
// for download. The primary rendition is a native PDF; if the generated PDF
// fails validation at startup the service falls back to a printable HTML
// rendition for all requests.
package exportsvc

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pkg/errors"

	"github.com/kingsolomonjunior/admissions/core"
)

// School identity as printed on the form.
const (
	schoolName     = "King Solomon Junior Primary School"
	schoolTagline  = "Excellence in Education"
	schoolLocation = "Koginga Road, Asego, Homa Bay County, Kenya"
	schoolPhone    = "+254 720 456 789"
	schoolEmail    = "info@kingsolomonjunior.ac.ke"
	schoolWebsite  = "www.kingsolomonjunior.co.ke"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

var ErrUnsupportedFormat = errors.New("exportsvc: unsupported format")

// Document is a rendered form ready to be served as a download.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Service struct {
	logger core.Logger
	pdfOK  bool
}

// NewService probes the PDF renderer once: it renders a form and runs it
// through pdfcpu validation. A failed probe permanently degrades PDF requests
// to the HTML rendition instead of handing parents a broken file.
func NewService(logger core.Logger) *Service {
	svc := &Service{logger: logger}
	if err := svc.probePDF(); err != nil {
		logger.Warn(fmt.Sprintf("pdf renderer failed validation, serving html form instead: %v", err), err)
	} else {
		svc.pdfOK = true
	}
	return svc
}

func (svc *Service) probePDF() error {
	data := pdfFormRenderer{now: time.Now()}.render()
	return validatePDF(data)
}

func validatePDF(data []byte) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return errors.Wrap(err, "reading pdf")
	}
	return errors.Wrap(ctx.EnsurePageCount(), "resolving page count")
}

// ApplicationForm renders the blank form. A PDF request silently degrades to
// HTML when the startup probe failed.
func (svc *Service) ApplicationForm(format Format) (Document, error) {
	switch format {
	case FormatPDF:
		if svc.pdfOK {
			return svc.renderPDF()
		}
		return svc.renderHTML()
	case FormatHTML:
		return svc.renderHTML()
	default:
		return Document{}, ErrUnsupportedFormat
	}
}

func (svc *Service) renderPDF() (Document, error) {
	now := time.Now()
	return Document{
		Filename:    fmt.Sprintf("King_Solomon_Junior_Application_Form_%d.pdf", now.Year()),
		ContentType: "application/pdf",
		Data:        pdfFormRenderer{now: now}.render(),
	}, nil
}

func (svc *Service) renderHTML() (Document, error) {
	r := htmlFormRenderer{now: time.Now()}
	data, err := r.render()
	if err != nil {
		return Document{}, err
	}
	return Document{
		Filename:    r.filename(),
		ContentType: "text/html; charset=utf-8",
		Data:        data,
	}, nil
}
