package echoapi

import (
	"fmt"
	"io/ioutil"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/attachment"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
	exportsvc "github.com/kingsolomonjunior/admissions/services/export"
)

type enrollmentApi struct {
	svc       *enrollment.Service
	exportSvc *exportsvc.Service
}

func registerEnrollmentAPI(g *echo.Group, svc *enrollment.Service, exportSvc *exportsvc.Service) {
	api := enrollmentApi{svc: svc, exportSvc: exportSvc}

	g.POST("/applications", api.submit)
	g.POST("/applications/validate", api.validateStep)
	g.GET("/admissions/form", api.downloadForm)
}

// Handlers

// submit accepts the full application as multipart form data: the draft
// fields plus any number of document uploads. Every step is revalidated
// server-side before the submission pipeline runs.
func (api *enrollmentApi) submit(ctx echo.Context) error {
	var data enrollment.NewApplication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewApplication")
	}

	files, err := bindAttachments(ctx)
	if err != nil {
		return err
	}

	wiz := enrollment.NewWizard(&data, files)
	for !wiz.OnLastStep() {
		if err := wiz.Next(); err != nil {
			return err
		}
	}

	app, err := wiz.Submit(ctx.Request().Context(), api.svc)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, SubmitResponse{ApplicationRef: app.Ref})
}

// validateStep validates the draft fields belonging to a single wizard step,
// so the form UI can gate navigation without duplicating the rules.
func (api *enrollmentApi) validateStep(ctx echo.Context) error {
	var data StepValidationRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StepValidationRequest")
	}

	step := enrollment.Step(data.Step)
	if err := enrollment.ValidateStep(&data.NewApplication, step); err != nil {
		if errors.Cause(err) == enrollment.ErrInvalidStep {
			return core.NewValidationError(nil, core.FieldError{Field: "step", Error: "unknown wizard step"})
		}
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: fmt.Sprintf("step %d is valid", data.Step)})
}

// downloadForm serves the blank application form. Defaults to PDF.
func (api *enrollmentApi) downloadForm(ctx echo.Context) error {
	format := exportsvc.Format(ctx.QueryParam("format"))
	if format == "" {
		format = exportsvc.FormatPDF
	}

	doc, err := api.exportSvc.ApplicationForm(format)
	if err != nil {
		if errors.Cause(err) == exportsvc.ErrUnsupportedFormat {
			return core.NewValidationError(nil, core.FieldError{Field: "format", Error: "supported formats are pdf and html"})
		}
		return errors.Wrap(err, "rendering application form")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return ctx.Blob(http.StatusOK, doc.ContentType, doc.Data)
}

// bindAttachments reads every uploaded file into a validated attachment list.
// Validation failures are collected across the whole batch so the response
// names every rejected file, not just the first one.
func bindAttachments(ctx echo.Context) (*attachment.List, error) {
	files := attachment.NewList()

	form, err := ctx.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return files, nil
		}
		return nil, errors.Wrap(err, "reading multipart form")
	}

	var fldErrs []core.FieldError
	for field, headers := range form.File {
		for _, hdr := range headers {
			f, err := readUpload(field, hdr)
			if err != nil {
				return nil, err
			}
			if _, err := files.Add(f); err != nil {
				if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
					fldErrs = append(fldErrs, vErr.Fields...)
					continue
				}
				return nil, err
			}
		}
	}
	if len(fldErrs) > 0 {
		return nil, core.NewValidationError(nil, fldErrs...)
	}
	return files, nil
}

func readUpload(field string, hdr *multipart.FileHeader) (attachment.File, error) {
	src, err := hdr.Open()
	if err != nil {
		return attachment.File{}, errors.Wrap(err, "opening upload "+hdr.Filename)
	}
	defer src.Close()

	data, err := ioutil.ReadAll(src)
	if err != nil {
		return attachment.File{}, errors.Wrap(err, "reading upload "+hdr.Filename)
	}

	return attachment.File{
		Field:       field,
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get(echo.HeaderContentType),
		Size:        hdr.Size,
		Data:        data,
	}, nil
}

type (
	SubmitResponse struct {
		ApplicationRef string `json:"applicationRef"`
	}

	StepValidationRequest struct {
		Step int `json:"step" form:"step" query:"step"`
		enrollment.NewApplication
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)
