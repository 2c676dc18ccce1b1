package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/ByLCY/omrkit/binding"
	"github.com/ByLCY/omrkit/renderer"
	"github.com/ByLCY/omrkit/sheet"
)

var errUnknownFormat = echo.NewHTTPError(http.StatusBadRequest, "format must be pdf, svg or json")

// generate handles GET /omr/generator.
func (s *server) generate(ctx echo.Context) error {
	var q generatorQuery
	q.Bind(ctx.QueryParams())

	cfg := binding.Config(q.Config, q.data(s.opts.Data))
	doc := sheet.Compose(cfg)
	if err := sheet.Verify(doc); err != nil {
		return errors.Wrapf(err, "verify sheet %s", doc.Fingerprint)
	}

	ctx.Response().Header().Set("X-Template-Version", doc.Version)
	ctx.Response().Header().Set("X-Template-Fingerprint", doc.Fingerprint)

	if q.Format == "json" {
		return ctx.JSON(http.StatusOK, doc)
	}
	format, err := renderer.ParseFormat(q.Format)
	if err != nil {
		return errUnknownFormat
	}

	s.renderMu.Lock()
	data, err := s.renderers[format].Render(doc)
	s.renderMu.Unlock()
	if err != nil {
		return errors.Wrap(err, "render sheet")
	}

	s.app.Logger.Debugj(log.JSON{
		"variant":     doc.Variant,
		"questions":   doc.QuestionCount,
		"fingerprint": doc.Fingerprint,
		"format":      string(format),
		"bytes":       len(data),
	})

	disposition := "attachment"
	if format == renderer.SVG {
		disposition = "inline"
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("%s; filename=%q", disposition, filename(doc.Variant, doc.QuestionCount, q.ExamID, format)))
	return ctx.Blob(http.StatusOK, format.ContentType(), data)
}

func filename(variant string, questions int, examID string, format renderer.Format) string {
	name := fmt.Sprintf("omr-%s-%d", variant, questions)
	if examID != "" {
		name += "-" + examID
	}
	return name + "." + string(format)
}
