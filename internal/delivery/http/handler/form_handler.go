package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"resume-analyzer/internal/domain/analysis"
	"resume-analyzer/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// FormHandler serves the browser upload form. Its POST answers with the
// legacy shape: the analysis, or an "Error analyzing resume: ..." string.
type FormHandler struct {
	uc usecase.ResumeUsecase
}

func NewFormHandler(uc usecase.ResumeUsecase) *FormHandler {
	return &FormHandler{uc: uc}
}

func (h *FormHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Index)
	r.Post("/", h.Submit)
}

type indexPage struct {
	Error string
}

type resultPage struct {
	Result  *analysis.Result
	Message string
}

func (h *FormHandler) Index(c fiber.Ctx) error {
	return render(c, fiber.StatusOK, "index.html", indexPage{})
}

func (h *FormHandler) Submit(c fiber.Ctx) error {
	wantsJSON := c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON

	sub, err := h.submit(c)
	if err != nil {
		status := uploadErrorStatus(err)
		if wantsJSON {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		return render(c, status, "index.html", indexPage{Error: err.Error()})
	}

	legacy := sub.Outcome.Legacy()
	if wantsJSON {
		return c.JSON(fiber.Map{"analysis": legacy})
	}
	page := resultPage{Result: sub.Outcome.Result}
	if msg, ok := legacy.(string); ok {
		page.Message = msg
	}
	return render(c, fiber.StatusOK, "result.html", page)
}

func (h *FormHandler) submit(c fiber.Ctx) (usecase.Submission, error) {
	fh, err := readUpload(c)
	if err != nil {
		return usecase.Submission{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return usecase.Submission{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	defer f.Close()
	return h.uc.Submit(c.Context(), usecase.Upload{Filename: fh.Filename, Content: f})
}

func render(c fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
