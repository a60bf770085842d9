package handler

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/portal-client/internal/core/form"
	"github.com/jobportal/portal-client/internal/core/service"
)

// FormCatalog resolves form names to their submission specs.
type FormCatalog interface {
	Spec(name string) (service.FormSpec, error)
}

// DraftSource hands out the draft of a form on the mounted screen.
type DraftSource interface {
	Get(name string) (*form.Draft, error)
}

// Submitter runs the submission pipeline.
type Submitter interface {
	Submit(ctx context.Context, spec service.FormSpec, draft *form.Draft) (*service.Result, error)
}

// filePart is the multipart part SetField reads a file from.
const filePart = "file"

// FormHandler edits, validates and submits form drafts.
type FormHandler struct {
	forms     FormCatalog
	drafts    DraftSource
	submitter Submitter
}

func NewFormHandler(forms FormCatalog, drafts DraftSource, submitter Submitter) *FormHandler {
	return &FormHandler{forms: forms, drafts: drafts, submitter: submitter}
}

// Validate handles POST /forms/:name/validate.
//
// @Summary      Validate form values
// @Description  Replaces the draft's values and returns the field errors. Nothing is sent to the portal service.
// @Tags         forms
// @Accept       json,mpfd
// @Produce      json
// @Param        name  path      string  true  "Form name"
// @Success      200   {object}  validateResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /forms/{name}/validate [post]
func (h *FormHandler) Validate(c echo.Context) error {
	draft, err := h.drafts.Get(c.Param("name"))
	if err != nil {
		return err
	}
	in, err := readInput(c)
	if err != nil {
		return err
	}
	errs, err := draft.Replace(in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, validateResponse{Valid: errs.Empty(), Errors: errs})
}

// Submit handles POST /forms/:name/submit.
//
// @Summary      Submit a form
// @Tags         forms
// @Accept       json,mpfd
// @Produce      json
// @Param        name  path      string  true  "Form name"
// @Success      200   {object}  submitResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      413   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /forms/{name}/submit [post]
func (h *FormHandler) Submit(c echo.Context) error {
	spec, err := h.forms.Spec(c.Param("name"))
	if err != nil {
		return err
	}
	draft, err := h.drafts.Get(c.Param("name"))
	if err != nil {
		return err
	}
	in, err := readInput(c)
	if err != nil {
		return err
	}
	if _, err := draft.Replace(in); err != nil {
		return err
	}

	res, err := h.submitter.Submit(c.Request().Context(), spec, draft)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, submitResponse{Form: res.Form, Message: res.Message, Location: res.Location})
}

// Draft handles GET /forms/:name.
//
// @Summary      Current draft
// @Description  Values, errors from the last validation run and whether a submission holds the draft.
// @Tags         forms
// @Produce      json
// @Param        name  path      string  true  "Form name"
// @Success      200   {object}  draftResponse
// @Failure      404   {object}  errorResponse
// @Router       /forms/{name} [get]
func (h *FormHandler) Draft(c echo.Context) error {
	draft, err := h.drafts.Get(c.Param("name"))
	if err != nil {
		return err
	}
	values := draft.Values()
	files := make([]string, 0, len(values.Files))
	for name, f := range values.Files {
		if f != nil {
			files = append(files, name)
		}
	}
	sort.Strings(files)
	errs := draft.Errors()
	return c.JSON(http.StatusOK, draftResponse{
		Values:   values.Fields,
		Files:    files,
		Valid:    errs.Empty(),
		Errors:   errs,
		InFlight: draft.InFlight(),
	})
}

// SetField handles PUT /forms/:name/fields/:field. A JSON body sets a text
// value; a multipart body attaches its "file" part to the field.
//
// @Summary      Change one field
// @Description  Re-runs validation after the change, as a screen does on every keystroke.
// @Tags         forms
// @Accept       json,mpfd
// @Produce      json
// @Param        name   path      string        true  "Form name"
// @Param        field  path      string        true  "Field name"
// @Param        body   body      fieldRequest  false "Text value"
// @Success      200    {object}  validateResponse
// @Failure      404    {object}  errorResponse
// @Failure      409    {object}  errorResponse
// @Failure      413    {object}  errorResponse
// @Router       /forms/{name}/fields/{field} [put]
func (h *FormHandler) SetField(c echo.Context) error {
	draft, err := h.drafts.Get(c.Param("name"))
	if err != nil {
		return err
	}
	field := c.Param("field")

	var errs form.Errors
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, ferr := c.FormFile(filePart)
		if ferr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "missing file part")
		}
		f, ferr := readFile(field, fh)
		if ferr != nil {
			return ferr
		}
		errs, err = draft.SetFile(field, f)
	} else {
		var req fieldRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		errs, err = draft.Set(field, req.Value)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, validateResponse{Valid: errs.Empty(), Errors: errs})
}

// ClearFile handles DELETE /forms/:name/files/:field.
//
// @Summary      Detach a file
// @Tags         forms
// @Produce      json
// @Param        name   path      string  true  "Form name"
// @Param        field  path      string  true  "Field name"
// @Success      200    {object}  validateResponse
// @Failure      404    {object}  errorResponse
// @Failure      409    {object}  errorResponse
// @Router       /forms/{name}/files/{field} [delete]
func (h *FormHandler) ClearFile(c echo.Context) error {
	draft, err := h.drafts.Get(c.Param("name"))
	if err != nil {
		return err
	}
	errs, err := draft.SetFile(c.Param("field"), nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, validateResponse{Valid: errs.Empty(), Errors: errs})
}
