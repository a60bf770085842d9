package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/portal-client/internal/core/form"
)

// maxUploadBytes caps a single uploaded file read by the shell.
const maxUploadBytes = 2 * form.MaxImageBytes

// readInput reads form values from a JSON object or a multipart body. JSON
// values of any scalar type are kept as their text form, as a browser would
// submit them.
func readInput(c echo.Context) (form.Input, error) {
	in := form.Input{Fields: map[string]string{}}
	ct := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		mf, err := c.MultipartForm()
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
		}
		for name, vals := range mf.Value {
			if len(vals) > 0 {
				// Repeated parts, as list fields are often posted, join into one
				// comma-separated value.
				in.Fields[name] = strings.Join(vals, ",")
			}
		}
		for name, headers := range mf.File {
			if len(headers) == 0 {
				continue
			}
			f, err := readFile(name, headers[0])
			if err != nil {
				return in, err
			}
			if in.Files == nil {
				in.Files = map[string]*form.File{}
			}
			in.Files[name] = f
		}
		return in, nil
	}

	var raw map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return in, nil
		}
		return in, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case []any:
			parts := make([]string, 0, len(val))
			for _, p := range val {
				parts = append(parts, text(p))
			}
			in.Fields[k] = strings.Join(parts, ",")
		default:
			in.Fields[k] = text(val)
		}
	}
	return in, nil
}

// readFile reads one uploaded part whole. A part over maxUploadBytes is
// refused rather than forwarded short.
func readFile(field string, fh *multipart.FileHeader) (*form.File, error) {
	if fh.Size > maxUploadBytes {
		return nil, tooLarge(field)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file "+field)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file "+field)
	}
	if int64(len(content)) > maxUploadBytes {
		return nil, tooLarge(field)
	}
	return &form.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        int64(len(content)),
		Content:     content,
	}, nil
}

func tooLarge(field string) error {
	return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
		fmt.Sprintf("file %s exceeds %d MB", field, maxUploadBytes/(1024*1024)))
}

func text(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
