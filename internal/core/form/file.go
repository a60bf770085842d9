package form

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBytes is the upload ceiling applied to every image field.
const MaxImageBytes int64 = 5 * 1024 * 1024

// FileRule constrains an optional file field. A nil file always passes.
type FileRule struct {
	// Allowed lists accepted media types; "image/*" style wildcards match a
	// whole top-level type. Empty means any type.
	Allowed []string
	// MaxBytes is the size ceiling; zero means no ceiling.
	MaxBytes int64

	TypeMessage string
	SizeMessage string
}

// Check returns the violation message for f, or "" when f is acceptable.
func (r FileRule) Check(f *File) string {
	if f == nil {
		return ""
	}
	if len(r.Allowed) > 0 && !r.allows(DetectType(f)) {
		if r.TypeMessage != "" {
			return r.TypeMessage
		}
		return "File type is not allowed"
	}
	if r.MaxBytes > 0 && fileSize(f) > r.MaxBytes {
		if r.SizeMessage != "" {
			return r.SizeMessage
		}
		return "File is too large"
	}
	return ""
}

func (r FileRule) allows(mediaType string) bool {
	for _, a := range r.Allowed {
		if prefix, ok := strings.CutSuffix(a, "/*"); ok {
			if strings.HasPrefix(mediaType, prefix+"/") {
				return true
			}
			continue
		}
		if a == mediaType {
			return true
		}
	}
	return false
}

// DetectType returns the media type of f without parameters. The declared
// content type wins unless it is missing or generic, in which case the
// content is sniffed.
func DetectType(f *File) string {
	declared := normalizeType(f.ContentType)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if len(f.Content) == 0 {
		return declared
	}
	return normalizeType(mimetype.Detect(f.Content).String())
}

func normalizeType(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(ct)
	}
	return mt
}

func fileSize(f *File) int64 {
	if f.Size > 0 {
		return f.Size
	}
	return int64(len(f.Content))
}
