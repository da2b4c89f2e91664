package business

import (
	"strings"

	"github.com/Legend-Systems/service-media/service/types"
	"github.com/gabriel-vasile/mimetype"
)

// documentMimetypes are non image/audio/video types still treated as
// first class documents rather than "other".
var documentMimetypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-powerpoint":                                     true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/rtf": true,
	"text/csv":        true,
}

// blockedMimetypes are rejected outright at classification.
var blockedMimetypes = map[string]bool{
	"application/x-msdownload":    true,
	"application/x-dosexec":       true,
	"application/x-executable":    true,
	"application/x-elf":           true,
	"application/x-mach-binary":   true,
	"application/x-sh":            true,
	"application/x-bat":           true,
	"application/vnd.microsoft.portable-executable": true,
}

// ClassifyMedia inspects the actual bytes to assign a media kind.
// Content inspection wins over the declared content type, the declared
// type is only used when sniffing is inconclusive.
func ClassifyMedia(declaredMime string, data []byte) (types.MediaKind, string, error) {
	detected := mimetype.Detect(data).String()

	mime := normalizeMime(detected)
	if mime == "application/octet-stream" && declaredMime != "" {
		mime = normalizeMime(declaredMime)
	}

	if blockedMimetypes[mime] {
		return "", mime, ValidationErrorf("unsupported mime type %s", mime)
	}

	return KindFromMime(mime), mime, nil
}

// KindFromMime maps a content type onto the media kind taxonomy.
func KindFromMime(mime string) types.MediaKind {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return types.KindImage
	case strings.HasPrefix(mime, "video/"):
		return types.KindVideo
	case strings.HasPrefix(mime, "audio/"):
		return types.KindAudio
	case strings.HasPrefix(mime, "text/") || documentMimetypes[mime]:
		return types.KindDocument
	default:
		return types.KindOther
	}
}

// normalizeMime strips parameters such as charset from a content type.
func normalizeMime(mime string) string {
	if idx := strings.IndexByte(mime, ';'); idx >= 0 {
		mime = mime[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
