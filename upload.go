package pfp

import (
	"bytes"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// Upload is a user-chosen base picture, from a file picker or a drop.
type Upload struct {
	Name        string
	ContentType string // declared MIME type; empty means unknown
	Data        []byte
}

// MediaType returns the upload's MIME type: the declared type when present,
// otherwise one guessed from the file extension, otherwise one sniffed from
// the content.
func (u Upload) MediaType() string {
	if u.ContentType != "" {
		if mt, _, err := mime.ParseMediaType(u.ContentType); err == nil {
			return mt
		}
		return ""
	}
	if ext := filepath.Ext(u.Name); ext != "" {
		if t := mime.TypeByExtension(strings.ToLower(ext)); t != "" {
			mt, _, _ := mime.ParseMediaType(t)
			return mt
		}
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(u.Data))
	return mt
}

// IsImage reports whether the upload declares or looks like an image.
func (u Upload) IsImage() bool {
	return strings.HasPrefix(u.MediaType(), "image/")
}

// AcceptUpload replaces the base picture with the upload. Non-image uploads
// are ignored silently; images that fail to decode are logged and ignored.
// Reports whether the base picture changed.
func (e *Editor) AcceptUpload(u Upload) bool {
	if !u.IsImage() {
		return false
	}
	img, format, err := DecodeImage(bytes.NewReader(u.Data))
	if err != nil {
		logger().Warn("upload rejected", "name", u.Name, "err", err)
		return false
	}
	e.SetBaseImage(img)
	b := img.Bounds()
	logger().Info("picture loaded", "name", u.Name, "format", format, "width", b.Dx(), "height", b.Dy())
	return true
}
