package resource

import (
	"bytes"
	"context"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"cms-admin/internal/model"
)

// Uploader is the multipart slice of the upstream client.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) model.Envelope
}

// FileService validates and forwards image uploads. Validation failures
// are local errors and never reach the upstream.
type FileService struct {
	uploader Uploader
	maxSize  int64
}

func NewFileService(uploader Uploader, maxSize int64) *FileService {
	return &FileService{uploader: uploader, maxSize: maxSize}
}

// Upload reads the file, rejects oversized or non-image payloads, and
// forwards the rest to the upstream files endpoint.
func (s *FileService) Upload(ctx context.Context, filename string, content io.Reader) (model.Envelope, error) {
	buf := &bytes.Buffer{}
	n, err := io.Copy(buf, io.LimitReader(content, s.maxSize+1))
	if err != nil {
		return model.Envelope{}, err
	}
	if n > s.maxSize {
		return model.Envelope{}, model.ErrUploadTooLarge
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(buf.Bytes())); err != nil {
		return model.Envelope{}, model.ErrNotAnImage
	}

	return s.uploader.Upload(ctx, filename, buf), nil
}
