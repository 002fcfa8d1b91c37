package resource

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-admin/internal/model"
)

type fakeUploader struct {
	called   bool
	filename string
	content  []byte
	env      model.Envelope
}

func (f *fakeUploader) Upload(_ context.Context, filename string, content io.Reader) model.Envelope {
	f.called = true
	f.filename = filename
	f.content, _ = io.ReadAll(content)
	return f.env
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)

	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestFileUpload_ForwardsValidImage(t *testing.T) {
	uploader := &fakeUploader{env: model.Envelope{OK: true, Status: 200}}
	svc := NewFileService(uploader, 1<<20)

	payload := pngBytes(t)
	env, err := svc.Upload(context.Background(), "cover.png", bytes.NewReader(payload))

	require.NoError(t, err)
	assert.True(t, env.OK)
	assert.True(t, uploader.called)
	assert.Equal(t, "cover.png", uploader.filename)
	assert.Equal(t, payload, uploader.content)
}

func TestFileUpload_RejectsNonImage(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewFileService(uploader, 1<<20)

	_, err := svc.Upload(context.Background(), "notes.txt", strings.NewReader("plain text"))

	assert.ErrorIs(t, err, model.ErrNotAnImage)
	assert.False(t, uploader.called, "invalid uploads must not reach upstream")
}

func TestFileUpload_RejectsOversized(t *testing.T) {
	uploader := &fakeUploader{}
	payload := pngBytes(t)
	svc := NewFileService(uploader, int64(len(payload)-1))

	_, err := svc.Upload(context.Background(), "cover.png", bytes.NewReader(payload))

	assert.ErrorIs(t, err, model.ErrUploadTooLarge)
	assert.False(t, uploader.called)
}
