package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"cms-admin/internal/model"
	"cms-admin/internal/resource"
)

type FileHandler struct {
	Base
	files *resource.FileService
}

func NewFileHandler(base Base, files *resource.FileService) *FileHandler {
	return &FileHandler{Base: base, files: files}
}

// Upload forwards an image to the upstream and hands its id back to the
// originating form through the return URL.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	returnURL := sanitizeReturnURL(r.PostFormValue("return"))

	file, header, err := r.FormFile("file")
	if err != nil {
		h.toastError(r, "Please choose a file to upload.")
		redirect(w, r, returnURL)
		return
	}
	defer file.Close()

	env, err := h.files.Upload(r.Context(), header.Filename, file)
	switch {
	case errors.Is(err, model.ErrUploadTooLarge):
		h.toastError(r, "Image is too large.")
		redirect(w, r, returnURL)
		return
	case errors.Is(err, model.ErrNotAnImage):
		h.toastError(r, "Only image files can be uploaded.")
		redirect(w, r, returnURL)
		return
	case err != nil:
		h.toastError(r, "Upload failed. Please try again.")
		redirect(w, r, returnURL)
		return
	}

	if !env.OK {
		h.toastError(r, env.Error)
		redirect(w, r, returnURL)
		return
	}

	var stored struct {
		ID string `json:"id"`
	}
	if err := model.DecodeData(env, &stored); err != nil || stored.ID == "" {
		h.toastError(r, "Upload failed. Please try again.")
		redirect(w, r, returnURL)
		return
	}

	h.toastSuccess(r, "Image uploaded successfully")

	separator := "?"
	if strings.Contains(returnURL, "?") {
		separator = "&"
	}
	redirect(w, r, returnURL+separator+"image_id="+url.QueryEscape(stored.ID))
}

// sanitizeReturnURL keeps redirects on-site; anything absolute is dropped.
func sanitizeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/blogs"
	}

	return raw
}
