package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/estate-listings/internal/httperr"
)

const (
	MaxFileSize  = 5 << 20
	MaxFileCount = 5
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// File is one uploaded part as the handler received it.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Uploader struct {
	store      BlobStore
	transcoder Transcoder
}

func NewUploader(store BlobStore, transcoder Transcoder) *Uploader {
	return &Uploader{store: store, transcoder: transcoder}
}

// Upload checks every file first and only then transcodes and stores them,
// so one bad file does not leave half a batch in the bucket.
func (u *Uploader) Upload(ctx context.Context, userID string, files []File) ([]string, error) {
	if err := validateFiles(files); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for i, f := range files {
		data, err := u.transcoder.ToWebP(f.Body)
		if err != nil {
			return nil, httperr.NewValidationError(httperr.FieldError{
				Field:   fmt.Sprintf("images[%d]", i),
				Message: "Invalid image",
			})
		}

		key := fmt.Sprintf("properties/%s/%s.webp", userID, uuid.NewString())
		url, err := u.store.Put(ctx, key, "image/webp", data)
		if err != nil {
			return nil, httperr.External("storage", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func validateFiles(files []File) error {
	switch {
	case len(files) == 0:
		return httperr.NewValidationError(httperr.FieldError{Field: "images", Message: "At least one image is required"})
	case len(files) > MaxFileCount:
		return httperr.NewValidationError(httperr.FieldError{Field: "images", Message: "Maximum 5 images are allowed"})
	}

	var fields []httperr.FieldError
	for i, f := range files {
		field := fmt.Sprintf("images[%d]", i)
		ct := strings.ToLower(strings.TrimSpace(strings.Split(f.ContentType, ";")[0]))
		if !allowedTypes[ct] {
			fields = append(fields, httperr.FieldError{Field: field, Message: "Only .jpg, .jpeg, .png and .webp formats are supported"})
		}
		if f.Size > MaxFileSize {
			fields = append(fields, httperr.FieldError{Field: field, Message: "Max file size is 5MB"})
		}
	}
	if len(fields) > 0 {
		return httperr.NewValidationError(fields...)
	}
	return nil
}
