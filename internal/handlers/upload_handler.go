package handlers

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/httpresp"
	"github.com/BruksfildServices01/estate-listings/internal/middleware"
	"github.com/BruksfildServices01/estate-listings/internal/storage"
)

// maxUploadBody leaves room for multipart framing around five full images.
const maxUploadBody = storage.MaxFileCount*storage.MaxFileSize + 1<<20

type imageUploader interface {
	Upload(ctx context.Context, userID string, files []storage.File) ([]string, error)
}

type UploadHandler struct {
	uploader imageUploader
}

func NewUploadHandler(uploader imageUploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) Images(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	form, err := c.MultipartForm()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Expected multipart form with images")
		return
	}

	headers := form.File["images"]
	files := make([]storage.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "Could not read uploaded file")
			return
		}
		defer func(f multipart.File) { _ = f.Close() }(f)

		files = append(files, storage.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	urls, err := h.uploader.Upload(c.Request.Context(), middleware.CurrentUser(c).ID, files)
	if err != nil {
		writeError(c, err, "Failed to upload images")
		return
	}

	httpresp.Created(c, "", gin.H{"images": urls})
}
