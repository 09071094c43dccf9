package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/internal/constants"
	apperrors "github.com/rentmoment/rental-api/internal/errors"
	"github.com/rentmoment/rental-api/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Single stores the multipart file "image".
func (h *UploadHandler) Single(c *gin.Context) {
	ctx := requestContext(c, "UploadImage")

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = apperrors.ErrNoFile
		} else {
			err = apperrors.WrapError(apperrors.ErrInvalidInput, err)
		}
		respondError(c, ctx, err)
		return
	}

	res, err := h.uploadService.Save(ctx, fh)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataMessageResponse("File uploaded successfully", res))
}

// Multiple stores every multipart file under "images".
func (h *UploadHandler) Multiple(c *gin.Context) {
	ctx := requestContext(c, "UploadImages")

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, ctx, apperrors.WrapError(apperrors.ErrNoFile, err))
		return
	}

	res, err := h.uploadService.SaveAll(ctx, form.File["images"])
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataMessageResponse("Files uploaded successfully", res))
}

func (h *UploadHandler) Delete(c *gin.Context) {
	ctx := requestContext(c, "DeleteUpload")

	if err := h.uploadService.Delete(ctx, c.Param("filename")); err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("File deleted successfully"))
}
