package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/rentmoment/rental-api/config"
	"github.com/rentmoment/rental-api/internal/dto"
	apperrors "github.com/rentmoment/rental-api/internal/errors"
	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/logger"
)

// UploadService stores product images on the local disk. Stored files are
// named by uuid and served read-only under the public path.
type UploadService struct {
	cfg config.UploadConfig
}

func NewUploadService(cfg config.UploadConfig) (*UploadService, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.Dir, err)
	}
	return &UploadService{cfg: cfg}, nil
}

func (s *UploadService) MaxFiles() int { return s.cfg.MaxFiles }

func (s *UploadService) allowed(mtype *mimetype.MIME) bool {
	for _, t := range s.cfg.AllowedTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}

// Save validates one multipart file and writes it to the upload directory.
func (s *UploadService) Save(ctx context.Context, fh *multipart.FileHeader) (*dto.UploadResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "SaveUpload")

	if fh == nil {
		return nil, apperrors.ErrNoFile
	}
	if fh.Size > s.cfg.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
	}
	defer src.Close()

	// Headers may lie about the size; read at most one byte past the cap.
	data, err := io.ReadAll(io.LimitReader(src, s.cfg.MaxFileSize+1))
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
	}
	if int64(len(data)) > s.cfg.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	if !s.allowed(mtype) {
		logger.WarnWithContext(ctx, "Rejected upload by content type").
			String("original_name", fh.Filename).
			String("mime_type", mtype.String()).
			Log()
		return nil, apperrors.ErrFileTypeRejected
	}

	name := uuid.NewString() + mtype.Extension()
	dst := filepath.Join(s.cfg.Dir, name)
	if err := writeFile(dst, data); err != nil {
		logger.ErrorWithContext(ctx, "Failed to store upload").
			String("filename", name).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "File uploaded").
		String("filename", name).
		String("mime_type", mtype.String()).
		Int64("size", int64(len(data))).
		Log()

	return &dto.UploadResponse{
		Filename:     name,
		OriginalName: filepath.Base(fh.Filename),
		URL:          path.Join(s.cfg.PublicPath, name),
		Size:         int64(len(data)),
		MimeType:     mtype.String(),
	}, nil
}

// SaveAll stores every file or none of them.
func (s *UploadService) SaveAll(ctx context.Context, files []*multipart.FileHeader) ([]dto.UploadResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.ErrNoFile
	}
	if len(files) > s.cfg.MaxFiles {
		return nil, apperrors.WithMessage(apperrors.ErrTooManyFiles,
			fmt.Sprintf("at most %d files can be uploaded at once", s.cfg.MaxFiles))
	}

	out := make([]dto.UploadResponse, 0, len(files))
	for _, fh := range files {
		res, err := s.Save(ctx, fh)
		if err != nil {
			for _, saved := range out {
				_ = os.Remove(filepath.Join(s.cfg.Dir, saved.Filename))
			}
			return nil, err
		}
		out = append(out, *res)
	}
	return out, nil
}

// Delete removes a stored file. Names that are not a plain file name are
// rejected so nothing outside the upload directory can be reached.
func (s *UploadService) Delete(ctx context.Context, filename string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteUpload")

	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		logger.WarnWithContext(ctx, "Rejected upload delete").
			String("filename", filename).
			Log()
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid filename")
	}

	if err := os.Remove(filepath.Join(s.cfg.Dir, filename)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.ErrFileNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "File deleted").
		String("filename", filename).
		Log()
	return nil
}

func writeFile(dst string, data []byte) error {
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		_ = os.Remove(dst)
		return err
	}
	return f.Close()
}
