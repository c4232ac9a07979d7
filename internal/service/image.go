package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipeshare/backend/internal/storage"
)

// MaxImageSize bounds an uploaded recipe image
const MaxImageSize = 10 << 20

// ImageUpload is an uploaded image file as received from the client
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

// readImage loads the upload and checks that its content sniffs as an image
func readImage(up *ImageUpload) ([]byte, *mimetype.MIME, error) {
	data, err := io.ReadAll(io.LimitReader(up.Body, MaxImageSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, NewFieldError("image", "The submitted file is empty.")
	}
	if len(data) > MaxImageSize {
		return nil, nil, NewFieldError("image", fmt.Sprintf("Ensure the image is at most %d bytes.", MaxImageSize))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, nil, NewFieldError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	return data, mtype, nil
}

// saveImage writes validated image bytes to the store under images/<uuid><ext>
func saveImage(ctx context.Context, store storage.ImageStore, data []byte, mtype *mimetype.MIME) (string, error) {
	key := "images/" + uuid.NewString() + mtype.Extension()
	ref, err := store.Save(ctx, key, mtype.String(), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return ref, nil
}

// discardImage removes a stored image, logging rather than failing
func discardImage(ctx context.Context, store storage.ImageStore, log *zap.Logger, ref string) {
	if ref == "" {
		return
	}
	if err := store.Delete(ctx, ref); err != nil {
		log.Warn("failed to remove stored image", zap.String("image", ref), zap.Error(err))
	}
}
