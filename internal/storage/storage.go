// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage uploads product and article images to an object store
// and returns the public URL the backend stores as imageUrl. Two drivers
// exist: S3-compatible storage (AWS SDK v2) and Cloudinary.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload (5 MB).
const MaxImageSize = 5 << 20

var (
	// ErrTooLarge is returned for uploads above MaxImageSize.
	ErrTooLarge = errors.New("storage: image too large")
	// ErrUnsupportedType is returned for anything that does not sniff as
	// an allowed image type.
	ErrUnsupportedType = errors.New("storage: unsupported image type")
)

// allowedImageTypes maps accepted MIME types to the extension used in keys.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, img Image) (string, error)
	Delete(ctx context.Context, url string) error
}

// Image is a validated upload ready to be stored.
type Image struct {
	Key         string
	ContentType string
	Data        []byte
}

// PrepareImage reads r (at most MaxImageSize bytes), sniffs its type and
// builds a unique key under folder. The file name is only used for logs;
// the extension comes from the sniffed type.
func PrepareImage(folder string, r io.Reader, now time.Time) (Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return Image{}, fmt.Errorf("storage: read image: %w", err)
	}
	if len(data) > MaxImageSize {
		return Image{}, ErrTooLarge
	}
	ct := http.DetectContentType(data)
	ext, ok := allowedImageTypes[ct]
	if !ok {
		return Image{}, fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
	}
	return Image{Key: ObjectKey(folder, ext, now), ContentType: ct, Data: data}, nil
}

// ObjectKey returns folder/YYYY/MM/<uuid><ext>.
func ObjectKey(folder, ext string, now time.Time) string {
	name := uuid.NewString() + ext
	return path.Join(strings.Trim(folder, "/"), fmt.Sprintf("%d/%02d", now.Year(), now.Month()), name)
}

func (img Image) reader() *bytes.Reader {
	return bytes.NewReader(img.Data)
}

// New selects the uploader from configuration: Cloudinary when
// cloudinaryURL is set, S3 when an endpoint and keys are set, and nil when
// neither is, in which case uploads are disabled and image URLs are typed
// by hand.
func New(cloudinaryURL string, s3 S3Config) (Uploader, error) {
	if cloudinaryURL != "" {
		return NewCloudinary(cloudinaryURL, s3.Folder)
	}
	c, err := NewS3(s3)
	if err != nil || c == nil {
		return nil, err
	}
	return c, nil
}
