package validation

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// ErrUnreadableImage means the bytes are not a decodable image of an allowed type.
var ErrUnreadableImage = errors.New("the image could not be read")

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// ImageConstraints covers meal photos and chat images.
var ImageConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	AllowedExtensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	},
	MaxSize: 5 << 20, // 5MB
}

// ReadUpload checks size and extension of an uploaded file and returns its
// bytes. Content checks are left to DetectImage.
func ReadUpload(header *multipart.FileHeader, constraints FileConstraints) ([]byte, error) {
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return nil, fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != "" && !constraints.AllowedExtensions[ext] {
		return nil, fmt.Errorf("invalid file extension: %s", ext)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, constraints.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return nil, fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	return data, nil
}

// DetectImage sniffs the content type from magic numbers, which cannot be
// faked by a Content-Type header, and decodes the header of JPEG and PNG data.
func DetectImage(data []byte, constraints FileConstraints) (string, error) {
	if len(data) == 0 {
		return "", ErrUnreadableImage
	}

	detected := http.DetectContentType(data)
	if !constraints.AllowedMimeTypes[detected] {
		return "", ErrUnreadableImage
	}

	if detected == "image/jpeg" || detected == "image/png" {
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return "", ErrUnreadableImage
		}
	}

	return detected, nil
}
