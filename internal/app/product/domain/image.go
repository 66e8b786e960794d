package domain

import "strings"

// MaxImageBytes is the largest accepted product image.
const MaxImageBytes int64 = 10 << 20

// ImageFile is an uploaded product image.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// NewImageFile builds an ImageFile whose size is taken from data.
func NewImageFile(name, contentType string, data []byte) *ImageFile {
	return &ImageFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}
}

// ValidateImageFile checks presence, size and MIME type, in that order.
func ValidateImageFile(f *ImageFile) error {
	if f == nil || f.Size <= 0 {
		return NewError(KindInvalidFile, MsgInvalidFile)
	}
	if f.Size > MaxImageBytes {
		return NewError(KindTooLarge, MsgFileTooLarge)
	}
	if !strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
		return NewError(KindInvalidFile, MsgInvalidFileType)
	}
	return nil
}
