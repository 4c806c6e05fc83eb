package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const sniffLimit = 512

var imageExtensions = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".gif":  "gif",
	".webp": "webp",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// IsImageName reports whether name carries a known image extension.
func IsImageName(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// FormatFromName returns the image format implied by the extension, or "".
func FormatFromName(name string) string {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// SniffImageFormat inspects magic bytes and returns the detected format name.
func SniffImageFormat(head []byte) string {
	switch {
	case bytes.HasPrefix(head, []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case bytes.HasPrefix(head, []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case bytes.HasPrefix(head, []byte("GIF87a")), bytes.HasPrefix(head, []byte("GIF89a")):
		return "gif"
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WEBP")):
		return "webp"
	case bytes.HasPrefix(head, []byte("BM")):
		return "bmp"
	case bytes.HasPrefix(head, []byte("II*\x00")), bytes.HasPrefix(head, []byte("MM\x00*")):
		return "tiff"
	}
	return ""
}

// ReadFileHead reads up to limit bytes from the start of path.
func ReadFileHead(path string, limit int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	buf := make([]byte, limit)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:n], nil
}

// DetectImageFormat sniffs the file content and falls back to the extension.
func DetectImageFormat(path string) (string, error) {
	head, err := ReadFileHead(path, sniffLimit)
	if err != nil {
		return "", err
	}
	if format := SniffImageFormat(head); format != "" {
		return format, nil
	}
	return FormatFromName(path), nil
}
