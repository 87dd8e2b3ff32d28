// Package refimage loads an optional reference image from disk so it can be
// attached inline to a generation request.
package refimage

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes is the largest image accepted when no limit is configured.
const DefaultMaxBytes int64 = 20 << 20

var (
	// ErrNotImage is returned when the file content is not a supported image.
	ErrNotImage = errors.New("file is not a supported image")
	// ErrTooLarge is returned when the file exceeds the configured limit.
	ErrTooLarge = errors.New("image too large")
)

// supported lists the MIME types accepted by the model for inline data.
var supported = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
	"image/heic": true,
	"image/heif": true,
}

var byExtension = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".heic": "image/heic",
	".heif": "image/heif",
}

// Image is a fully read reference image.
type Image struct {
	Name     string // Base name of the source file
	MIMEType string
	Data     []byte
}

// Size returns the image size in bytes.
func (i *Image) Size() int {
	return len(i.Data)
}

// String describes the image for status lines and logs.
func (i *Image) String() string {
	return fmt.Sprintf("%s (%s, %s)", i.Name, i.MIMEType, humanSize(int64(len(i.Data))))
}

// Load reads the file at path. maxBytes <= 0 selects DefaultMaxBytes.
func Load(path string, maxBytes int64) (*Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return nil, fmt.Errorf("image path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading image: %s is a directory", path)
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %s", ErrTooLarge, humanSize(info.Size()), humanSize(maxBytes))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	mimeType, err := DetectMIME(filepath.Base(path), data)
	if err != nil {
		return nil, err
	}

	return &Image{
		Name:     filepath.Base(path),
		MIMEType: mimeType,
		Data:     data,
	}, nil
}

// DetectMIME sniffs the content type of data and falls back to the file
// extension for formats the sniffer does not know (HEIC/HEIF).
func DetectMIME(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrNotImage, name)
	}

	sniffed := http.DetectContentType(data)
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = sniffed[:i]
	}
	if supported[sniffed] {
		return sniffed, nil
	}

	// The sniffer reports unknown binary as application/octet-stream.
	if sniffed == "application/octet-stream" {
		if byExt, ok := byExtension[strings.ToLower(filepath.Ext(name))]; ok {
			return byExt, nil
		}
	}

	return "", fmt.Errorf("%w: %s (%s)", ErrNotImage, name, sniffed)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
