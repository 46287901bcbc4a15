package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedExtensions lists the file extensions picked up from directories.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// ImageFile represents an image file.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Name is the file name without its directory. The extension is kept so
	// inputs differing only by extension get distinct outputs.
	Name string
	// Data is the raw bytes of the image file.
	Data []byte
}

// IsSupported reports whether path has a supported image extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// LoadImageFiles reads a single file, or every supported image file directly
// inside a directory, sorted by path.
//
// Arguments:
// - path: File or directory path.
//
// Returns:
// - []ImageFile: Slice of ImageFile, each containing the raw bytes of an image file.
// - error: Error if loading fails.
func LoadImageFiles(path string) ([]ImageFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		file, err := loadImageFile(path)
		if err != nil {
			return nil, err
		}
		return []ImageFile{file}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var images []ImageFile
	for _, entry := range entries {
		if entry.IsDir() || !IsSupported(entry.Name()) {
			continue
		}
		file, err := loadImageFile(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, err
		}
		images = append(images, file)
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Path < images[j].Path
	})

	return images, nil
}

func loadImageFile(path string) (ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageFile{}, err
	}
	return ImageFile{
		Path: path,
		Name: filepath.Base(path),
		Data: data,
	}, nil
}
