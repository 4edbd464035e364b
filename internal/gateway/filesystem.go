package gateway

import (
	"os"
	"unicode/utf8"
)

// OSFileSystem reads and writes files on the local disk.
type OSFileSystem struct{}

// ReadText reads the whole file and rejects content that is not UTF-8.
func (OSFileSystem) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidData
	}
	return string(data), nil
}

// WriteText replaces the file content, creating it if needed.
func (OSFileSystem) WriteText(path string, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
