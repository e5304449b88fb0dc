package utils

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Creates (truncates) the file, making any missing parent directories.
func CreateFile(path string) (file *os.File) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Panic().Err(err).Msg("Failed to create directory: " + dir)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to create file: " + path)
	}
	return file
}
