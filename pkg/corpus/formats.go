package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the on-disk corpus formats.
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatText                // "word frequency" per line
	FormatSnapshot            // msgpack encoded Snapshot
)

// ErrUnknownFormat is returned when a corpus file cannot be classified.
var ErrUnknownFormat = errors.New("corpus: unknown file format")

// FormatInfo contains metadata about a corpus file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word Frequencies",
		Extensions:  []string{".txt"},
		MinSize:     0,
	},
	FormatSnapshot: {
		Format:      FormatSnapshot,
		Description: "MessagePack Corpus Snapshot",
		Extensions:  []string{".msgpack", ".mpk"},
		MinSize:     1, // at least the map header
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expected FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	formatInfo, exists := supportedFormats[expected]
	if !exists {
		return fmt.Errorf("%w: %d", ErrUnknownFormat, expected)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, valid := range formatInfo.Extensions {
		if ext == valid {
			log.Debugf("Corpus file %s validated as %s", filename, formatInfo.Description)
			return nil
		}
	}
	return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
		filename, ext, formatInfo.Description, formatInfo.Extensions)
}

// DetectFileFormat classifies a corpus file by its extension.
func DetectFileFormat(filename string) (FileFormat, error) {
	for _, format := range []FileFormat{FormatText, FormatSnapshot} {
		if err := ValidateFileFormat(filename, format); err == nil {
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}
