package io

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	ecode "github.com/matzehuels/ellipsegen/pkg/errors"
)

// DefaultPrefix starts every exported file name.
const DefaultPrefix = "ellipses"

// maxCollisions bounds the suffix search in Export.
const maxCollisions = 1000

var extensions = map[string]string{
	"svg":  "svg",
	"png":  "png",
	"jpeg": "jpg",
	"jpg":  "jpg",
	"pdf":  "pdf",
	"json": "json",
}

// Ext returns the file extension for format, without the dot.
func Ext(format string) (string, error) {
	ext, ok := extensions[format]
	if !ok {
		return "", ecode.New(ecode.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	return ext, nil
}

// Filename returns "<prefix>-<unix millis>.<ext>".
func Filename(prefix, format string, now time.Time) (string, error) {
	ext, err := Ext(format)
	if err != nil {
		return "", err
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	name := fmt.Sprintf("%s-%d.%s", prefix, now.UnixMilli(), ext)
	if err := ecode.ValidateFilename(name); err != nil {
		return "", err
	}
	return name, nil
}

// Export writes data into dir under a timestamped name and returns the path.
// An existing file is never replaced; a numeric suffix is added instead.
func Export(dir, format string, data []byte, now time.Time) (string, error) {
	name, err := Filename(DefaultPrefix, format, now)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	for i := 0; i < maxCollisions; i++ {
		candidate := name
		if i > 0 {
			candidate = stem + "-" + strconv.Itoa(i) + ext
		}
		path := filepath.Join(dir, candidate)

		err := writeExclusive(path, data)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		return path, nil
	}
	return "", fmt.Errorf("no free name for %s in %s after %d attempts", name, dir, maxCollisions)
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
