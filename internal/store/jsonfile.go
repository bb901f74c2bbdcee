package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadError reports that a JSON store file was missing, unreadable or
// malformed. The accompanying value is always a usable default.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// NotExist reports whether the file simply has not been created yet.
func (e *ReadError) NotExist() bool {
	return errors.Is(e.Err, fs.ErrNotExist)
}

// Malformed reports whether the file was read but did not decode.
func (e *ReadError) Malformed() bool {
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	return errors.As(e.Err, &syntax) || errors.As(e.Err, &typ)
}

// readJSON decodes path into v. Any failure is returned as *ReadError and
// leaves v untouched.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ReadError{Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ReadError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// writeJSONAtomic replaces path with the indented JSON encoding of v.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return WriteFileAtomic(path, data)
}

// WriteFileAtomic replaces path with data. The data is written to a temp
// file in the same directory, synced, then renamed over the target so
// readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
