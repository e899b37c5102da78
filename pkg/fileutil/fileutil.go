// Package fileutil writes report files with tmp+mv semantics so readers
// never observe a partially written report.
package fileutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const tmpSuffix = ".tmp"

// WriteAtomic streams a file through write into a temporary sibling of
// outPath, fsyncs it and renames it into place. On error the temporary
// file is removed and outPath is left untouched.
func WriteAtomic(outPath string, write func(w io.Writer) error) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + tmpSuffix
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flush temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp to final: %w", err)
	}
	return nil
}

// WriteFile atomically replaces outPath with data.
func WriteFile(outPath string, data []byte) error {
	return WriteAtomic(outPath, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
