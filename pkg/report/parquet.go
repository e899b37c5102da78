package report

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// WriteParquet writes one row per result.
func WriteParquet(w io.Writer, results []Result) error {
	pw := parquet.NewGenericWriter[Result](w)
	if _, err := pw.Write(results); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// ReadParquet reads results written by WriteParquet.
func ReadParquet(r io.ReaderAt, size int64) ([]Result, error) {
	results, err := parquet.Read[Result](r, size)
	if err != nil {
		return nil, fmt.Errorf("read parquet rows: %w", err)
	}
	return results, nil
}
