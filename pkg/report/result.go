// Package report renders and exports sweep measurements.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// ReferenceEntry is the entry whose timing every overhead ratio is
// relative to.
const ReferenceEntry = "slice"

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown report format")

// Result is one measurement: one entry at one requested size.
type Result struct {
	Entry      string `json:"entry" parquet:"entry"`
	Label      string `json:"label" parquet:"label"`
	Persistent bool   `json:"persistent" parquet:"persistent"`
	Bits       int64  `json:"bits,omitempty" parquet:"bits"`

	RequestedN int64 `json:"requested_n" parquet:"requested_n"`
	EffectiveN int64 `json:"effective_n" parquet:"effective_n"`
	// Degraded is set when the entry ran at EffectiveN instead of
	// RequestedN because of a size limit.
	Degraded bool `json:"degraded" parquet:"degraded"`

	Iterations  int64   `json:"iterations" parquet:"iterations"`
	NsPerOp     float64 `json:"ns_per_op" parquet:"ns_per_op"`
	NsPerUpdate float64 `json:"ns_per_update" parquet:"ns_per_update"`
	AllocsPerOp int64   `json:"allocs_per_op" parquet:"allocs_per_op"`
	BytesPerOp  int64   `json:"bytes_per_op" parquet:"bytes_per_op"`

	// Overhead is NsPerUpdate relative to ReferenceEntry at the same
	// requested size. 0 when no comparable reference exists.
	Overhead float64 `json:"overhead,omitempty" parquet:"overhead"`
}

// PerOp returns NsPerOp as a duration.
func (r Result) PerOp() time.Duration {
	return time.Duration(r.NsPerOp)
}

// ComputeOverhead fills Overhead for every non-degraded result that has a
// reference measurement at the same requested size.
func ComputeOverhead(results []Result) {
	ref := make(map[int64]float64)
	for _, r := range results {
		if r.Entry == ReferenceEntry && !r.Degraded && r.NsPerUpdate > 0 {
			ref[r.RequestedN] = r.NsPerUpdate
		}
	}
	for i := range results {
		base, ok := ref[results[i].RequestedN]
		if !ok || results[i].Degraded {
			results[i].Overhead = 0
			continue
		}
		results[i].Overhead = results[i].NsPerUpdate / base
	}
}

// WriteJSON writes results as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

// Write renders results in the named format: "table" or "json".
func Write(w io.Writer, format string, results []Result) error {
	switch format {
	case "", "table":
		return WriteTable(w, results)
	case "json":
		return WriteJSON(w, results)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
