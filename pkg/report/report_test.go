package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func sampleResults() []Result {
	return []Result{
		{Entry: "slice", Label: "slice/N=1000", RequestedN: 1000, EffectiveN: 1000, Iterations: 5000, NsPerOp: 2000, NsPerUpdate: 2},
		{Entry: "vector/5B", Label: "vector/5B/N=1000", Persistent: true, Bits: 5, RequestedN: 1000, EffectiveN: 1000, Iterations: 100, NsPerOp: 80000, NsPerUpdate: 80, AllocsPerOp: 3000, BytesPerOp: 400000},
		{Entry: "array", Label: "array/N=20000(ran_N=1,limit=10000)", Persistent: true, RequestedN: 20000, EffectiveN: 1, Degraded: true, Iterations: 1000000, NsPerOp: 30, NsPerUpdate: 30},
	}
}

func TestComputeOverhead(t *testing.T) {
	results := sampleResults()
	ComputeOverhead(results)

	if results[0].Overhead != 1 {
		t.Errorf("slice overhead = %v, want 1", results[0].Overhead)
	}
	if results[1].Overhead != 40 {
		t.Errorf("vector/5B overhead = %v, want 40", results[1].Overhead)
	}
	if results[2].Overhead != 0 {
		t.Errorf("degraded overhead = %v, want 0", results[2].Overhead)
	}
}

func TestWriteTable(t *testing.T) {
	results := sampleResults()
	ComputeOverhead(results)

	var buf bytes.Buffer
	if err := Write(&buf, "table", results); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{"slice", "vector/5B", "40.00x", "Updates/s", "ran at N=1 (size limit)", "Total: 3 measurements"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "UPDATES/S") || strings.Contains(out, "TOTAL:") {
		t.Errorf("header or footer was upper-cased:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "json", sampleResults()); err != nil {
		t.Fatal(err)
	}

	var got []Result
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 3 || !got[2].Degraded || got[2].EffectiveN != 1 {
		t.Errorf("unexpected decoded results: %+v", got)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", nil)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestParquetRoundTrip(t *testing.T) {
	want := sampleResults()

	var buf bytes.Buffer
	if err := WriteParquet(&buf, want); err != nil {
		t.Fatal(err)
	}

	got, err := ReadParquet(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPrometheus(t *testing.T) {
	results := sampleResults()
	ComputeOverhead(results)

	reg, err := Registry(results)
	if err != nil {
		t.Fatal(err)
	}
	if n, err := testutil.GatherAndCount(reg, "assocbench_ns_per_update"); err != nil || n != 3 {
		t.Errorf("ns_per_update samples = %d (err %v), want 3", n, err)
	}
	if n, err := testutil.GatherAndCount(reg, "assocbench_overhead_ratio"); err != nil || n != 2 {
		t.Errorf("overhead_ratio samples = %d (err %v), want 2", n, err)
	}

	path := filepath.Join(t.TempDir(), "assocbench.prom")
	if err := WritePrometheus(path, results); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `degraded="true"`) {
		t.Errorf("textfile missing degraded label:\n%s", data)
	}
}
