package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestProgressTracker_BasicOperations(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	pt := NewProgressTracker("measure", 10, log)

	pt.RecordCompletion(100 * time.Millisecond)
	pt.RecordCompletion(150 * time.Millisecond)
	pt.RecordSkip()

	completed, skipped, total := pt.Progress()
	if completed != 2 {
		t.Errorf("expected completed=2, got %d", completed)
	}
	if skipped != 1 {
		t.Errorf("expected skipped=1, got %d", skipped)
	}
	if total != 10 {
		t.Errorf("expected total=10, got %d", total)
	}

	if pct := pt.ProgressPct(); pct != 30.0 {
		t.Errorf("expected progress 30%%, got %.1f%%", pct)
	}
	if remaining := pt.Remaining(); remaining != 7 {
		t.Errorf("expected remaining=7, got %d", remaining)
	}
}

func TestProgressTracker_ETA(t *testing.T) {
	var buf bytes.Buffer
	pt := NewProgressTracker("measure", 10, zerolog.New(&buf))

	pt.RecordCompletion(100 * time.Millisecond)
	pt.RecordCompletion(100 * time.Millisecond)

	// 8 remaining at 100ms each
	eta := pt.ETA()
	if eta < 700*time.Millisecond || eta > 900*time.Millisecond {
		t.Errorf("expected ETA ~800ms, got %v", eta)
	}
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	pt := NewProgressTracker("measure", 0, zerolog.New(&buf))

	if pct := pt.ProgressPct(); pct != 100.0 {
		t.Errorf("expected 100%% for zero total, got %.1f%%", pct)
	}
	if eta := pt.ETA(); eta != 0 {
		t.Errorf("expected 0 ETA for zero total, got %v", eta)
	}
}

func TestCompletionEvent_BasicFields(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(false)

	NewCompletionEvent(log, "test_event", "test_phase", 500*time.Millisecond).
		Str("key", "value").
		Int("count", 42).
		Bool("degraded", true).
		Float64("ns_per_update", 12.5).
		Log("test message")

	output := buf.String()
	for _, want := range []string{
		`"event":"test_event"`,
		`"phase":"test_phase"`,
		`"duration_ms":500`,
		`"key":"value"`,
		`"count":42`,
		`"degraded":true`,
		`"ns_per_update":12.5`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s, got: %s", want, output)
		}
	}
}

func TestCompletionEvent_HumanCompanions(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(true)
	defer SetPrettyMode(false)

	NewCompletionEvent(log, "test_event", "test_phase", time.Second).
		Count("iterations", 1500000).
		Duration("per_op", 1500*time.Microsecond).
		Log("test message")

	output := buf.String()
	for _, want := range []string{
		`"iterations":1500000`,
		`"iterations_h":"1.50M"`,
		`"per_op_ns":1500000`,
		`"per_op_h":"1.5ms"`,
		`"duration_h":"1.00s"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s, got: %s", want, output)
		}
	}
}

func TestCompletionEvent_ProgressFromTracker(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(false)

	pt := NewProgressTracker("measure", 100, log)
	pt.RecordCompletion(100 * time.Millisecond)
	pt.RecordCompletion(100 * time.Millisecond)
	pt.RecordSkip()

	NewCompletionEvent(log, "test_event", "measure", time.Second).
		ProgressFromTracker(pt).
		Log("test message")

	output := buf.String()
	for _, want := range []string{`"completed":2`, `"skipped":1`, `"total":100`, `"progress_pct":3`, `"eta_ms":`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s, got: %s", want, output)
		}
	}
}

func TestHelperFunctions(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(false)

	PhaseComplete(log, "baseline", time.Second).
		Str("key", "value").
		Log("phase done")

	if !strings.Contains(buf.String(), `"event":"phase_completed"`) {
		t.Errorf("expected phase_completed event, got: %s", buf.String())
	}

	buf.Reset()
	MeasurementComplete(log, 200*time.Millisecond).
		Str("entry", "vector/5B").
		Log("measured")

	output := buf.String()
	if !strings.Contains(output, `"event":"measurement_completed"`) {
		t.Errorf("expected measurement_completed event, got: %s", output)
	}
	if !strings.Contains(output, `"phase":"measure"`) {
		t.Errorf("expected measure phase, got: %s", output)
	}
}
