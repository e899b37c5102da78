package humanfmt

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "0ns"},
		{500 * time.Nanosecond, "500ns"},
		{1500 * time.Nanosecond, "1.5µs"},
		{45600 * time.Microsecond, "45.6ms"},
		{1230 * time.Millisecond, "1.23s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
		{3 * time.Hour, "3h"},
		{-time.Second, "-1s"},
	}

	for _, tt := range tests {
		if got := Duration(tt.input); got != tt.want {
			t.Errorf("Duration(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{789, "789"},
		{10000, "10.00K"},
		{1230000, "1.23M"},
		{2500000000, "2.50B"},
		{-5, "-5"},
	}

	for _, tt := range tests {
		if got := Count(tt.input); got != tt.want {
			t.Errorf("Count(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUpdateRate(t *testing.T) {
	tests := []struct {
		ns   float64
		want string
	}{
		{0, "∞"},
		{0.5, "2.00B/s"},
		{80, "12.50M/s"},
		{4000, "250.00K/s"},
		{2e6, "500/s"},
	}

	for _, tt := range tests {
		if got := UpdateRate(tt.ns); got != tt.want {
			t.Errorf("UpdateRate(%v) = %q, want %q", tt.ns, got, tt.want)
		}
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio(0); got != "-" {
		t.Errorf("Ratio(0) = %q, want -", got)
	}
	if got := Ratio(3.4); got != "3.40x" {
		t.Errorf("Ratio(3.4) = %q, want 3.40x", got)
	}
}

func BenchmarkDuration(b *testing.B) {
	durations := []time.Duration{
		500 * time.Nanosecond,
		45 * time.Millisecond,
		90 * time.Second,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, d := range durations {
			_ = Duration(d)
		}
	}
}
