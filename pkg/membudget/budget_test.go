package membudget

import (
	"testing"
)

func TestBudgetBasic(t *testing.T) {
	budget := New(Config{
		TotalBytes: 1000,
		Source:     BudgetSourceCLI,
	})

	if budget.Total() != 1000 {
		t.Errorf("Total() = %d, want 1000", budget.Total())
	}
	if budget.Source() != BudgetSourceCLI {
		t.Errorf("Source() = %s, want %s", budget.Source(), BudgetSourceCLI)
	}
}

func TestReserveRelease(t *testing.T) {
	budget := New(Config{TotalBytes: 1000})

	if !budget.TryReserve(600) {
		t.Fatal("TryReserve(600) failed")
	}
	if budget.TryReserve(500) {
		t.Error("TryReserve(500) should fail with 400 available")
	}
	if got := budget.Available(); got != 400 {
		t.Errorf("Available() = %d, want 400", got)
	}

	budget.Release(600)
	if got := budget.InUse(); got != 0 {
		t.Errorf("InUse() = %d after release, want 0", got)
	}

	// Over-release is clamped at zero.
	budget.Release(10)
	if got := budget.InUse(); got != 0 {
		t.Errorf("InUse() = %d after over-release, want 0", got)
	}
}

func TestFit(t *testing.T) {
	budget := New(Config{TotalBytes: 1000})

	tests := []struct {
		want int
		unit uint64
		exp  int
	}{
		{10, 100, 10},
		{20, 100, 10},
		{5, 0, 5},
		{3, 5000, 1},
		{0, 100, 0},
	}
	for _, tt := range tests {
		if got := budget.Fit(tt.want, tt.unit); got != tt.exp {
			t.Errorf("Fit(%d, %d) = %d, want %d", tt.want, tt.unit, got, tt.exp)
		}
	}
}

func TestNewFromSystemRAM(t *testing.T) {
	budget := NewFromSystemRAM()

	if budget.Total() == 0 {
		t.Error("expected non-zero budget")
	}
	if budget.Source() != BudgetSourceAuto25Pct && budget.Source() != BudgetSourceDefault {
		t.Errorf("Source = %s, want auto-25pct or default", budget.Source())
	}
}

func TestParseHumanSize(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"1024", 1024, false},
		{"100B", 100, false},
		{"1KB", 1000, false},
		{"1KiB", 1024, false},
		{"1MB", 1000000, false},
		{"1MiB", 1024 * 1024, false},
		{"1GB", 1000000000, false},
		{"4GiB", 4 * 1024 * 1024 * 1024, false},
		{"", 0, true},
		{"XYZ", 0, true},
		{"100XB", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseHumanSize(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHumanSize(%q) should error", tt.input)
			}
		} else {
			if err != nil {
				t.Errorf("ParseHumanSize(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHumanSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input uint64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{1024 * 1024, "1.00 MiB"},
		{4 * 1024 * 1024 * 1024, "4.00 GiB"},
	}

	for _, tt := range tests {
		got := FormatBytes(tt.input)
		if got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
