package numerator

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences upsert:
// current_val = GREATEST(current_val + 1, floor) on conflict,
// floor on first insert.
type mockQuerier struct {
	mu           sync.Mutex
	exists       bool
	currentValue int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var floor int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			floor = val
		}
	}

	if !m.exists {
		m.exists = true
		m.currentValue = floor
	} else {
		next := m.currentValue + 1
		if floor > next {
			next = floor
		}
		m.currentValue = next
	}
	return &mockRow{val: m.currentValue}
}

func TestGetNextNumber_Sequential(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("INV")

	num, err := svc.GetNextNumber(ctx, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-0001" {
		t.Errorf("expected INV-0001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-0002" {
		t.Errorf("expected INV-0002, got %s", num)
	}
}

func TestNextAtLeast_SkipsForward(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("INV")

	// Sequence at 1
	if _, err := svc.GetNextNumber(ctx, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A hand-assigned INV-0041 exists; suggestion must not fall behind it.
	num, err := svc.NextAtLeast(ctx, cfg, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-0042" {
		t.Errorf("expected INV-0042, got %s", num)
	}

	// Floor below the sequence is ignored.
	num, err = svc.NextAtLeast(ctx, cfg, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-0043" {
		t.Errorf("expected INV-0043, got %s", num)
	}
}

func TestSetNextNumber(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("INV")

	if err := svc.SetNextNumber(ctx, cfg, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	num, err := svc.GetNextNumber(ctx, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-0101" {
		t.Errorf("expected INV-0101, got %s", num)
	}
}

func TestFormatNumber_PadWidth(t *testing.T) {
	tests := []struct {
		cfg  Config
		num  int64
		want string
	}{
		{Config{Prefix: "INV", PadWidth: 4}, 7, "INV-0007"},
		{Config{Prefix: "INV", PadWidth: 4}, 12345, "INV-12345"},
		{Config{Prefix: "INV"}, 3, "INV-0003"}, // zero PadWidth defaults to 4
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.cfg, tt.num); got != tt.want {
			t.Errorf("FormatNumber(%+v, %d) = %s, want %s", tt.cfg, tt.num, got, tt.want)
		}
	}
}

func TestParseSuffix(t *testing.T) {
	tests := []struct {
		prefix    string
		formatted string
		want      int64
	}{
		{"INV", "INV-0001", 1},
		{"INV", "INV-0042", 42},
		{"INV", "INV-12345", 12345},
		{"INV", "ORD-0001", -1},
		{"INV", "INV-abc", -1},
		{"INV", "INV-", -1},
		{"INV", "", -1},
	}

	for _, tt := range tests {
		if got := ParseSuffix(tt.prefix, tt.formatted); got != tt.want {
			t.Errorf("ParseSuffix(%q, %q) = %d, want %d", tt.prefix, tt.formatted, got, tt.want)
		}
	}
}
