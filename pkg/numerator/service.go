// Package numerator provides invoice auto-numbering backed by the
// sys_sequences table. Numbers are allocated with a single
// INSERT ... ON CONFLICT ... RETURNING statement, so concurrent
// callers can never observe the same value.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "INV")
	Prefix string

	// PadWidth is the minimum number width (default 4)
	PadWidth int
}

// DefaultConfig returns the invoice numbering defaults.
// Pattern: PREFIX-XXXX (e.g., INV-0001).
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:   prefix,
		PadWidth: 4,
	}
}

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service provides invoice numbering functionality.
type Service struct {
	querier Querier
}

// New creates a new numerator service.
func New(querier Querier) *Service {
	return &Service{querier: querier}
}

// GetNextNumber allocates and formats the next number for the
// configured prefix.
func (s *Service) GetNextNumber(ctx context.Context, cfg Config) (string, error) {
	return s.NextAtLeast(ctx, cfg, 1)
}

// NextAtLeast allocates the next number, skipping forward to floor if
// the sequence has fallen behind it. Invoice numbers are operator-visible
// and may also be assigned by hand; passing the highest suffix observed
// in the sales tables plus one keeps the counter monotonic with respect
// to those hand-assigned numbers.
func (s *Service) NextAtLeast(ctx context.Context, cfg Config, floor int64) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if floor < 1 {
		floor = 1
	}

	var num int64
	err := s.querier.QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE
        SET current_val = GREATEST(sys_sequences.current_val + 1, $2)
        RETURNING current_val
	`, cfg.Prefix, floor).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number: %w", err)
	}

	return FormatNumber(cfg, num), nil
}

// SetNextNumber sets the current sequence value (for migration purposes).
// The next allocation returns value+1.
func (s *Service) SetNextNumber(ctx context.Context, cfg Config, value int64) error {
	var result int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = $2
		RETURNING current_val
	`, cfg.Prefix, value).Scan(&result)
	return err
}

// FormatNumber creates the final number string.
func FormatNumber(cfg Config, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 4
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseSuffix extracts the numeric suffix from a formatted number with
// the given prefix. Returns -1 if the number does not match the prefix
// or carries a non-numeric suffix.
func ParseSuffix(prefix, formatted string) int64 {
	rest, ok := strings.CutPrefix(formatted, prefix+"-")
	if !ok {
		return -1
	}
	num, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || num < 0 {
		return -1
	}
	return num
}
