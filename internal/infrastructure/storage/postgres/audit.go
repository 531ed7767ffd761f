package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"tuldokpos/internal/core/id"
	"tuldokpos/internal/domain/sales"
)

// CompressionAlgo specifies how a snapshot is stored.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry is one recorded sale lifecycle event with a full snapshot
// of the sale at that moment.
type AuditEntry struct {
	ID                 id.ID           `db:"id"`
	SaleID             id.ID           `db:"sale_id"`
	InvoiceNumber      string          `db:"invoice_number"`
	Action             string          `db:"action"`
	Snapshot           json.RawMessage `db:"snapshot"`
	SnapshotCompressed []byte          `db:"snapshot_compressed"`
	CompressionAlgo    CompressionAlgo `db:"compression_algo"`
	CreatedAt          time.Time       `db:"created_at"`
}

// SaleAudit implements sales.Auditor, keeping a snapshot trail of every
// lifecycle event. Large snapshots are stored zstd-compressed.
type SaleAudit struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var _ sales.Auditor = (*SaleAudit)(nil)

// NewSaleAudit creates a new sale audit store.
func NewSaleAudit(txManager *TxManager) (*SaleAudit, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &SaleAudit{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record stores an audit entry for the sale.
func (s *SaleAudit) Record(ctx context.Context, action sales.AuditAction, sale *sales.Sale) error {
	snapshot, err := json.Marshal(sale)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	entry := AuditEntry{
		ID:              id.New(),
		SaleID:          sale.ID,
		InvoiceNumber:   sale.InvoiceNumber,
		Action:          string(action),
		Snapshot:        snapshot,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}

	if len(snapshot) > s.compressThreshold {
		entry.SnapshotCompressed = s.encoder.EncodeAll(snapshot, nil)
		entry.Snapshot = nil
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO sale_audit (
			id, sale_id, invoice_number, action,
			snapshot, snapshot_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	querier := s.txManager.GetQuerier(ctx)
	_, err = querier.Exec(ctx, sql,
		entry.ID, entry.SaleID, entry.InvoiceNumber, entry.Action,
		entry.Snapshot, entry.SnapshotCompressed, entry.CompressionAlgo, entry.CreatedAt,
	)
	return err
}

// DecodeSnapshot returns the snapshot of an entry, decompressing when
// needed.
func (s *SaleAudit) DecodeSnapshot(entry AuditEntry) (json.RawMessage, error) {
	if entry.CompressionAlgo != CompressionZstd {
		return entry.Snapshot, nil
	}
	out, err := s.decoder.DecodeAll(entry.SnapshotCompressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	return json.RawMessage(out), nil
}
