package postgres

import (
	"encoding/json"
	"testing"
)

func TestDecodeSnapshot_RoundTrip(t *testing.T) {
	store, err := NewSaleAudit(nil)
	if err != nil {
		t.Fatalf("NewSaleAudit failed: %v", err)
	}

	snapshot := json.RawMessage(`{"invoice_number":"INV-0001","items":[{"type":"item","item_name":"Coke","qty":3,"price":"5"}]}`)

	t.Run("uncompressed", func(t *testing.T) {
		entry := AuditEntry{Snapshot: snapshot, CompressionAlgo: CompressionNone}
		got, err := store.DecodeSnapshot(entry)
		if err != nil {
			t.Fatalf("DecodeSnapshot failed: %v", err)
		}
		if string(got) != string(snapshot) {
			t.Errorf("snapshot = %s, want %s", got, snapshot)
		}
	})

	t.Run("zstd", func(t *testing.T) {
		entry := AuditEntry{
			SnapshotCompressed: store.encoder.EncodeAll(snapshot, nil),
			CompressionAlgo:    CompressionZstd,
		}
		got, err := store.DecodeSnapshot(entry)
		if err != nil {
			t.Fatalf("DecodeSnapshot failed: %v", err)
		}
		if string(got) != string(snapshot) {
			t.Errorf("snapshot = %s, want %s", got, snapshot)
		}
	})

	t.Run("corrupt", func(t *testing.T) {
		entry := AuditEntry{
			SnapshotCompressed: []byte("not zstd"),
			CompressionAlgo:    CompressionZstd,
		}
		if _, err := store.DecodeSnapshot(entry); err == nil {
			t.Fatal("expected error for corrupt payload")
		}
	})
}
