package storage

import (
	"context"
	"testing"

	"mmnn/internal/model"
)

func testRecord(id, createdAt string) model.RunRecord {
	return model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: CurrentSchemaVersion,
			CodecVersion:  CurrentCodecVersion,
		},
		ID:               id,
		CreatedAtUTC:     createdAt,
		ConfigPath:       "net.json",
		OutputPath:       "net.out.json",
		LearningRate:     0.05,
		WindowSize:       1000,
		Pairs:            20000,
		FinalWindowError: 0.0125,
	}
}

func TestMemoryStoreRunRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	record := testRecord("run-1", "2026-08-27T10:00:00Z")
	if err := store.SaveRunRecord(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.GetRunRecord(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("get: %v %v", ok, err)
	}
	if got != record {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, ok, _ := store.GetRunRecord(ctx, "absent"); ok {
		t.Fatal("found a record that was never saved")
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, r := range []model.RunRecord{
		testRecord("old", "2026-08-25T10:00:00Z"),
		testRecord("new", "2026-08-27T10:00:00Z"),
		testRecord("mid", "2026-08-26T10:00:00Z"),
	} {
		if err := store.SaveRunRecord(ctx, r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	records, err := store.ListRunRecords(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 || records[0].ID != "new" || records[1].ID != "mid" || records[2].ID != "old" {
		t.Fatalf("order: %+v", records)
	}

	limited, err := store.ListRunRecords(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "new" {
		t.Fatalf("limited: %+v", limited)
	}
}

func TestMemoryStoreErrorHistoryIsCopied(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	history := []float64{0.5, 0.25, 0.125}
	if err := store.SaveErrorHistory(ctx, "run-1", history); err != nil {
		t.Fatalf("save history: %v", err)
	}
	history[0] = 99

	got, ok, err := store.GetErrorHistory(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("get history: %v %v", ok, err)
	}
	if got[0] != 0.5 {
		t.Fatalf("stored history aliases caller slice: %v", got)
	}

	if _, ok, _ := store.GetErrorHistory(ctx, "absent"); ok {
		t.Fatal("found history that was never saved")
	}
}
