package model

import "fmt"

// RawJSONRecord is one ingested document in a staging table's raw-JSON
// schema: path/content/size/content_hash/partition/ingested_at, mirroring
// the Iceberg staging table layout.
type RawJSONRecord struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	Size        int64  `json:"size"`
	ContentHash string `json:"content_hash"`
	Partition   string `json:"partition,omitempty"`
	IngestedAt  int64  `json:"ingested_at"`
}

// maxFileErrors bounds the per-file parse error list recorded on a batch;
// beyond this count only FileErrorOverflow is incremented.
const maxFileErrors = 10

// BatchMetadata tracks the lifecycle of a single ingestion run against a
// staging table, stored as a table property keyed "batch.{id}".
type BatchMetadata struct {
	ID                string      `json:"id"`
	Status            BatchStatus `json:"status"`
	StartedAt         int64       `json:"started_at"`
	CompletedAt       int64       `json:"completed_at,omitempty"`
	RecordCount       int64       `json:"record_count"`
	SkippedCount      int64       `json:"skipped_count"`
	Error             string      `json:"error,omitempty"`
	Checkpoint        string      `json:"checkpoint,omitempty"`
	LastFilePath      string      `json:"last_file_path,omitempty"`
	FileErrors        []string    `json:"file_errors,omitempty"`
	FileErrorOverflow int         `json:"file_error_overflow,omitempty"`
}

// RecordFileError appends a per-file parse error up to maxFileErrors,
// counting the rest in FileErrorOverflow (spec.md §4.5 failure semantics).
func (b *BatchMetadata) RecordFileError(path string, err error) {
	if len(b.FileErrors) < maxFileErrors {
		b.FileErrors = append(b.FileErrors, fmt.Sprintf("%s: %v", path, err))
		return
	}
	b.FileErrorOverflow++
}

// GenerateBatchID returns a fresh batch identifier in the "batch-{uuid}"
// form used by the staging engine.
func GenerateBatchID() string {
	return fmt.Sprintf("batch-%s", NewID())
}

// NewBatch constructs a running BatchMetadata starting at startedAt (a
// caller-supplied unix timestamp, since this package never calls time.Now
// itself to stay trivially deterministic in tests).
func NewBatch(startedAt int64) *BatchMetadata {
	return &BatchMetadata{
		ID:        GenerateBatchID(),
		Status:    BatchRunning,
		StartedAt: startedAt,
	}
}

// CanResume reports whether a failed or running batch may be resumed from
// its last checkpoint.
func (b *BatchMetadata) CanResume() bool {
	return b.Status == BatchFailed || b.Status == BatchRunning
}

// Complete marks the batch completed at completedAt with the given record
// count.
func (b *BatchMetadata) Complete(completedAt int64, recordCount, skippedCount int64) {
	b.Status = BatchCompleted
	b.CompletedAt = completedAt
	b.RecordCount = recordCount
	b.SkippedCount = skippedCount
	b.Error = ""
}

// Fail marks the batch failed at failedAt, recording the checkpoint so a
// later call can resume past already-ingested records.
func (b *BatchMetadata) Fail(failedAt int64, err error, checkpoint string) {
	b.Status = BatchFailed
	b.CompletedAt = failedAt
	b.Error = err.Error()
	b.Checkpoint = checkpoint
}

// SnapshotInfo describes one Iceberg table snapshot available for time
// travel.
type SnapshotInfo struct {
	SnapshotID   int64  `json:"snapshot_id"`
	ParentID     int64  `json:"parent_id,omitempty"`
	TimestampMS  int64  `json:"timestamp_ms"`
	Operation    string `json:"operation"`
	ManifestList string `json:"manifest_list,omitempty"`
}

// AppendResult summarizes the outcome of appending a batch of records to a
// staging table.
type AppendResult struct {
	SnapshotID   int64 `json:"snapshot_id"`
	RecordsAdded int64 `json:"records_added"`
	Skipped      int64 `json:"skipped"`
}
