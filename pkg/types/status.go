// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"context"
	"time"
)

// Status is the outcome of one per-file operation.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// BatchResult counts per-file outcomes of a batch run.
type BatchResult struct {
	Done    int
	Skipped int
	Failed  int

	// Outputs lists the files written (or removed, for deletion) in order.
	Outputs []string
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Done + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Add records one outcome.
func (r *BatchResult) Add(s Status, output string) {
	switch s {
	case StatusDone:
		r.Done++
		if output != "" {
			r.Outputs = append(r.Outputs, output)
		}
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Record is one journal entry describing a per-file operation.
type Record struct {
	ID     int64     `json:"id" yaml:"id"`
	Time   time.Time `json:"time" yaml:"time"`
	Action string    `json:"action" yaml:"action"`
	Input  string    `json:"input" yaml:"input"`
	Output string    `json:"output,omitempty" yaml:"output,omitempty"`
	Status Status    `json:"status" yaml:"status"`
	Error  string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Recorder persists Records. Implementations must tolerate being called
// once per processed file.
type Recorder interface {
	Record(ctx context.Context, r Record) error
}

// RecordOutcome builds a Record for one processed file and hands it to r.
// A nil Recorder is a no-op.
func RecordOutcome(ctx context.Context, r Recorder, action Action, input, output string, opErr error) error {
	if r == nil {
		return nil
	}
	rec := Record{
		Time:   time.Now().UTC(),
		Action: action.String(),
		Input:  input,
		Output: output,
		Status: StatusDone,
	}
	if opErr != nil {
		rec.Status = StatusFailed
		rec.Output = ""
		rec.Error = opErr.Error()
	}
	return r.Record(ctx, rec)
}
