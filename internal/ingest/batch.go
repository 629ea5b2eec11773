package ingest

import (
	"context"
	"fmt"

	"ascdash/internal/model"
)

// Upserter is the storage contract the batch relies on: insert-or-replace
// keyed by response id, atomic at the storage layer.
type Upserter interface {
	Upsert(ctx context.Context, rec *model.SurveyResponse) (created bool, err error)
}

// Batch drives the record builder over a sequence of raw submissions,
// isolating per-record failures: one malformed row never aborts the rest.
type Batch struct {
	builder *RecordBuilder
	store   Upserter
}

func NewBatch(builder *RecordBuilder, store Upserter) *Batch {
	return &Batch{builder: builder, store: store}
}

// Ingest processes rows in order and upserts every buildable record.
// Row numbers in error messages count from the top of the export, where
// rows 1-2 are the survey metadata rows the reader skipped.
func (b *Batch) Ingest(ctx context.Context, rows []Raw, channel Channel) *model.ImportResult {
	res := &model.ImportResult{Errors: []string{}}

	for i, raw := range rows {
		rowNum := i + metadataRows + 1

		rec, err := b.builder.Build(raw, channel)
		if err != nil {
			b.recordError(res, rowNum, err)
			continue
		}

		created, err := b.store.Upsert(ctx, rec)
		if err != nil {
			b.recordError(res, rowNum, err)
			continue
		}
		if created {
			res.ImportedCount++
		} else {
			res.UpdatedCount++
		}
	}

	res.Message = fmt.Sprintf("Successfully imported %d survey responses", res.ImportedCount)
	return res
}

// recordError counts every rejected row but caps the displayed list
func (b *Batch) recordError(res *model.ImportResult, rowNum int, err error) {
	res.TotalErrors++
	if len(res.Errors) < model.MaxDisplayedErrors {
		res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
	}
}
