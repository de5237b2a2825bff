package engine

import (
	"context"

	"github.com/rshade/ecotrack/internal/engine/batch"
	"github.com/rshade/ecotrack/internal/store"
	"github.com/rshade/ecotrack/internal/tracker"
)

// BulkFailure is an input rejected during a bulk submission.
type BulkFailure struct {
	Index  int                   `json:"index"`
	Input  tracker.ActivityInput `json:"input"`
	Reason string                `json:"reason"`
}

// BulkResult summarizes a bulk submission.
type BulkResult struct {
	Progress  batch.Snapshot        `json:"progress"`
	Failures  []BulkFailure         `json:"failures,omitempty"`
	Unlocked  []tracker.Achievement `json:"unlocked,omitempty"`
	Completed []tracker.Challenge   `json:"completed,omitempty"`
}

type indexedInput struct {
	index int
	input tracker.ActivityInput
}

// SubmitBatch runs every input through the SubmitActivity pipeline, in order,
// batchSize at a time. Rejected inputs are reported and skipped. On
// cancellation the document reflects the batches completed so far.
func (e *Engine) SubmitBatch(
	ctx context.Context,
	doc store.Document,
	inputs []tracker.ActivityInput,
	batchSize int,
	onProgress batch.ProgressCallback,
) (store.Document, BulkResult, error) {
	logger := operationLogger(ctx, "SubmitBatch")

	p, err := batch.NewProcessor[indexedInput](batchSize)
	if err != nil {
		return doc, BulkResult{}, err
	}
	p.WithProgressCallback(onProgress)

	items := make([]indexedInput, len(inputs))
	for i, in := range inputs {
		items[i] = indexedInput{index: i, input: in}
	}

	var res BulkResult
	current := doc
	res.Progress, err = p.Process(ctx, items, func(ctx context.Context, b []indexedInput, _ int) (int, error) {
		failed := 0
		for _, it := range b {
			next, sr, subErr := e.SubmitActivity(ctx, current, it.input)
			if subErr != nil {
				failed++
				res.Failures = append(res.Failures, BulkFailure{Index: it.index, Input: it.input, Reason: subErr.Error()})
				continue
			}
			current = next
			res.Unlocked = append(res.Unlocked, sr.Unlocked...)
			res.Completed = append(res.Completed, sr.Completed...)
		}
		return failed, nil
	})

	logger.Debug().
		Int("total", len(inputs)).
		Int("submitted", res.Progress.Succeeded()).
		Int("failed", len(res.Failures)).
		Msg("bulk submission finished")
	return current, res, err
}
