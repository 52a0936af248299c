package sheets

import (
	"context"
	"fmt"

	"sheetlog/pkg/logging"
	pkgoauth "sheetlog/pkg/oauth"
)

// Write is one range update within a batch.
type Write struct {
	Range  string
	Values [][]string
}

// WriteResult records the outcome of one write. Err is nil on success.
type WriteResult struct {
	Range string
	Err   error
}

// Failed reports whether any result in the slice carries an error.
func Failed(results []WriteResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// ApplyBatch performs the writes in order and accumulates per-write
// outcomes instead of stopping at the first failure. The returned error
// summarizes the batch; individual failures are in the results.
func ApplyBatch(ctx context.Context, svc Service, cred *pkgoauth.TokenBundle, spreadsheetID string, writes []Write) ([]WriteResult, error) {
	results := make([]WriteResult, 0, len(writes))
	failed := 0
	for _, w := range writes {
		err := svc.Update(ctx, cred, spreadsheetID, w.Range, w.Values)
		if err != nil {
			failed++
			logging.Warn("Sheets", "Batch write to %s failed: %v", w.Range, err)
		}
		results = append(results, WriteResult{Range: w.Range, Err: err})
	}
	if failed > 0 {
		return results, fmt.Errorf("%d of %d batch writes failed", failed, len(writes))
	}
	return results, nil
}
