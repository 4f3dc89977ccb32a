package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type batchOutcome int

const (
	outcomeSucceeded batchOutcome = iota
	outcomeSkipped
)

const defaultBatchWorkers = 8

// forEachAccount fans the account list out over a bounded worker pool.
// A failing account is counted and logged by the callback's caller but
// never stops the run; only enumeration failures abort a batch.
func forEachAccount(
	ctx context.Context,
	workers int,
	accounts []domain.Account,
	process func(ctx context.Context, account domain.Account) (batchOutcome, error),
) domain.RunReport {
	if workers <= 0 {
		workers = defaultBatchWorkers
	}

	var (
		mu     sync.Mutex
		report domain.RunReport
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, account := range accounts {
		account := account
		group.Go(func() error {
			outcome, err := process(groupCtx, account)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				report.Errored++
			case outcome == outcomeSkipped:
				report.Skipped++
			default:
				report.Succeeded++
			}
			return nil
		})
	}

	// Workers never propagate errors, so Wait only synchronizes.
	_ = group.Wait()

	return report
}
