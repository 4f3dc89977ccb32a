package repo_interfaces

import "context"

type SequenceRepository interface {
	// Next atomically increments and returns the per-branch account
	// number sequence. Implementations must guarantee no two callers
	// receive the same value for the same branch.
	Next(ctx context.Context, branchCode string) (int64, error)
	Current(ctx context.Context, branchCode string) (int64, error)
}
