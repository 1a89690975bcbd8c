package ssfa

import (
	"time"

	"github.com/parexlang/parex/errs"
)

// MatchOptions configures one parallel match call, mirroring the
// Config/Validate convention used throughout this module.
type MatchOptions struct {
	// K is the number of worker shards to use. Zero selects the default
	// of 2. The effective worker count is clamped to
	// 1..min(len(input), hardware parallelism) regardless of K, per the
	// scheduling model: a shard with zero bytes contributes nothing but a
	// wasted goroutine.
	K int

	// Cancel, if non-nil, is checked cooperatively between chunks of
	// bytes; a closed channel abandons the match and returns Cancelled.
	Cancel <-chan struct{}

	// Deadline, if non-zero, is checked at the same cadence as Cancel.
	Deadline time.Time
}

// DefaultMatchOptions returns K=2 and no cancellation or deadline.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{K: 2}
}

// Validate reports whether the options are usable.
func (o *MatchOptions) Validate() error {
	if o.K < 0 {
		return &errs.ConfigError{Field: "K", Message: "must be >= 0 (0 selects the default)"}
	}
	return nil
}
