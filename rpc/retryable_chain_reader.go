package rpc

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/traumschule/joyutils/units"
)

// Implements retryable reads and returns the last error. Submissions are never retried, so there is no
// retryable Submitter.
type retryableChainReader struct {
	wrapped ChainReader

	attempts retry.Option
	delay    retry.Option
}

var _ ChainReader = (*retryableChainReader)(nil)

func NewRetryableChainReader(attempts uint, delay time.Duration, reader ChainReader) (ChainReader, error) {
	return &retryableChainReader{
		wrapped: reader,

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),
	}, nil
}

func (r *retryableChainReader) LatestBlock(ctx context.Context) (units.BlockSample, error) {
	var result units.BlockSample
	var err error

	err = retry.Do(func() error {
		result, err = r.wrapped.LatestBlock(ctx)
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		err = errors.Unwrap(err)
	}

	return result, err
}

func (r *retryableChainReader) Block(ctx context.Context, number uint64) (units.BlockSample, error) {
	var result units.BlockSample
	var err error

	err = retry.Do(func() error {
		result, err = r.wrapped.Block(ctx, number)
		return err
	}, r.delay, r.attempts, retry.Context(ctx), retry.RetryIf(func(err error) bool {
		return !errors.Is(err, ErrBlockNotFound)
	}))
	if err != nil {
		err = errors.Unwrap(err)
	}

	return result, err
}
