package rpc

import (
	"context"

	"github.com/traumschule/joyutils/units"
)

// ChainReader reads block heights and timestamps.
type ChainReader interface {
	// LatestBlock returns the best block and its timestamp.
	LatestBlock(ctx context.Context) (units.BlockSample, error)
	// Block returns the timestamp of the block at the given height.
	Block(ctx context.Context, number uint64) (units.BlockSample, error)
}

// MeasureBlockTime averages the block time over the last window blocks.
func MeasureBlockTime(ctx context.Context, reader ChainReader, window uint64) (units.BlockSample, units.BlockSample, error) {
	end, err := reader.LatestBlock(ctx)
	if err != nil {
		return units.BlockSample{}, units.BlockSample{}, err
	}

	startNumber := uint64(0)
	if end.Block > window {
		startNumber = end.Block - window
	}

	start, err := reader.Block(ctx, startNumber)
	if err != nil {
		return units.BlockSample{}, units.BlockSample{}, err
	}
	return start, end, nil
}
