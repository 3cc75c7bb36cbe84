package units

import (
	"fmt"
	"time"
)

// Reference pins a block number to its on-chain timestamp, so other heights can be estimated.
type Reference struct {
	Block     uint64
	Timestamp int64 // unix seconds
}

// FallbackReference is used when no recent head block can be fetched.
var FallbackReference = Reference{
	Block:     6660470,
	Timestamp: 1710695202,
}

// BlockAt estimates the block produced at t, assuming the target block time since the reference.
func BlockAt(ref Reference, t time.Time) (uint64, error) {
	blockSeconds := int64(BlockTime / time.Second)
	delta := floorDiv(t.Unix()-ref.Timestamp, blockSeconds)

	block := int64(ref.Block) + delta
	if block < 0 {
		return 0, fmt.Errorf("%w: %s is before the first block", ErrInvalidFormat, t.Format(time.RFC3339))
	}
	return uint64(block), nil
}

// TimeAt estimates when a block is (or was) produced.
func TimeAt(ref Reference, block uint64) time.Time {
	blockSeconds := int64(BlockTime / time.Second)
	timestamp := (int64(block)-int64(ref.Block))*blockSeconds + ref.Timestamp
	return time.Unix(timestamp, 0)
}

// BlockSample is a block height together with its on-chain timestamp.
type BlockSample struct {
	Block     uint64
	Timestamp time.Time
}

// AverageBlockTime is the mean time between blocks over [start, end].
func AverageBlockTime(start, end BlockSample) (time.Duration, error) {
	if end.Block <= start.Block {
		return 0, fmt.Errorf("%w: block range %d..%d is empty", ErrInvalidFormat, start.Block, end.Block)
	}

	elapsed := end.Timestamp.Sub(start.Timestamp)
	return elapsed / time.Duration(end.Block-start.Block), nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
