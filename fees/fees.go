package fees

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/math"
)

// TxFee is the flat transaction fee estimate for publishing a video, in HAPI.
var TxFee = math.NewInt(200_000_000)

var ErrInvalidInput = errors.New("invalid input")

// VideoFees are the runtime parameters that price a video upload, in HAPI.
type VideoFees struct {
	DataObjectStateBloatBond math.Int
	DataObjectPerMegabyteFee math.Int
	VideoStateBloatBond      math.Int
}

// StorageReader reads a numeric storage item.
type StorageReader interface {
	StorageValue(ctx context.Context, pallet, item string) (math.Int, error)
}

// FetchVideoFees reads the current video pricing from chain storage.
func FetchVideoFees(ctx context.Context, reader StorageReader) (VideoFees, error) {
	dataObjectBond, err := reader.StorageValue(ctx, "storage", "DataObjectStateBloatBondValue")
	if err != nil {
		return VideoFees{}, fmt.Errorf("fetching data object bond: %w", err)
	}

	megabyteFee, err := reader.StorageValue(ctx, "storage", "DataObjectPerMegabyteFee")
	if err != nil {
		return VideoFees{}, fmt.Errorf("fetching per megabyte fee: %w", err)
	}

	videoBond, err := reader.StorageValue(ctx, "content", "VideoStateBloatBondValue")
	if err != nil {
		return VideoFees{}, fmt.Errorf("fetching video bond: %w", err)
	}

	return VideoFees{
		DataObjectStateBloatBond: dataObjectBond,
		DataObjectPerMegabyteFee: megabyteFee,
		VideoStateBloatBond:      videoBond,
	}, nil
}

// Breakdown itemizes the cost of publishing a video, in HAPI.
type Breakdown struct {
	TxFee              math.Int
	VideoStateBond     math.Int
	ObjectsStateBond   math.Int
	DataFee            math.Int
	Total              math.Int
	Refundable         math.Int
	NumberOfObjects    uint64
	TotalSizeMegabytes math.LegacyDec
}

// Estimate prices a video with numberOfObjects data objects (media and images) totalling sizeMegabytes.
// The data fee is truncated to whole HAPI. State bloat bonds are refunded when the video is deleted.
func Estimate(fees VideoFees, numberOfObjects uint64, sizeMegabytes math.LegacyDec) (Breakdown, error) {
	if numberOfObjects == 0 {
		return Breakdown{}, fmt.Errorf("%w: number of objects must be positive", ErrInvalidInput)
	}
	if !sizeMegabytes.IsPositive() {
		return Breakdown{}, fmt.Errorf("%w: total object size must be positive", ErrInvalidInput)
	}

	objectsBond := fees.DataObjectStateBloatBond.Mul(math.NewIntFromUint64(numberOfObjects))
	dataFee := sizeMegabytes.MulInt(fees.DataObjectPerMegabyteFee).TruncateInt()
	refundable := fees.VideoStateBloatBond.Add(objectsBond)

	return Breakdown{
		TxFee:              TxFee,
		VideoStateBond:     fees.VideoStateBloatBond,
		ObjectsStateBond:   objectsBond,
		DataFee:            dataFee,
		Total:              TxFee.Add(refundable).Add(dataFee),
		Refundable:         refundable,
		NumberOfObjects:    numberOfObjects,
		TotalSizeMegabytes: sizeMegabytes,
	}, nil
}
