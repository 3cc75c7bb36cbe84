package fees_test

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traumschule/joyutils/fees"
)

var videoFees = fees.VideoFees{
	DataObjectStateBloatBond: math.NewInt(100_000_000),
	DataObjectPerMegabyteFee: math.NewInt(1_000_000),
	VideoStateBloatBond:      math.NewInt(500_000_000),
}

type fakeStorage map[string]math.Int

func (s fakeStorage) StorageValue(ctx context.Context, pallet, item string) (math.Int, error) {
	value, ok := s[pallet+"."+item]
	if !ok {
		return math.Int{}, errors.New("no such storage item")
	}
	return value, nil
}

func TestFetchVideoFees(t *testing.T) {
	storage := fakeStorage{
		"storage.DataObjectStateBloatBondValue": videoFees.DataObjectStateBloatBond,
		"storage.DataObjectPerMegabyteFee":      videoFees.DataObjectPerMegabyteFee,
		"content.VideoStateBloatBondValue":      videoFees.VideoStateBloatBond,
	}

	fetched, err := fees.FetchVideoFees(context.Background(), storage)
	require.NoError(t, err)
	assert.Equal(t, videoFees, fetched)

	delete(storage, "content.VideoStateBloatBondValue")
	_, err = fees.FetchVideoFees(context.Background(), storage)
	assert.ErrorContains(t, err, "video bond")
}

func TestEstimate(t *testing.T) {
	breakdown, err := fees.Estimate(videoFees, 3, math.LegacyMustNewDecFromStr("250.5"))
	require.NoError(t, err)

	assert.Equal(t, "200000000", breakdown.TxFee.String())
	assert.Equal(t, "500000000", breakdown.VideoStateBond.String())
	assert.Equal(t, "300000000", breakdown.ObjectsStateBond.String())
	assert.Equal(t, "250500000", breakdown.DataFee.String())
	assert.Equal(t, "800000000", breakdown.Refundable.String())
	assert.Equal(t, "1250500000", breakdown.Total.String())
}

func TestEstimate_TruncatesDataFee(t *testing.T) {
	breakdown, err := fees.Estimate(fees.VideoFees{
		DataObjectStateBloatBond: math.ZeroInt(),
		DataObjectPerMegabyteFee: math.NewInt(3),
		VideoStateBloatBond:      math.ZeroInt(),
	}, 1, math.LegacyMustNewDecFromStr("0.5"))
	require.NoError(t, err)

	assert.Equal(t, "1", breakdown.DataFee.String())
}

func TestEstimate_RejectsEmptyVideos(t *testing.T) {
	_, err := fees.Estimate(videoFees, 0, math.LegacyOneDec())
	assert.ErrorIs(t, err, fees.ErrInvalidInput)

	_, err = fees.Estimate(videoFees, 1, math.LegacyZeroDec())
	assert.ErrorIs(t, err, fees.ErrInvalidInput)

	_, err = fees.Estimate(videoFees, 1, math.LegacyMustNewDecFromStr("-1"))
	assert.ErrorIs(t, err, fees.ErrInvalidInput)
}
