package rpc

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traumschule/joyutils/extrinsic"
	"github.com/traumschule/joyutils/log"
)

const waitFor = time.Second

// fakeStatusSource is a scripted node status stream that counts unsubscribes.
type fakeStatusSource struct {
	statuses chan types.ExtrinsicStatus
	errs     chan error

	lock         sync.Mutex
	unsubscribed int
}

var _ statusSource = (*fakeStatusSource)(nil)

func newFakeStatusSource() *fakeStatusSource {
	return &fakeStatusSource{
		statuses: make(chan types.ExtrinsicStatus, 4),
		errs:     make(chan error, 1),
	}
}

func (f *fakeStatusSource) Chan() <-chan types.ExtrinsicStatus { return f.statuses }
func (f *fakeStatusSource) Err() <-chan error                  { return f.errs }

func (f *fakeStatusSource) Unsubscribe() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.unsubscribed++
}

func (f *fakeStatusSource) Unsubscribed() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.unsubscribed
}

func noEvents(types.Hash, string) ([]string, error) {
	return nil, nil
}

func newTestSubscription(source statusSource, events eventsFunc) *statusSubscription {
	return newStatusSubscription(source, "0xfeed", events, log.NewLoggerWithWriter(io.Discard, "error"))
}

func receive(t *testing.T, s *statusSubscription) (extrinsic.Notification, bool) {
	t.Helper()

	select {
	case notification, ok := <-s.Notifications():
		return notification, ok
	case <-time.After(waitFor):
		require.FailNow(t, "no notification")
		return extrinsic.Notification{}, false
	}
}

func requireStopped(t *testing.T, s *statusSubscription) {
	t.Helper()

	select {
	case <-s.stopped:
	case <-time.After(waitFor):
		require.FailNow(t, "status subscription is still running")
	}
}

func TestToNotification(t *testing.T) {
	blockHash := types.NewHash([]byte{0xab, 0xcd})

	inBlock := toNotification(types.ExtrinsicStatus{IsInBlock: true, AsInBlock: blockHash})
	assert.Equal(t, extrinsic.KindInBlock, inBlock.Kind)
	assert.True(t, inBlock.IsInBlock())
	assert.False(t, inBlock.IsError)
	assert.Equal(t, blockHash.Hex(), inBlock.BlockHash)

	ready := toNotification(types.ExtrinsicStatus{IsReady: true})
	assert.Equal(t, extrinsic.KindReady, ready.Kind)
	assert.False(t, ready.IsError)

	for _, status := range []types.ExtrinsicStatus{
		{IsDropped: true},
		{IsInvalid: true},
		{IsUsurped: true},
		{IsFinalityTimeout: true},
	} {
		assert.True(t, toNotification(status).IsError)
	}

	assert.False(t, toNotification(types.ExtrinsicStatus{IsRetracted: true}).IsError)
}

func TestStatusSubscription_Unsubscribe_IsIdempotent(t *testing.T) {
	source := newFakeStatusSource()
	s := newTestSubscription(source, noEvents)

	s.Unsubscribe()
	s.Unsubscribe()

	requireStopped(t, s)
	assert.Equal(t, 1, source.Unsubscribed())
	assert.Equal(t, "0xfeed", s.TransactionHash())
}

func TestStatusSubscription_ClosedSourceClosesNotifications(t *testing.T) {
	source := newFakeStatusSource()
	s := newTestSubscription(source, noEvents)

	source.statuses <- types.ExtrinsicStatus{IsReady: true}
	close(source.statuses)

	notification, ok := receive(t, s)
	require.True(t, ok)
	assert.Equal(t, extrinsic.KindReady, notification.Kind)

	_, ok = receive(t, s)
	assert.False(t, ok)
	requireStopped(t, s)

	// Closing the stream is not an unsubscribe, the caller still owns that.
	assert.Zero(t, source.Unsubscribed())
	s.Unsubscribe()
	assert.Equal(t, 1, source.Unsubscribed())
}

func TestStatusSubscription_TransportErrorReachesErr(t *testing.T) {
	source := newFakeStatusSource()
	s := newTestSubscription(source, noEvents)

	connectionLost := errors.New("websocket closed")
	source.errs <- connectionLost

	select {
	case err := <-s.Err():
		assert.ErrorIs(t, err, connectionLost)
	case <-time.After(waitFor):
		require.FailNow(t, "no error")
	}
	requireStopped(t, s)
}

func TestStatusSubscription_InBlockEvents(t *testing.T) {
	blockHash := types.NewHash([]byte{0x01, 0x02})

	cases := []struct {
		name     string
		events   eventsFunc
		expected []string
	}{
		{
			name: "events fetched",
			events: func(hash types.Hash, txHash string) ([]string, error) {
				assert.Equal(t, blockHash, hash)
				assert.Equal(t, "0xfeed", txHash)
				return []string{"forumWorkingGroup.WorkerRewardAmountUpdated", "system.ExtrinsicSuccess"}, nil
			},
			expected: []string{"forumWorkingGroup.WorkerRewardAmountUpdated", "system.ExtrinsicSuccess"},
		},
		{
			name: "event fetch fails",
			events: func(types.Hash, string) ([]string, error) {
				return nil, errors.New("state_getStorage timed out")
			},
			expected: nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			source := newFakeStatusSource()
			s := newTestSubscription(source, c.events)
			defer s.Unsubscribe()

			source.statuses <- types.ExtrinsicStatus{IsInBlock: true, AsInBlock: blockHash}

			notification, ok := receive(t, s)
			require.True(t, ok)
			assert.True(t, notification.IsInBlock())
			assert.Equal(t, blockHash.Hex(), notification.BlockHash)
			assert.Equal(t, c.expected, notification.Events)
		})
	}
}

func TestStatusSubscription_UnsubscribeReleasesBlockedSend(t *testing.T) {
	source := newFakeStatusSource()
	fetched := make(chan struct{})
	s := newTestSubscription(source, func(types.Hash, string) ([]string, error) {
		close(fetched)
		return nil, nil
	})

	// Nobody reads the notification, so run blocks delivering it.
	source.statuses <- types.ExtrinsicStatus{IsInBlock: true}
	select {
	case <-fetched:
	case <-time.After(waitFor):
		require.FailNow(t, "status was never picked up")
	}

	s.Unsubscribe()
	requireStopped(t, s)
	assert.Equal(t, 1, source.Unsubscribed())
}
