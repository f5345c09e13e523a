package ledger

import (
	"context"
	"regexp"
	"testing"

	"ecofreight-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txHashPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

func TestNewTxHashFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		h := NewTxHash()
		assert.Len(t, h, 66)
		assert.Regexp(t, txHashPattern, h)
		assert.False(t, seen[h], "hashes should not repeat")
		seen[h] = true
	}
}

func TestSubmitMemoryOnly(t *testing.T) {
	l := New(nil, "ecochain-testnet", 8)

	event, err := l.Submit(context.Background(), "ECO-TEST0001", models.EventShipmentCreated, map[string]string{"origin": "Rotterdam"})
	require.NoError(t, err)

	assert.Equal(t, "ECO-TEST0001", event.ShipmentID)
	assert.Equal(t, models.EventShipmentCreated, event.EventType)
	assert.Regexp(t, txHashPattern, event.TxHash)
	assert.Equal(t, "ecochain-testnet", event.Network)
	assert.False(t, event.Timestamp.IsZero())
	assert.JSONEq(t, `{"origin":"Rotterdam"}`, string(event.Details))
}

func TestSubmitBlockNumbersMonotonic(t *testing.T) {
	l := New(nil, "ecochain-testnet", 8)

	var last uint64
	for i := 0; i < 5; i++ {
		event, err := l.Submit(context.Background(), "ECO-TEST0001", models.EventStatusChanged, nil)
		require.NoError(t, err)
		assert.Greater(t, event.BlockNumber, last)
		last = event.BlockNumber
	}
}

func TestSubmitNilDetails(t *testing.T) {
	l := New(nil, "ecochain-testnet", 8)

	event, err := l.Submit(context.Background(), "ECO-TEST0001", models.EventStatusChanged, nil)
	require.NoError(t, err)
	assert.Nil(t, event.Details)
}

func TestTailBounded(t *testing.T) {
	l := New(nil, "ecochain-testnet", 3)

	for i := 0; i < 10; i++ {
		_, err := l.Submit(context.Background(), "ECO-TEST0001", models.EventSensorRecorded, nil)
		require.NoError(t, err)
	}

	tail := l.Tail()
	require.Len(t, tail, 3)
	// The tail keeps the most recent transactions.
	assert.Greater(t, tail[2].BlockNumber, tail[0].BlockNumber)
}

func TestHistoryMemoryOnly(t *testing.T) {
	l := New(nil, "ecochain-testnet", 8)

	first, err := l.Submit(context.Background(), "ECO-TEST0001", models.EventShipmentCreated, nil)
	require.NoError(t, err)
	_, err = l.Submit(context.Background(), "ECO-OTHER999", models.EventShipmentCreated, nil)
	require.NoError(t, err)
	second, err := l.Submit(context.Background(), "ECO-TEST0001", models.EventStatusChanged, nil)
	require.NoError(t, err)

	events, err := l.History(context.Background(), "ECO-TEST0001")
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first, and never another shipment's events.
	assert.Equal(t, second.TxHash, events[0].TxHash)
	assert.Equal(t, first.TxHash, events[1].TxHash)
}

func TestHistoryMemoryOnlyEmpty(t *testing.T) {
	l := New(nil, "ecochain-testnet", 8)

	events, err := l.History(context.Background(), "ECO-NOSUCH00")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestTailMatchesSubmittedEvents(t *testing.T) {
	l := New(nil, "ecochain-testnet", 8)

	event, err := l.Submit(context.Background(), "ECO-TEST0001", models.EventShipmentCreated, nil)
	require.NoError(t, err)

	tail := l.Tail()
	require.Len(t, tail, 1)
	assert.Equal(t, event.TxHash, tail[0].TxHash)
	assert.Equal(t, event.BlockNumber, tail[0].BlockNumber)
}

func TestTailReturnsCopy(t *testing.T) {
	l := New(nil, "ecochain-testnet", 8)
	_, err := l.Submit(context.Background(), "ECO-TEST0001", models.EventShipmentCreated, nil)
	require.NoError(t, err)

	tail := l.Tail()
	tail[0].TxHash = "tampered"

	assert.NotEqual(t, "tampered", l.Tail()[0].TxHash)
}
