// Package ledger simulates a blockchain anchor for shipment events. It
// fabricates transaction hashes and block numbers and persists events to the
// shipment_events collection; there is no real chain, consensus, or
// signature verification behind it.
package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ecofreight-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewTxHash returns a fabricated transaction hash: "0x" followed by 64
// lowercase hex characters (66 characters total).
func NewTxHash() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(fmt.Sprintf("ledger: entropy source unavailable: %v", err))
	}
	return "0x" + hex.EncodeToString(b)
}

// Ledger holds the fabricated chain state: a monotonic block counter and a
// bounded in-memory tail of recent transactions, plus the Mongo collection
// events are persisted to.
type Ledger struct {
	db       *mongo.Database
	network  string
	tailSize int

	mu       sync.Mutex
	blockNum uint64
	tail     []models.ShipmentEvent
}

func New(db *mongo.Database, network string, tailSize int) *Ledger {
	if tailSize <= 0 {
		tailSize = 256
	}
	return &Ledger{
		db:       db,
		network:  network,
		tailSize: tailSize,
		blockNum: 1_000_000, // fake genesis offset so heights look plausible
	}
}

// Submit anchors a shipment event: fabricates a tx hash and block number,
// appends to the in-memory tail, and inserts the event into Mongo. Details
// may be nil.
func (l *Ledger) Submit(ctx context.Context, shipmentID, eventType string, details interface{}) (models.ShipmentEvent, error) {
	var raw json.RawMessage
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return models.ShipmentEvent{}, fmt.Errorf("failed to encode event details: %w", err)
		}
		raw = b
	}

	l.mu.Lock()
	l.blockNum++
	event := models.ShipmentEvent{
		ShipmentID:  shipmentID,
		EventType:   eventType,
		Details:     raw,
		TxHash:      NewTxHash(),
		BlockNumber: l.blockNum,
		Network:     l.network,
		Timestamp:   time.Now().UTC(),
	}
	l.mu.Unlock()

	// In memory-only mode the fake chain lives entirely in the tail, like
	// the original single-process ledger. With a database behind it, the
	// event only enters the tail once the insert succeeded, so the tail
	// never advertises a transaction that was not persisted.
	if l.db != nil {
		result, err := l.db.Collection("shipment_events").InsertOne(ctx, event)
		if err != nil {
			return models.ShipmentEvent{}, err
		}
		if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
			event.ID = oid
		}
	}

	l.mu.Lock()
	l.tail = append(l.tail, event)
	if len(l.tail) > l.tailSize {
		l.tail = l.tail[len(l.tail)-l.tailSize:]
	}
	l.mu.Unlock()

	return event, nil
}

// History returns the anchored events for one shipment, newest first. In
// memory-only mode it is served from the tail, so it only reaches as far
// back as the tail size.
func (l *Ledger) History(ctx context.Context, shipmentID string) ([]models.ShipmentEvent, error) {
	if l.db == nil {
		l.mu.Lock()
		events := []models.ShipmentEvent{}
		for i := len(l.tail) - 1; i >= 0; i-- {
			if l.tail[i].ShipmentID == shipmentID {
				events = append(events, l.tail[i])
			}
		}
		l.mu.Unlock()
		return events, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := l.db.Collection("shipment_events").Find(ctx, bson.M{"shipmentID": shipmentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.ShipmentEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.ShipmentEvent{}
	}
	return events, nil
}

// Tail returns a copy of the recent in-memory transactions.
func (l *Ledger) Tail() []models.ShipmentEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ShipmentEvent, len(l.tail))
	copy(out, l.tail)
	return out
}

// Network returns the fabricated network name.
func (l *Ledger) Network() string {
	return l.network
}
