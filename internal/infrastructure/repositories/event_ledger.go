package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/clubsvc/domain"
)

// EventLedgerImpl implements domain.EventLedger using Redis SETNX. The
// payment provider delivers webhooks at-least-once; recording each event
// id lets redeliveries be acknowledged without reapplying them.
type EventLedgerImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewEventLedger creates a new webhook event ledger
func NewEventLedger(client *redis.Client, ttl time.Duration) domain.EventLedger {
	return &EventLedgerImpl{
		client: client,
		prefix: "payment:evt:",
		ttl:    ttl,
	}
}

// FirstSeen implements domain.EventLedger
func (l *EventLedgerImpl) FirstSeen(ctx context.Context, eventID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.prefix+eventID, 1, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record event id: %w", err)
	}
	return ok, nil
}

// Forget implements domain.EventLedger
func (l *EventLedgerImpl) Forget(ctx context.Context, eventID string) error {
	if err := l.client.Del(ctx, l.prefix+eventID).Err(); err != nil {
		return fmt.Errorf("failed to release event id: %w", err)
	}
	return nil
}
