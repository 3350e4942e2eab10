package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// entityEvent is the wire shape for campus.entity.<kind> messages.
type entityEvent struct {
	Kind     string `json:"kind"`
	CampusID string `json:"campus_id"`
	Name     string `json:"name"`
}

// importEvent is the wire shape for campus.import.<kind> messages.
type importEvent struct {
	CampusID string              `json:"campus_id"`
	Kind     string              `json:"kind"`
	Tally    *domain.ImportTally `json:"tally"`
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	// Ensure streams exist
	streams := []nats.StreamConfig{
		{
			Name:      "MAP_UPDATES",
			Subjects:  []string{"campus.entity.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    1 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "IMPORTS",
			Subjects:  []string{"campus.import.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist — try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishEntityCreated(ctx context.Context, kind, campusID, name string) error {
	data, err := json.Marshal(entityEvent{Kind: kind, CampusID: campusID, Name: name})
	if err != nil {
		return err
	}
	_, err = p.js.Publish("campus.entity."+kind, data)
	return err
}

func (p *Publisher) PublishImportCompleted(ctx context.Context, campusID, kind string, tally *domain.ImportTally) error {
	data, err := json.Marshal(importEvent{CampusID: campusID, Kind: kind, Tally: tally})
	if err != nil {
		return err
	}
	_, err = p.js.Publish("campus.import."+kind, data)
	return err
}

func (p *Publisher) PublishBroadcast(ctx context.Context, data []byte) error {
	return p.conn.Publish("campus.updates.broadcast", data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
