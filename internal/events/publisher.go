// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/cce459/AniLifeClone/internal/logging"
	"github.com/cce459/AniLifeClone/internal/metrics"
)

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("publisher is closed")

// Publisher encodes domain events and sends them through a circuit breaker.
type Publisher struct {
	publisher      message.Publisher
	circuitBreaker *gobreaker.CircuitBreaker[interface{}]

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps pub. cb may be nil to publish without a breaker.
func NewPublisher(pub message.Publisher, cb *gobreaker.CircuitBreaker[interface{}]) *Publisher {
	return &Publisher{publisher: pub, circuitBreaker: cb}
}

// Publish sends msg to topic.
func (p *Publisher) Publish(ctx context.Context, topic string, msg *message.Message) error {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		metrics.RecordEventPublish(topic, "error")
		return ErrPublisherClosed
	}

	msg.SetContext(ctx)
	if cid := logging.CorrelationIDFromContext(ctx); cid != "" {
		msg.Metadata.Set("correlation_id", cid)
	}

	var err error
	if p.circuitBreaker != nil {
		_, err = p.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, p.publisher.Publish(topic, msg)
		})
	} else {
		err = p.publisher.Publish(topic, msg)
	}

	switch {
	case err == nil:
		metrics.RecordEventPublish(topic, "ok")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordEventPublish(topic, "breaker_open")
	default:
		metrics.RecordEventPublish(topic, "error")
	}
	return err
}

// PublishProgressRecorded encodes and publishes event.
func (p *Publisher) PublishProgressRecorded(ctx context.Context, event ProgressRecorded) error {
	data, err := event.Marshal()
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.ProgressID, data)
	msg.Metadata.Set("viewer_id", event.ViewerID)
	msg.Metadata.Set("title_id", event.TitleID)

	if err := p.Publish(ctx, TopicProgressRecorded, msg); err != nil {
		return fmt.Errorf("publish %s: %w", TopicProgressRecorded, err)
	}
	return nil
}

// Close marks the publisher closed. The underlying Pub/Sub is owned by the
// caller and is not closed here.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
