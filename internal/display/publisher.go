// Package display formats quotes for the sidebar and fans them out to
// the configured sinks.
package display

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kjannette/sidebar-pricebot/internal/models"
)

// Publisher pushes one Display to a sink. Publishing is fire-and-forget:
// sinks log their own failures and never retry.
//
//go:generate mockgen -package=displaymock -destination=displaymock/publisher.go -source=publisher.go Publisher
type Publisher interface {
	Publish(ctx context.Context, d models.Display)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, d models.Display)

func (f PublisherFunc) Publish(ctx context.Context, d models.Display) { f(ctx, d) }

// Multi publishes to every sink in order.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, d models.Display) {
	for _, p := range m {
		p.Publish(ctx, d)
	}
}

// Log writes every display to the logger.
type Log struct {
	log zerolog.Logger
}

func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Publish(_ context.Context, d models.Display) {
	l.log.Info().
		Str("identity", d.Identity).
		Str("status", d.Status).
		Str("denomination", d.Denomination).
		Msg("display updated")
}
