package poller

import (
	"context"
	"log"
	"time"

	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

type Client interface {
	GetUpdates(ctx context.Context, req telegram.GetUpdates) (telegram.UpdateBatch, error)
}

type Handler interface {
	HandleUpdate(ctx context.Context, update model.Update) (bool, error)
}

// Offsets persists the next update_id to fetch. *OffsetStore implements it.
type Offsets interface {
	Offset(botID int64) (int64, error)
	SetOffset(botID, offset int64) error
}

// Poller feeds updates from getUpdates to a Handler. Use it instead of the
// webhook, never together with it: Telegram refuses getUpdates while a
// webhook is set.
type Poller struct {
	Client  Client
	Handler Handler
	Offsets Offsets
	BotID   int64

	// Timeout is the long-poll timeout sent to Telegram.
	Timeout        time.Duration
	AllowedUpdates []string
	MinBackoff     time.Duration
	MaxBackoff     time.Duration
}

func New(client Client, handler Handler, offsets Offsets, botID int64) *Poller {
	return &Poller{
		Client:     client,
		Handler:    handler,
		Offsets:    offsets,
		BotID:      botID,
		Timeout:    30 * time.Second,
		MinBackoff: time.Second,
		MaxBackoff: 30 * time.Second,
	}
}

// Run polls until ctx is cancelled, then returns nil. Failed polls are
// retried with exponential backoff. Handler errors are logged and the update
// is still confirmed, so one bad update cannot stall the bot. Updates of a
// batch not yet handled when ctx is cancelled stay unconfirmed.
func (p *Poller) Run(ctx context.Context) error {
	offset, err := p.Offsets.Offset(p.BotID)
	if err != nil {
		return err
	}
	backoff := p.MinBackoff

	for {
		if ctx.Err() != nil {
			return nil
		}

		req := telegram.GetUpdates{
			Timeout:        telegram.Ptr(int(p.Timeout / time.Second)),
			AllowedUpdates: p.AllowedUpdates,
		}
		if offset > 0 {
			req.Offset = telegram.Ptr(offset)
		}
		batch, err := p.Client.GetUpdates(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("poller: getUpdates failed: %v (retrying in %v)", err, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil
			}
			backoff = min(backoff*2, p.MaxBackoff)
			continue
		}
		backoff = p.MinBackoff

		for id, err := range batch.Failed {
			log.Printf("poller: skipping update %d: %v", id, err)
		}
		for _, update := range batch.Updates {
			// Leave the rest of the batch unconfirmed so it is fetched
			// again on the next run.
			if ctx.Err() != nil {
				return nil
			}
			if _, err := p.Handler.HandleUpdate(ctx, update); err != nil {
				log.Printf("poller: update %d failed: %v", update.ID, err)
			}
			offset = update.ID + 1
			p.saveOffset(offset)
		}
		if batch.NextOffset > offset {
			offset = batch.NextOffset
			p.saveOffset(offset)
		}
	}
}

func (p *Poller) saveOffset(offset int64) {
	if err := p.Offsets.SetOffset(p.BotID, offset); err != nil {
		log.Printf("poller: failed to store offset %d: %v", offset, err)
	}
}
