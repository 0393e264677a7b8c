// Package stream implements the notification poll engine: it polls the
// feed on a fixed cadence, deduplicates against bounded FIFO caches,
// reconstructs new artist comments from count movements and dispatches
// typed events to a subscriber.
package stream

import (
	"context"

	"weverse-watcher/internal/domain/entity"
)

// Subscriber receives the events a poll cycle produces. Every new
// plain notification is delivered through OnNewNotification first,
// followed by the typed callback matching its variety. Reconstructed
// comments arrive through OnNewComment only; the feed entry that
// announced them carries no usable identity of its own. Callbacks run
// sequentially on the engine goroutine; a slow subscriber delays the
// cycle, not the process.
//
// Errors returned by callbacks are routed to OnException and do not
// stop the cycle or the engine.
type Subscriber interface {
	// OnNewNotification fires for every new plain notification,
	// before any typed callback.
	OnNewNotification(ctx context.Context, notification *entity.Notification) error

	// OnNewComment fires for each reconstructed artist comment,
	// oldest first within a cycle.
	OnNewComment(ctx context.Context, comment *entity.Comment) error

	// OnNewPost fires for new text posts.
	OnNewPost(ctx context.Context, post *entity.Post) error

	// OnNewMedia fires for new media posts. The concrete type of
	// media is one of the entity media variants.
	OnNewMedia(ctx context.Context, media entity.Media) error

	// OnNewMoment fires for new moments.
	OnNewMoment(ctx context.Context, moment entity.Moment) error

	// OnNewLive fires for new live broadcasts.
	OnNewLive(ctx context.Context, live *entity.Live) error

	// OnNewNotice fires for new community notices. Global notices,
	// recognisable by a zero community id, are not delivered.
	OnNewNotice(ctx context.Context, notice *entity.Notice) error

	// OnException is informed of every recoverable error: failed
	// cycles, failed detail fetches and errors returned by the other
	// callbacks. It must not block.
	OnException(ctx context.Context, err error)
}

// NopSubscriber is a Subscriber that ignores everything. Embed it to
// implement only the callbacks of interest.
type NopSubscriber struct{}

func (NopSubscriber) OnNewNotification(context.Context, *entity.Notification) error { return nil }
func (NopSubscriber) OnNewComment(context.Context, *entity.Comment) error           { return nil }
func (NopSubscriber) OnNewPost(context.Context, *entity.Post) error                 { return nil }
func (NopSubscriber) OnNewMedia(context.Context, entity.Media) error                { return nil }
func (NopSubscriber) OnNewMoment(context.Context, entity.Moment) error              { return nil }
func (NopSubscriber) OnNewLive(context.Context, *entity.Live) error                 { return nil }
func (NopSubscriber) OnNewNotice(context.Context, *entity.Notice) error             { return nil }
func (NopSubscriber) OnException(context.Context, error)                            {}

// Source supplies the records a poll cycle needs. The production
// implementation is the Weverse API client; tests substitute fakes.
type Source interface {
	// LatestNotifications returns the newest feed page, newest first.
	LatestNotifications(ctx context.Context) ([]*entity.Notification, error)

	// ArtistComments returns the artist comments on a post, newest
	// first.
	ArtistComments(ctx context.Context, postID string) ([]*entity.Comment, error)

	Post(ctx context.Context, postID string) (*entity.Post, error)
	Media(ctx context.Context, postID string) (entity.Media, error)
	Moment(ctx context.Context, postID string) (entity.Moment, error)
	Live(ctx context.Context, postID string) (*entity.Live, error)
	Notice(ctx context.Context, noticeID string) (*entity.Notice, error)
}
