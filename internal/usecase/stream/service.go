package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"weverse-watcher/internal/cache"
	"weverse-watcher/internal/domain/entity"
	"weverse-watcher/internal/observability/logging"
)

const (
	defaultInterval          = 20 * time.Second
	defaultCommentFetchDelay = 350 * time.Millisecond
)

// Config tunes the poll engine.
type Config struct {
	// Interval is the pause between cycles. Default 20s.
	Interval time.Duration

	// CacheCapacity bounds each dedup cache. Default 5000.
	CacheCapacity int

	// CommentFetchDelay paces artist-comment fetches within a cycle.
	// Default 350ms.
	CommentFetchDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.CacheCapacity <= 0 {
		c.CacheCapacity = cache.DefaultCapacity
	}
	if c.CommentFetchDelay <= 0 {
		c.CommentFetchDelay = defaultCommentFetchDelay
	}
	return c
}

// Stats is a point-in-time snapshot of the engine state.
type Stats struct {
	Cycles             uint64
	LastCycleAt        time.Time
	LastCycleOK        bool
	NotificationCached int
	CommentCountCached int
	CommentCached      int
}

// Engine is the polling engine. It owns the three dedup caches and
// runs the warm-up-then-poll loop until its context is cancelled.
// Construct with New; the zero value is not usable.
type Engine struct {
	source     Source
	subscriber Subscriber
	cfg        Config
	logger     *slog.Logger
	limiter    *rate.Limiter
	now        func() time.Time

	notifications *cache.FIFO[int64, *entity.Notification]
	commentCounts *cache.FIFO[string, int]
	comments      *cache.FIFO[string, *entity.Comment]

	ready     chan struct{}
	readyOnce sync.Once

	mu    sync.Mutex
	stats Stats
}

// New builds an Engine polling source and delivering to subscriber.
func New(source Source, subscriber Subscriber, cfg Config, logger *slog.Logger) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		source:        source,
		subscriber:    subscriber,
		cfg:           cfg,
		logger:        logger,
		limiter:       rate.NewLimiter(rate.Every(cfg.CommentFetchDelay), 1),
		now:           time.Now,
		ready:         make(chan struct{}),
		notifications: cache.NewFIFO[int64, *entity.Notification](cfg.CacheCapacity),
		commentCounts: cache.NewFIFO[string, int](cfg.CacheCapacity),
		comments:      cache.NewFIFO[string, *entity.Comment](cfg.CacheCapacity),
	}
}

// Ready returns a channel closed once the warm-up cycle has completed
// and the engine is polling.
func (e *Engine) Ready() <-chan struct{} {
	return e.ready
}

// Stats returns a snapshot of the engine state for health reporting.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.stats
	s.NotificationCached = e.notifications.Len()
	s.CommentCountCached = e.commentCounts.Len()
	s.CommentCached = e.comments.Len()
	return s
}

// Run executes the warm-up cycle and then polls until ctx is
// cancelled. A warm-up failure is returned immediately; the watcher
// cannot safely start dispatching from empty caches. After warm-up,
// cycle failures are routed to the subscriber's OnException hook and
// the loop keeps going. Run returns ctx.Err on cancellation.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.warmUp(ctx); err != nil {
		return fmt.Errorf("warm-up cycle: %w", err)
	}
	e.readyOnce.Do(func() { close(e.ready) })

	e.logger.InfoContext(ctx, "notification stream started",
		slog.Duration("interval", e.cfg.Interval),
		slog.Int("cache_capacity", e.cfg.CacheCapacity))

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.InfoContext(ctx, "notification stream stopped")
			return ctx.Err()
		case <-ticker.C:
			e.runCycle(ctx)
		}
	}
}

// warmUp runs the delta computation once to populate the caches. The
// deltas themselves are discarded: everything visible on the first
// fetch predates the watcher.
func (e *Engine) warmUp(ctx context.Context) error {
	_, _, err := e.collect(ctx)
	if err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "caches warmed up",
		slog.Int("notifications", e.notifications.Len()),
		slog.Int("comment_counts", e.commentCounts.Len()),
		slog.Int("comments", e.comments.Len()))
	e.updateStats(true)
	return nil
}

// runCycle performs one poll cycle. All failures, including subscriber
// panics, are contained here so the loop survives.
func (e *Engine) runCycle(ctx context.Context) {
	cycleID := uuid.NewString()
	logger := logging.WithCycleID(e.logger, cycleID)
	start := e.now()

	defer func() {
		if r := recover(); r != nil {
			recordCycle("failure", e.now().Sub(start))
			e.updateStats(false)
			err := fmt.Errorf("cycle %s panicked: %v", cycleID, r)
			logger.ErrorContext(ctx, "poll cycle panicked", slog.Any("error", err))
			e.subscriber.OnException(ctx, err)
		}
	}()

	notifications, comments, err := e.collect(ctx)
	if err != nil {
		recordCycle("failure", e.now().Sub(start))
		e.updateStats(false)
		logger.WarnContext(ctx, "poll cycle failed", slog.Any("error", err))
		e.subscriber.OnException(ctx, err)
		return
	}

	e.dispatch(ctx, logger, notifications, comments)

	recordCycle("success", e.now().Sub(start))
	e.updateStats(true)

	if len(notifications) > 0 || len(comments) > 0 {
		logger.InfoContext(ctx, "poll cycle dispatched new items",
			slog.Int("notifications", len(notifications)),
			slog.Int("comments", len(comments)),
			slog.Duration("took", e.now().Sub(start)))
	}
}

// collect fetches the feed and computes both deltas against pre-cycle
// cache snapshots. Classification mutates the caches, so the snapshots
// must be taken first.
func (e *Engine) collect(ctx context.Context) ([]*entity.Notification, []*entity.Comment, error) {
	priorPlain := e.notifications.Snapshot()
	priorCounts := e.commentCounts.Snapshot()

	feed, err := e.source.LatestNotifications(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch latest notifications: %w", err)
	}
	recordFeedSize(len(feed))

	plain, commentful := e.classify(feed)

	newPlain := newPlainNotifications(priorPlain, plain, e.now().UnixMilli())

	newComments, err := e.reconstructComments(ctx, priorCounts, commentful)
	if err != nil {
		return nil, nil, err
	}

	setCacheSize("notification", e.notifications.Len())
	setCacheSize("comment_count", e.commentCounts.Len())
	setCacheSize("comment", e.comments.Len())

	return newPlain, newComments, nil
}

// dispatch delivers the cycle's new items sequentially. Per-item
// failures go to OnException and do not block the remaining items.
func (e *Engine) dispatch(ctx context.Context, logger *slog.Logger, notifications []*entity.Notification, comments []*entity.Comment) {
	for _, n := range notifications {
		if err := e.subscriber.OnNewNotification(ctx, n); err != nil {
			e.reportDispatchError(ctx, logger, "notification", err)
		}
		if err := e.dispatchTyped(ctx, n); err != nil {
			e.reportDispatchError(ctx, logger, string(n.Type), err)
			continue
		}
		recordNewItem(string(n.Type))
	}

	for _, c := range comments {
		if err := e.subscriber.OnNewComment(ctx, c); err != nil {
			e.reportDispatchError(ctx, logger, "comment", err)
			continue
		}
		recordNewItem("comment")
	}
}

// dispatchTyped fetches the full record behind a plain notification
// and invokes the matching typed callback.
func (e *Engine) dispatchTyped(ctx context.Context, n *entity.Notification) error {
	switch n.Type {
	case entity.TypePost:
		post, err := e.source.Post(ctx, n.PostID)
		if err != nil {
			return fmt.Errorf("fetch post %s: %w", n.PostID, err)
		}
		return e.subscriber.OnNewPost(ctx, post)

	case entity.TypeMoment:
		moment, err := e.source.Moment(ctx, n.PostID)
		if err != nil {
			return fmt.Errorf("fetch moment %s: %w", n.PostID, err)
		}
		return e.subscriber.OnNewMoment(ctx, moment)

	case entity.TypeMedia:
		media, err := e.source.Media(ctx, n.PostID)
		if errors.Is(err, entity.ErrForbidden) {
			// Membership-gated media the account cannot open.
			recordSkipped("media", "forbidden")
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch media %s: %w", n.PostID, err)
		}
		return e.subscriber.OnNewMedia(ctx, media)

	case entity.TypeLive:
		live, err := e.source.Live(ctx, n.PostID)
		if err != nil {
			return fmt.Errorf("fetch live %s: %w", n.PostID, err)
		}
		return e.subscriber.OnNewLive(ctx, live)

	case entity.TypeNotice:
		// Zero community id marks platform-wide notices, which are
		// not community activity.
		if n.Community.ID == 0 {
			recordSkipped("notice", "global")
			return nil
		}
		notice, err := e.source.Notice(ctx, n.PostID)
		if err != nil {
			return fmt.Errorf("fetch notice %s: %w", n.PostID, err)
		}
		return e.subscriber.OnNewNotice(ctx, notice)

	default:
		// Birthday banners and future feed varieties have no typed
		// payload to fetch.
		return nil
	}
}

func (e *Engine) reportDispatchError(ctx context.Context, logger *slog.Logger, itemType string, err error) {
	recordDispatchError(itemType)
	logger.WarnContext(ctx, "dispatch failed",
		slog.String("type", itemType),
		slog.Any("error", err))
	e.subscriber.OnException(ctx, err)
}

func (e *Engine) updateStats(ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.Cycles++
	e.stats.LastCycleAt = e.now()
	e.stats.LastCycleOK = ok
}
