package stream

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"weverse-watcher/internal/domain/entity"
)

// fixedNow is the wall clock every test engine runs at.
var fixedNow = time.UnixMilli(1700000000000)

// stubSource implements Source with overridable function fields.
type stubSource struct {
	latest   func(ctx context.Context) ([]*entity.Notification, error)
	comments func(ctx context.Context, postID string) ([]*entity.Comment, error)
	post     func(ctx context.Context, postID string) (*entity.Post, error)
	media    func(ctx context.Context, postID string) (entity.Media, error)
	moment   func(ctx context.Context, postID string) (entity.Moment, error)
	live     func(ctx context.Context, postID string) (*entity.Live, error)
	notice   func(ctx context.Context, noticeID string) (*entity.Notice, error)
}

func (s *stubSource) LatestNotifications(ctx context.Context) ([]*entity.Notification, error) {
	if s.latest == nil {
		return nil, nil
	}
	return s.latest(ctx)
}

func (s *stubSource) ArtistComments(ctx context.Context, postID string) ([]*entity.Comment, error) {
	if s.comments == nil {
		return nil, nil
	}
	return s.comments(ctx, postID)
}

func (s *stubSource) Post(ctx context.Context, postID string) (*entity.Post, error) {
	if s.post == nil {
		return &entity.Post{ID: postID}, nil
	}
	return s.post(ctx, postID)
}

func (s *stubSource) Media(ctx context.Context, postID string) (entity.Media, error) {
	if s.media == nil {
		return entity.ImageMedia{MediaAttributes: entity.MediaAttributes{ID: postID}}, nil
	}
	return s.media(ctx, postID)
}

func (s *stubSource) Moment(ctx context.Context, postID string) (entity.Moment, error) {
	if s.moment == nil {
		return entity.VideoMoment{MomentAttributes: entity.MomentAttributes{ID: postID}}, nil
	}
	return s.moment(ctx, postID)
}

func (s *stubSource) Live(ctx context.Context, postID string) (*entity.Live, error) {
	if s.live == nil {
		return &entity.Live{MediaAttributes: entity.MediaAttributes{ID: postID}}, nil
	}
	return s.live(ctx, postID)
}

func (s *stubSource) Notice(ctx context.Context, noticeID string) (*entity.Notice, error) {
	if s.notice == nil {
		return &entity.Notice{ID: 1}, nil
	}
	return s.notice(ctx, noticeID)
}

// recordingSubscriber captures everything the engine dispatches.
type recordingSubscriber struct {
	NopSubscriber

	notifications []*entity.Notification
	comments      []*entity.Comment
	posts         []*entity.Post
	media         []entity.Media
	moments       []entity.Moment
	lives         []*entity.Live
	notices       []*entity.Notice
	errs          []error

	onNotification func(*entity.Notification) error
}

func (r *recordingSubscriber) OnNewNotification(ctx context.Context, n *entity.Notification) error {
	r.notifications = append(r.notifications, n)
	if r.onNotification != nil {
		return r.onNotification(n)
	}
	return nil
}

func (r *recordingSubscriber) OnNewComment(ctx context.Context, c *entity.Comment) error {
	r.comments = append(r.comments, c)
	return nil
}

func (r *recordingSubscriber) OnNewPost(ctx context.Context, p *entity.Post) error {
	r.posts = append(r.posts, p)
	return nil
}

func (r *recordingSubscriber) OnNewMedia(ctx context.Context, m entity.Media) error {
	r.media = append(r.media, m)
	return nil
}

func (r *recordingSubscriber) OnNewMoment(ctx context.Context, m entity.Moment) error {
	r.moments = append(r.moments, m)
	return nil
}

func (r *recordingSubscriber) OnNewLive(ctx context.Context, l *entity.Live) error {
	r.lives = append(r.lives, l)
	return nil
}

func (r *recordingSubscriber) OnNewNotice(ctx context.Context, n *entity.Notice) error {
	r.notices = append(r.notices, n)
	return nil
}

func (r *recordingSubscriber) OnException(ctx context.Context, err error) {
	r.errs = append(r.errs, err)
}

func newTestEngine(t *testing.T, source Source, subscriber Subscriber) *Engine {
	t.Helper()
	e := New(source, subscriber, Config{
		Interval:          time.Second,
		CacheCapacity:     100,
		CommentFetchDelay: time.Nanosecond,
	}, slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError})))
	e.now = func() time.Time { return fixedNow }
	return e
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

// Helpers for building feed entries relative to the fixed clock.

func plainNotification(id int64, typ entity.NotificationType, age time.Duration) *entity.Notification {
	return &entity.Notification{
		ID:        id,
		Type:      typ,
		CreatedAt: fixedNow.Add(-age).UnixMilli(),
		PostID:    "post-1",
		Community: entity.Community{ID: 14, Name: "Kep1er"},
	}
}

func commentNotification(id int64, postID, authorID string, count int) *entity.Notification {
	return &entity.Notification{
		ID:        id,
		Type:      entity.TypeArtistPostComment,
		CreatedAt: fixedNow.UnixMilli(),
		PostID:    postID,
		Author:    entity.Member{ID: authorID},
		Count:     count,
		Community: entity.Community{ID: 14},
	}
}

func comment(id, postID, authorID string, age time.Duration) *entity.Comment {
	return &entity.Comment{
		ID:        id,
		PostID:    postID,
		Author:    entity.Member{ID: authorID},
		CreatedAt: fixedNow.Add(-age).UnixMilli(),
	}
}
