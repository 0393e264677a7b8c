package stream

import (
	"context"
	"fmt"
	"testing"
	"time"

	"weverse-watcher/internal/domain/entity"
)

func TestCollect_PlainDeltaFreshnessWindow(t *testing.T) {
	feed := []*entity.Notification{
		plainNotification(10, entity.TypePost, 5*time.Second),
		plainNotification(11, entity.TypePost, 601*time.Second),
		plainNotification(12, entity.TypePost, 10*time.Minute),                  // exactly on the bound, still new
		plainNotification(13, entity.TypePost, 10*time.Minute+time.Millisecond), // one past the bound
	}
	source := &stubSource{
		latest: func(context.Context) ([]*entity.Notification, error) { return feed, nil },
	}
	e := newTestEngine(t, source, &recordingSubscriber{})

	notifications, comments, err := e.collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("expected no comments, got %d", len(comments))
	}

	var ids []int64
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	want := []int64{10, 12}
	if fmt.Sprint(ids) != fmt.Sprint(want) {
		t.Errorf("new notification ids = %v, want %v", ids, want)
	}

	// Every feed entry is cached regardless of freshness.
	for _, n := range feed {
		if !e.notifications.Contains(n.ID) {
			t.Errorf("expected notification %d to be cached", n.ID)
		}
	}
}

func TestCollect_CachedNotificationNotReemitted(t *testing.T) {
	feed := []*entity.Notification{plainNotification(10, entity.TypePost, 5*time.Second)}
	source := &stubSource{
		latest: func(context.Context) ([]*entity.Notification, error) { return feed, nil },
	}
	e := newTestEngine(t, source, &recordingSubscriber{})
	ctx := context.Background()

	first, _, err := e.collect(ctx)
	if err != nil {
		t.Fatalf("first collect: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first cycle: got %d new, want 1", len(first))
	}

	second, _, err := e.collect(ctx)
	if err != nil {
		t.Fatalf("second collect: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second cycle: got %d new, want 0", len(second))
	}
}

func TestCollect_CommentCountDelta(t *testing.T) {
	// Cycle 1 observes count 3, cycle 2 count 7: the first four of the
	// author's comments are the new ones. Another artist's comment on
	// the same post never counts toward this author's delta.
	warmUpComments := []*entity.Comment{
		comment("c5", "post-9", "artist-1", time.Hour),
	}
	cycleComments := []*entity.Comment{
		comment("c1", "post-9", "artist-1", time.Second),
		comment("c2", "post-9", "artist-1", 2*time.Second),
		comment("c3", "post-9", "artist-1", 3*time.Second),
		comment("c4", "post-9", "artist-1", 4*time.Second),
		comment("c5", "post-9", "artist-1", time.Hour),
		comment("c6", "post-9", "artist-2", time.Second),
	}

	count := 3
	warmedUp := false
	source := &stubSource{
		latest: func(context.Context) ([]*entity.Notification, error) {
			return []*entity.Notification{commentNotification(1, "post-9", "artist-1", count)}, nil
		},
		comments: func(_ context.Context, postID string) ([]*entity.Comment, error) {
			if !warmedUp {
				return warmUpComments, nil
			}
			return cycleComments, nil
		},
	}
	e := newTestEngine(t, source, &recordingSubscriber{})
	ctx := context.Background()

	if err := e.warmUp(ctx); err != nil {
		t.Fatalf("warm-up: %v", err)
	}
	warmedUp = true

	count = 7
	_, comments, err := e.collect(ctx)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	var ids []string
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	// Front insertion flips the newest-first fetch order.
	want := "[c4 c3 c2 c1]"
	if fmt.Sprint(ids) != want {
		t.Errorf("new comment ids = %v, want %s", ids, want)
	}
}

func TestCollect_CommentCountRegressionYieldsNothing(t *testing.T) {
	count := 5
	source := &stubSource{
		latest: func(context.Context) ([]*entity.Notification, error) {
			return []*entity.Notification{commentNotification(1, "post-9", "artist-1", count)}, nil
		},
		comments: func(context.Context, string) ([]*entity.Comment, error) {
			return []*entity.Comment{comment("c1", "post-9", "artist-1", time.Second)}, nil
		},
	}
	e := newTestEngine(t, source, &recordingSubscriber{})
	ctx := context.Background()

	if err := e.warmUp(ctx); err != nil {
		t.Fatalf("warm-up: %v", err)
	}

	// A deleted comment moved the count backwards.
	count = 3
	_, comments, err := e.collect(ctx)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("got %d new comments, want 0", len(comments))
	}
}

func TestCollect_UnknownPairUsesFreshnessWindow(t *testing.T) {
	source := &stubSource{
		latest: func(context.Context) ([]*entity.Notification, error) {
			return []*entity.Notification{commentNotification(1, "post-9", "artist-1", 2)}, nil
		},
		comments: func(context.Context, string) ([]*entity.Comment, error) {
			return []*entity.Comment{
				comment("c-new", "post-9", "artist-1", 30*time.Second),
				comment("c-old", "post-9", "artist-1", 90*time.Second),
			}, nil
		},
	}
	e := newTestEngine(t, source, &recordingSubscriber{})

	// No warm-up: the count cache has never seen this pair.
	_, comments, err := e.collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if len(comments) != 1 || comments[0].ID != "c-new" {
		t.Errorf("new comments = %v, want only c-new", comments)
	}
}

func TestCollect_DeletedPostSkipsNotification(t *testing.T) {
	source := &stubSource{
		latest: func(context.Context) ([]*entity.Notification, error) {
			return []*entity.Notification{
				commentNotification(1, "post-deleted", "artist-1", 2),
				commentNotification(2, "post-alive", "artist-1", 2),
			}, nil
		},
		comments: func(_ context.Context, postID string) ([]*entity.Comment, error) {
			if postID == "post-deleted" {
				return nil, fmt.Errorf("post gone: %w", entity.ErrNotFound)
			}
			return []*entity.Comment{comment("c1", "post-alive", "artist-1", time.Second)}, nil
		},
	}
	e := newTestEngine(t, source, &recordingSubscriber{})

	_, comments, err := e.collect(context.Background())
	if err != nil {
		t.Fatalf("collect should swallow per-item not-found: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != "c1" {
		t.Errorf("new comments = %v, want only c1 from the surviving post", comments)
	}
}

func TestCollect_CommentCacheSuppressesDuplicates(t *testing.T) {
	count := 1
	source := &stubSource{
		latest: func(context.Context) ([]*entity.Notification, error) {
			return []*entity.Notification{commentNotification(1, "post-9", "artist-1", count)}, nil
		},
		comments: func(context.Context, string) ([]*entity.Comment, error) {
			return []*entity.Comment{comment("c1", "post-9", "artist-1", time.Second)}, nil
		},
	}
	e := newTestEngine(t, source, &recordingSubscriber{})
	ctx := context.Background()

	if err := e.warmUp(ctx); err != nil {
		t.Fatalf("warm-up: %v", err)
	}

	// Same comment surfaces again behind a count bump.
	count = 2
	_, comments, err := e.collect(ctx)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("got %d new comments, want 0: c1 was already delivered", len(comments))
	}
}
