package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weverse-watcher/internal/domain/entity"
)

const (
	// plainFreshness bounds how old a previously unseen plain
	// notification may be and still count as new. Anything older is a
	// backfilled or re-surfaced entry.
	plainFreshness = 10 * time.Minute

	// commentFreshness bounds comment age when the count cache has no
	// prior count to diff against.
	commentFreshness = time.Minute
)

// newPlainNotifications returns the plain notifications that are new
// relative to the pre-cycle cache snapshot: absent from the snapshot
// and created within the freshness window. Feed order is preserved.
func newPlainNotifications(prior map[int64]*entity.Notification, fetched []*entity.Notification, nowMillis int64) []*entity.Notification {
	var fresh []*entity.Notification
	for _, n := range fetched {
		if _, seen := prior[n.ID]; seen {
			continue
		}
		if nowMillis-n.CreatedAt > plainFreshness.Milliseconds() {
			recordSkipped("notification", "stale")
			continue
		}
		fresh = append(fresh, n)
	}
	return fresh
}

// reconstructComments resolves comment-bearing notifications into the
// individual new artist comments behind them. The feed only reports a
// per-post count, so each notification costs one artist-comments fetch,
// paced by the engine limiter.
//
// With a prior count C_old for the post and author, the first
// C - C_old comments by that author are taken as new. Without one the
// count movement is unknowable and the freshness window applies
// instead. Either way the comment cache has the final say, and every
// accepted comment is cached immediately so a crash mid-cycle cannot
// replay it.
//
// Comments are front-inserted per notification, so the result runs
// oldest first across the cycle.
func (e *Engine) reconstructComments(ctx context.Context, prior map[string]int, notifications []*entity.Notification) ([]*entity.Comment, error) {
	nowMillis := e.now().UnixMilli()

	var fresh []*entity.Comment
	for _, n := range notifications {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		comments, err := e.source.ArtistComments(ctx, n.PostID)
		if errors.Is(err, entity.ErrNotFound) {
			// The post disappeared between the feed fetch and now.
			recordSkipped("comment", "post_gone")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetch artist comments for post %s: %w", n.PostID, err)
		}

		priorCount, seen := prior[countKey(n)]
		if !seen {
			for _, c := range comments {
				if nowMillis-c.CreatedAt > commentFreshness.Milliseconds() {
					continue
				}
				if e.comments.Contains(c.ID) {
					continue
				}
				fresh = append([]*entity.Comment{c}, fresh...)
				e.comments.Put(c.ID, c)
			}
			continue
		}

		delta := n.Count - priorCount
		if delta <= 0 {
			// Deletions can move the count backwards; nothing new.
			recordSkipped("comment", "count_regressed")
			continue
		}

		byAuthor := comments[:0:0]
		for _, c := range comments {
			if c.Author.ID == n.Author.ID {
				byAuthor = append(byAuthor, c)
			}
		}
		if delta > len(byAuthor) {
			delta = len(byAuthor)
		}
		for _, c := range byAuthor[:delta] {
			if e.comments.Contains(c.ID) {
				continue
			}
			fresh = append([]*entity.Comment{c}, fresh...)
			e.comments.Put(c.ID, c)
		}
	}
	return fresh, nil
}
