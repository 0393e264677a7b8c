package stream

import "weverse-watcher/internal/domain/entity"

// countKey identifies the comment-count cache entry for a
// notification: one slot per post and commenting artist.
func countKey(n *entity.Notification) string {
	return n.PostID + n.Author.ID
}

// classify partitions a fetched feed page into plain notifications and
// comment-bearing ones, caching each entry as it goes. Plain
// notifications land in the notification cache keyed by id;
// comment-bearing ones record their current count in the count cache.
// Feed order is preserved in both partitions.
func (e *Engine) classify(feed []*entity.Notification) (plain, commentful []*entity.Notification) {
	for _, n := range feed {
		if n.Type.IsComment() {
			e.commentCounts.Put(countKey(n), n.Count)
			commentful = append(commentful, n)
		} else {
			e.notifications.Put(n.ID, n)
			plain = append(plain, n)
		}
	}
	return plain, commentful
}
