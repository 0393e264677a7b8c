// Package entity defines the typed domain records parsed from the raw
// Weverse API payloads, along with their validation rules and
// domain-specific errors. Records are immutable once constructed.
package entity

import "encoding/json"

// NotificationType identifies the kind of activity a feed notification
// refers to.
type NotificationType string

// Notification types surfaced by the activity feed.
const (
	TypePost              NotificationType = "post"
	TypeArtistPostComment NotificationType = "artist_post_comment"
	TypeUserPostComment   NotificationType = "user_post_comment"
	TypeMediaComment      NotificationType = "media_comment"
	TypeMomentComment     NotificationType = "moment_comment"
	TypeMoment            NotificationType = "moment"
	TypeLive              NotificationType = "live"
	TypeNotice            NotificationType = "notice"
	TypeMedia             NotificationType = "media"
	TypeBirthday          NotificationType = "birthday"
)

// IsComment reports whether the notification type refers to a comment
// event, i.e. one whose feed entry carries only a cumulative comment
// count rather than the comment itself.
func (t NotificationType) IsComment() bool {
	switch t {
	case TypeArtistPostComment, TypeUserPostComment, TypeMediaComment, TypeMomentComment:
		return true
	}
	return false
}

// Notification is a single entry of the activity feed. For comment
// types, Count carries the cumulative number of comments the platform
// has observed for the (post, author) pair.
type Notification struct {
	ID        int64
	Type      NotificationType
	CreatedAt int64 // epoch millis
	PostID    string
	Author    Member
	Count     int
	Community Community
}

type rawNotification struct {
	ActivityID  *int64        `json:"activityId"`
	MessageType string        `json:"messageType"`
	CreatedAt   int64         `json:"createdAt"`
	PostID      string        `json:"postId"`
	Author      *rawMember    `json:"author"`
	Count       int           `json:"count"`
	Community   *rawCommunity `json:"community"`
}

// ParseNotification builds a Notification from a raw feed entry.
// Entries without a resolvable community must be filtered out by the
// caller before parsing; a missing community here is a parse error.
func ParseNotification(data json.RawMessage) (*Notification, error) {
	var raw rawNotification
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Record: "notification", Field: "", Reason: err.Error()}
	}
	if raw.ActivityID == nil {
		return nil, missingField("notification", "activityId")
	}
	if raw.MessageType == "" {
		return nil, missingField("notification", "messageType")
	}
	if raw.Community == nil {
		return nil, missingField("notification", "community")
	}

	n := &Notification{
		ID:        *raw.ActivityID,
		Type:      NotificationType(raw.MessageType),
		CreatedAt: raw.CreatedAt,
		PostID:    raw.PostID,
		Count:     raw.Count,
		Community: raw.Community.entity(),
	}
	if raw.Author != nil {
		n.Author = raw.Author.entity()
	}
	return n, nil
}

// HasCommunity reports whether a raw feed entry carries a community
// reference. The feed mixes in platform-wide entries without one; the
// fetcher drops those before parsing.
func HasCommunity(data json.RawMessage) bool {
	var probe struct {
		Community *json.RawMessage `json:"community"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Community != nil
}
