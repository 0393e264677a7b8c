package entity

import "encoding/json"

// Comment is a single artist comment on a post. Identity is the
// platform-assigned string id.
type Comment struct {
	ID        string
	PostID    string
	Author    Member
	CreatedAt int64 // epoch millis
	Body      string
}

type rawComment struct {
	CommentID string     `json:"commentId"`
	PostID    string     `json:"postId"`
	Author    *rawMember `json:"author"`
	CreatedAt int64      `json:"createdAt"`
	Body      string     `json:"body"`
}

// ParseComment builds a Comment from a raw comment payload.
func ParseComment(data json.RawMessage) (*Comment, error) {
	var raw rawComment
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Record: "comment", Field: "", Reason: err.Error()}
	}
	if raw.CommentID == "" {
		return nil, missingField("comment", "commentId")
	}
	c := &Comment{
		ID:        raw.CommentID,
		PostID:    raw.PostID,
		CreatedAt: raw.CreatedAt,
		Body:      raw.Body,
	}
	if raw.Author != nil {
		c.Author = raw.Author.entity()
	}
	return c, nil
}
