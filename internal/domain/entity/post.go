package entity

import (
	"encoding/json"
	"sort"
)

// Post is a regular text post with optional photo and video
// attachments.
type Post struct {
	ID          string
	Body        string
	PlainBody   string
	ShareURL    string
	PublishedAt int64 // epoch millis
	Author      Member
	Community   Community
	Photos      []Photo
	Videos      []Video
}

// rawPost is the shared shape of post-like payloads: posts, media,
// moments and lives all carry these fields, discriminated by the
// contents of the extension object.
type rawPost struct {
	PostID      string                     `json:"postId"`
	Title       string                     `json:"title"`
	Body        string                     `json:"body"`
	PlainBody   string                     `json:"plainBody"`
	ShareURL    string                     `json:"shareUrl"`
	PublishedAt int64                      `json:"publishedAt"`
	Author      *rawMember                 `json:"author"`
	Community   *rawCommunity              `json:"community"`
	Attachment  *rawAttachment             `json:"attachment"`
	Extension   map[string]json.RawMessage `json:"extension"`
}

type rawAttachment struct {
	Photo map[string]rawPhoto `json:"photo"`
	Video map[string]rawVideo `json:"video"`
}

// photos returns the photo attachments in a stable (id-sorted) order.
// The upstream payload keys them by id in an object, so map iteration
// order would otherwise leak into results.
func (r *rawAttachment) photos() []Photo {
	if r == nil || len(r.Photo) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.Photo))
	for id := range r.Photo {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Photo, 0, len(ids))
	for _, id := range ids {
		p := r.Photo[id]
		out = append(out, p.entity())
	}
	return out
}

func (r *rawAttachment) videos() []Video {
	if r == nil || len(r.Video) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.Video))
	for id := range r.Video {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Video, 0, len(ids))
	for _, id := range ids {
		v := r.Video[id]
		out = append(out, v.entity())
	}
	return out
}

func decodeRawPost(record string, data json.RawMessage) (*rawPost, error) {
	var raw rawPost
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Record: record, Field: "", Reason: err.Error()}
	}
	if raw.PostID == "" {
		return nil, missingField(record, "postId")
	}
	return &raw, nil
}

// ParsePost builds a Post from a raw post payload.
func ParsePost(data json.RawMessage) (*Post, error) {
	raw, err := decodeRawPost("post", data)
	if err != nil {
		return nil, err
	}
	p := &Post{
		ID:          raw.PostID,
		Body:        raw.Body,
		PlainBody:   raw.PlainBody,
		ShareURL:    raw.ShareURL,
		PublishedAt: raw.PublishedAt,
		Photos:      raw.Attachment.photos(),
		Videos:      raw.Attachment.videos(),
	}
	if raw.Author != nil {
		p.Author = raw.Author.entity()
	}
	if raw.Community != nil {
		p.Community = raw.Community.entity()
	}
	return p, nil
}
