package entity

import "encoding/json"

// Moment is the tagged union of moment payload variants. Moments
// created after the platform rework carry a "moment" extension with a
// video; older ones carry a "momentW1" extension with a photo or a
// stock background image.
type Moment interface {
	isMoment()
}

// MomentAttributes holds the fields shared by both moment variants.
type MomentAttributes struct {
	ID          string
	Body        string
	PlainBody   string
	ShareURL    string
	PublishedAt int64 // epoch millis
	ExpireAt    int64 // epoch millis
	Author      Member
	Community   Community
}

// VideoMoment is a moment created after the rework; it always carries
// a video.
type VideoMoment struct {
	MomentAttributes
	Video Video
}

// PhotoMoment is a pre-rework moment. Photo is nil when the moment
// uses a stock background image instead of an uploaded photo.
type PhotoMoment struct {
	MomentAttributes
	Photo              *Photo
	BackgroundImageURL string
}

func (VideoMoment) isMoment() {}
func (PhotoMoment) isMoment() {}

type rawMomentExtension struct {
	ExpireAt int64     `json:"expireAt"`
	Video    *rawVideo `json:"video"`
}

type rawOldMomentExtension struct {
	ExpireAt           int64     `json:"expireAt"`
	Photo              *rawPhoto `json:"photo"`
	BackgroundImageURL string    `json:"backgroundImageUrl"`
}

// ParseMoment builds the appropriate Moment variant from a raw moment
// payload, discriminating on the extension object.
func ParseMoment(data json.RawMessage) (Moment, error) {
	raw, err := decodeRawPost("moment", data)
	if err != nil {
		return nil, err
	}

	attrs := MomentAttributes{
		ID:          raw.PostID,
		Body:        raw.Body,
		PlainBody:   raw.PlainBody,
		ShareURL:    raw.ShareURL,
		PublishedAt: raw.PublishedAt,
	}
	if raw.Author != nil {
		attrs.Author = raw.Author.entity()
	}
	if raw.Community != nil {
		attrs.Community = raw.Community.entity()
	}

	if rawExt, ok := raw.Extension["moment"]; ok {
		var ext rawMomentExtension
		if err := json.Unmarshal(rawExt, &ext); err != nil {
			return nil, &ParseError{Record: "moment", Field: "extension.moment", Reason: err.Error()}
		}
		if ext.Video == nil {
			return nil, missingField("moment", "extension.moment.video")
		}
		attrs.ExpireAt = ext.ExpireAt
		return VideoMoment{MomentAttributes: attrs, Video: ext.Video.entity()}, nil
	}

	rawExt, ok := raw.Extension["momentW1"]
	if !ok {
		return nil, missingField("moment", "extension.moment|momentW1")
	}
	var ext rawOldMomentExtension
	if err := json.Unmarshal(rawExt, &ext); err != nil {
		return nil, &ParseError{Record: "moment", Field: "extension.momentW1", Reason: err.Error()}
	}
	attrs.ExpireAt = ext.ExpireAt
	m := PhotoMoment{MomentAttributes: attrs, BackgroundImageURL: ext.BackgroundImageURL}
	if ext.Photo != nil {
		p := ext.Photo.entity()
		m.Photo = &p
	}
	return m, nil
}
