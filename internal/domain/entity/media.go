package entity

import "encoding/json"

// Media is the tagged union of media payload variants. The raw payload
// is discriminated by its extension object: an "image" extension yields
// an ImageMedia, a "video" extension a VideoMedia, and a "youtube"
// extension a YoutubeMedia.
type Media interface {
	isMedia()
}

// MediaAttributes holds the fields shared by all media variants.
type MediaAttributes struct {
	ID           string
	Title        string
	Body         string
	PlainBody    string
	ShareURL     string
	PublishedAt  int64 // epoch millis
	ThumbnailURL string
	Author       Member
	Community    Community
}

// ImageMedia is a media entry that contains a set of photos.
type ImageMedia struct {
	MediaAttributes
	Photos []Photo
}

// VideoMedia is a media entry backed by a platform-hosted video.
type VideoMedia struct {
	MediaAttributes
	Video VideoInfo
}

// YoutubeMedia is a media entry that embeds a YouTube video.
type YoutubeMedia struct {
	MediaAttributes
	Duration          int // seconds
	YoutubeURL        string
	ScreenOrientation string
}

func (ImageMedia) isMedia()   {}
func (VideoMedia) isMedia()   {}
func (YoutubeMedia) isMedia() {}

// VideoInfo describes a platform-hosted video. InternalVideoID and
// Duration are absent while a live broadcast has not yet been converted
// into a VOD.
type VideoInfo struct {
	VideoID           int64
	InternalVideoID   string
	Type              string
	AiredAt           int64 // epoch millis
	Paid              bool
	MembershipOnly    bool
	ScreenOrientation string
	PlayCount         int64
	LikeCount         int64
	Duration          *int // seconds, nil while still broadcasting
}

type rawImageExtension struct {
	Photos []rawPhoto `json:"photos"`
}

type rawVideoExtension struct {
	VideoID           int64  `json:"videoId"`
	InternalVideoID   string `json:"infraVideoId"`
	Type              string `json:"type"`
	OnAirStartAt      int64  `json:"onAirStartAt"`
	Paid              bool   `json:"paid"`
	MembershipOnly    bool   `json:"membershipOnly"`
	ScreenOrientation string `json:"screenOrientation"`
	PlayCount         int64  `json:"playCount"`
	LikeCount         int64  `json:"likeCount"`
	PlayTime          *int   `json:"playTime"`
}

func (r *rawVideoExtension) info() VideoInfo {
	return VideoInfo{
		VideoID:           r.VideoID,
		InternalVideoID:   r.InternalVideoID,
		Type:              r.Type,
		AiredAt:           r.OnAirStartAt,
		Paid:              r.Paid,
		MembershipOnly:    r.MembershipOnly,
		ScreenOrientation: r.ScreenOrientation,
		PlayCount:         r.PlayCount,
		LikeCount:         r.LikeCount,
		Duration:          r.PlayTime,
	}
}

type rawYoutubeExtension struct {
	PlayTime          int    `json:"playTime"`
	VideoPath         string `json:"videoPath"`
	ScreenOrientation string `json:"screenOrientation"`
}

type rawMediaInfo struct {
	Thumbnail struct {
		URL string `json:"url"`
	} `json:"thumbnail"`
	Chat *struct {
		MessageCount int64 `json:"messageCount"`
	} `json:"chat"`
}

func (r *rawPost) mediaAttributes(record string) (MediaAttributes, error) {
	attrs := MediaAttributes{
		ID:          r.PostID,
		Title:       r.Title,
		Body:        r.Body,
		PlainBody:   r.PlainBody,
		ShareURL:    r.ShareURL,
		PublishedAt: r.PublishedAt,
	}
	if r.Author != nil {
		attrs.Author = r.Author.entity()
	}
	if r.Community != nil {
		attrs.Community = r.Community.entity()
	}

	rawInfo, ok := r.Extension["mediaInfo"]
	if !ok {
		return attrs, missingField(record, "extension.mediaInfo")
	}
	var info rawMediaInfo
	if err := json.Unmarshal(rawInfo, &info); err != nil {
		return attrs, &ParseError{Record: record, Field: "extension.mediaInfo", Reason: err.Error()}
	}
	attrs.ThumbnailURL = info.Thumbnail.URL
	return attrs, nil
}

// ParseMedia builds the appropriate Media variant from a raw media
// payload, discriminating on the extension object.
func ParseMedia(data json.RawMessage) (Media, error) {
	raw, err := decodeRawPost("media", data)
	if err != nil {
		return nil, err
	}
	attrs, err := raw.mediaAttributes("media")
	if err != nil {
		return nil, err
	}

	if rawExt, ok := raw.Extension["image"]; ok {
		var ext rawImageExtension
		if err := json.Unmarshal(rawExt, &ext); err != nil {
			return nil, &ParseError{Record: "media", Field: "extension.image", Reason: err.Error()}
		}
		photos := make([]Photo, 0, len(ext.Photos))
		for _, p := range ext.Photos {
			photos = append(photos, p.entity())
		}
		return ImageMedia{MediaAttributes: attrs, Photos: photos}, nil
	}

	if rawExt, ok := raw.Extension["video"]; ok {
		var ext rawVideoExtension
		if err := json.Unmarshal(rawExt, &ext); err != nil {
			return nil, &ParseError{Record: "media", Field: "extension.video", Reason: err.Error()}
		}
		return VideoMedia{MediaAttributes: attrs, Video: ext.info()}, nil
	}

	rawExt, ok := raw.Extension["youtube"]
	if !ok {
		return nil, missingField("media", "extension.image|video|youtube")
	}
	var ext rawYoutubeExtension
	if err := json.Unmarshal(rawExt, &ext); err != nil {
		return nil, &ParseError{Record: "media", Field: "extension.youtube", Reason: err.Error()}
	}
	return YoutubeMedia{
		MediaAttributes:   attrs,
		Duration:          ext.PlayTime,
		YoutubeURL:        ext.VideoPath,
		ScreenOrientation: ext.ScreenOrientation,
	}, nil
}
