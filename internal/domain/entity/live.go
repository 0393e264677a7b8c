package entity

import "encoding/json"

// Live is a live broadcast. It shares the video media shape;
// MessageCount is nil when the broadcast carries no chat.
type Live struct {
	MediaAttributes
	Video        VideoInfo
	MessageCount *int64
}

// ParseLive builds a Live from a raw live-broadcast payload.
func ParseLive(data json.RawMessage) (*Live, error) {
	raw, err := decodeRawPost("live", data)
	if err != nil {
		return nil, err
	}
	attrs, err := raw.mediaAttributes("live")
	if err != nil {
		return nil, err
	}

	rawExt, ok := raw.Extension["video"]
	if !ok {
		return nil, missingField("live", "extension.video")
	}
	var ext rawVideoExtension
	if err := json.Unmarshal(rawExt, &ext); err != nil {
		return nil, &ParseError{Record: "live", Field: "extension.video", Reason: err.Error()}
	}

	live := &Live{MediaAttributes: attrs, Video: ext.info()}

	var info rawMediaInfo
	if err := json.Unmarshal(raw.Extension["mediaInfo"], &info); err == nil && info.Chat != nil {
		count := info.Chat.MessageCount
		live.MessageCount = &count
	}
	return live, nil
}
