package entity

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// Notice is an announcement published to a community, or globally when
// CommunityID is zero.
type Notice struct {
	ID               int64
	Title            string
	Body             string
	PlainBody        string
	ShareURL         string
	NoticeType       string
	ExposedStatus    string
	Exposed          bool
	Published        bool
	HiddenFromArtist bool
	MembershipOnly   bool
	Pinned           bool
	PublishedAt      int64 // epoch millis
	CommunityID      int64
	Photos           []Photo
}

type rawNotice struct {
	NoticeID       *int64         `json:"noticeId"`
	Title          string         `json:"title"`
	Body           string         `json:"body"`
	PlainBody      string         `json:"plainBody"`
	ShareURL       string         `json:"shareUrl"`
	NoticeType     string         `json:"noticeType"`
	ExposedStatus  string         `json:"exposedStatus"`
	Exposed        bool           `json:"exposed"`
	Published      bool           `json:"published"`
	HideFromArtist bool           `json:"hideFromArtist"`
	MembershipOnly bool           `json:"membershipOnly"`
	Pinned         bool           `json:"pinned"`
	PublishAt      int64          `json:"publishAt"`
	ParentID       string         `json:"parentId"`
	Attachment     *rawAttachment `json:"attachment"`
}

// noticeParentPattern extracts the numeric community id out of the
// notice's parent reference (e.g. "community-14" -> 14).
var noticeParentPattern = regexp.MustCompile(`(\d+)`)

// ParseNotice builds a Notice from a raw notice payload. Payloads
// without a parent reference do not describe a notice and fail with a
// parse error.
func ParseNotice(data json.RawMessage) (*Notice, error) {
	var raw rawNotice
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Record: "notice", Field: "", Reason: err.Error()}
	}
	if raw.NoticeID == nil {
		return nil, missingField("notice", "noticeId")
	}
	if raw.ParentID == "" {
		return nil, missingField("notice", "parentId")
	}

	var communityID int64
	if m := noticeParentPattern.FindString(raw.ParentID); m != "" {
		communityID, _ = strconv.ParseInt(m, 10, 64)
	}

	return &Notice{
		ID:               *raw.NoticeID,
		Title:            raw.Title,
		Body:             raw.Body,
		PlainBody:        raw.PlainBody,
		ShareURL:         raw.ShareURL,
		NoticeType:       raw.NoticeType,
		ExposedStatus:    raw.ExposedStatus,
		Exposed:          raw.Exposed,
		Published:        raw.Published,
		HiddenFromArtist: raw.HideFromArtist,
		MembershipOnly:   raw.MembershipOnly,
		Pinned:           raw.Pinned,
		PublishedAt:      raw.PublishAt,
		CommunityID:      communityID,
		Photos:           raw.Attachment.photos(),
	}, nil
}
