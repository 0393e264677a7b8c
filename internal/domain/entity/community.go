package entity

import "encoding/json"

// Community is a fan community on the platform. A zero ID is the
// platform's sentinel for global (non-community) notices.
type Community struct {
	ID           int64
	Name         string
	LogoImageURL string
	URLPath      string
}

type rawCommunity struct {
	CommunityID   int64  `json:"communityId"`
	CommunityName string `json:"communityName"`
	LogoImage     string `json:"logoImage"`
	URLPath       string `json:"urlPath"`
}

func (r *rawCommunity) entity() Community {
	return Community{
		ID:           r.CommunityID,
		Name:         r.CommunityName,
		LogoImageURL: r.LogoImage,
		URLPath:      r.URLPath,
	}
}

// ParseCommunity builds a Community from a raw community payload.
func ParseCommunity(data json.RawMessage) (*Community, error) {
	var raw rawCommunity
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Record: "community", Field: "", Reason: err.Error()}
	}
	if raw.CommunityID == 0 {
		return nil, missingField("community", "communityId")
	}
	c := raw.entity()
	return &c, nil
}
