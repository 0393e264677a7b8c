package entity

import "encoding/json"

// Member is a community member, either a fan or an artist profile.
type Member struct {
	ID              string
	CommunityID     int64
	ProfileName     string
	ProfileType     string
	ProfileImageURL string
	ProfileComment  string
}

// Artist is a member with an official artist profile.
type Artist struct {
	Member
	JoinedAt        string
	HasOfficialMark bool
}

type rawMember struct {
	MemberID        string `json:"memberId"`
	CommunityID     int64  `json:"communityId"`
	ProfileName     string `json:"profileName"`
	ProfileType     string `json:"profileType"`
	ProfileImageURL string `json:"profileImageUrl"`
	ProfileComment  string `json:"profileComment"`
	JoinedDate      string `json:"joinedDate"`
	HasOfficialMark bool   `json:"hasOfficialMark"`
}

func (r *rawMember) entity() Member {
	return Member{
		ID:              r.MemberID,
		CommunityID:     r.CommunityID,
		ProfileName:     r.ProfileName,
		ProfileType:     r.ProfileType,
		ProfileImageURL: r.ProfileImageURL,
		ProfileComment:  r.ProfileComment,
	}
}

// ParseMember builds a Member from a raw member payload.
func ParseMember(data json.RawMessage) (*Member, error) {
	var raw rawMember
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Record: "member", Field: "", Reason: err.Error()}
	}
	if raw.MemberID == "" {
		return nil, missingField("member", "memberId")
	}
	m := raw.entity()
	return &m, nil
}

// ParseArtist builds an Artist from a raw artist-member payload.
func ParseArtist(data json.RawMessage) (*Artist, error) {
	var raw rawMember
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Record: "artist", Field: "", Reason: err.Error()}
	}
	if raw.MemberID == "" {
		return nil, missingField("artist", "memberId")
	}
	return &Artist{
		Member:          raw.entity(),
		JoinedAt:        raw.JoinedDate,
		HasOfficialMark: raw.HasOfficialMark,
	}, nil
}
