package entity

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedEntryJSON = `{
	"activityId": 3414875,
	"messageType": "artist_post_comment",
	"createdAt": 1662440000000,
	"postId": "2-106587283",
	"count": 7,
	"author": {
		"memberId": "c9e6114b4882c5074e65ecdd4c4cc278",
		"communityId": 14,
		"profileName": "Bahiyyih",
		"profileType": "ARTIST"
	},
	"community": {
		"communityId": 14,
		"communityName": "Kep1er",
		"logoImage": "https://cdn.example.com/logo.png",
		"urlPath": "kep1er"
	}
}`

func TestParseNotification(t *testing.T) {
	n, err := ParseNotification([]byte(feedEntryJSON))
	require.NoError(t, err)

	want := &Notification{
		ID:        3414875,
		Type:      TypeArtistPostComment,
		CreatedAt: 1662440000000,
		PostID:    "2-106587283",
		Count:     7,
		Author: Member{
			ID:          "c9e6114b4882c5074e65ecdd4c4cc278",
			CommunityID: 14,
			ProfileName: "Bahiyyih",
			ProfileType: "ARTIST",
		},
		Community: Community{
			ID:           14,
			Name:         "Kep1er",
			LogoImageURL: "https://cdn.example.com/logo.png",
			URLPath:      "kep1er",
		},
	}
	if diff := cmp.Diff(want, n); diff != "" {
		t.Errorf("notification mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNotification_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		field string
	}{
		{"no activity id", `{"messageType":"post","community":{"communityId":1}}`, "activityId"},
		{"no message type", `{"activityId":1,"community":{"communityId":1}}`, "messageType"},
		{"no community", `{"activityId":1,"messageType":"post"}`, "community"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNotification([]byte(tt.json))
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "notification", parseErr.Record)
			assert.Equal(t, tt.field, parseErr.Field)
		})
	}
}

func TestHasCommunity(t *testing.T) {
	assert.True(t, HasCommunity([]byte(`{"community":{"communityId":14}}`)))
	assert.False(t, HasCommunity([]byte(`{"activityId":1}`)))
	assert.False(t, HasCommunity([]byte(`{"community":null}`)))
	assert.False(t, HasCommunity([]byte(`not json`)))
}

func TestNotificationType_IsComment(t *testing.T) {
	comment := []NotificationType{
		TypeArtistPostComment, TypeUserPostComment, TypeMediaComment, TypeMomentComment,
	}
	plain := []NotificationType{
		TypePost, TypeMoment, TypeLive, TypeNotice, TypeMedia, TypeBirthday,
	}

	for _, typ := range comment {
		assert.True(t, typ.IsComment(), "%s should be a comment type", typ)
	}
	for _, typ := range plain {
		assert.False(t, typ.IsComment(), "%s should not be a comment type", typ)
	}
}

func TestParseComment(t *testing.T) {
	raw := `{
		"commentId": "1-2-3414875",
		"postId": "2-106587283",
		"createdAt": 1662440030000,
		"body": "hello",
		"author": {"memberId": "abc", "profileName": "Yujin"}
	}`

	c, err := ParseComment([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "1-2-3414875", c.ID)
	assert.Equal(t, "2-106587283", c.PostID)
	assert.Equal(t, int64(1662440030000), c.CreatedAt)
	assert.Equal(t, "Yujin", c.Author.ProfileName)

	_, err = ParseComment([]byte(`{"postId":"x"}`))
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "commentId", parseErr.Field)
}
