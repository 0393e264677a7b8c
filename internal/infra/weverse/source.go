package weverse

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"weverse-watcher/internal/domain/entity"
)

// Source fetches and decodes typed records from the Weverse API. It is
// the concrete feed source the stream engine polls.
type Source struct {
	client *Client
}

// NewSource wraps client in a typed Source.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// feedEnvelope is the paging wrapper the activities endpoints return.
type feedEnvelope struct {
	Data []json.RawMessage `json:"data"`
}

// LatestNotifications returns the newest feed page, newest first.
// Entries without a community payload are administrative records the
// feed interleaves with real notifications and are dropped here.
func (s *Source) LatestNotifications(ctx context.Context) ([]*entity.Notification, error) {
	var envelope feedEnvelope
	if err := s.client.getJSON(ctx, latestNotificationsURL(), &envelope); err != nil {
		return nil, err
	}

	notifications := make([]*entity.Notification, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		if !entity.HasCommunity(raw) {
			continue
		}
		notification, err := entity.ParseNotification(raw)
		if err != nil {
			return nil, fmt.Errorf("parse feed entry: %w", err)
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

// Notification fetches a single notification by id.
func (s *Source) Notification(ctx context.Context, notificationID int64) (*entity.Notification, error) {
	url := notificationURL(notificationID)

	var envelope feedEnvelope
	if err := s.client.getJSON(ctx, url, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Data) == 0 || !entity.HasCommunity(envelope.Data[0]) {
		return nil, fmt.Errorf("notification %d: %w", notificationID, entity.ErrNotFound)
	}
	return entity.ParseNotification(envelope.Data[0])
}

// ArtistComments returns the artist comments on a post, newest first.
func (s *Source) ArtistComments(ctx context.Context, postID string) ([]*entity.Comment, error) {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := s.client.getJSON(ctx, artistCommentsURL(postID), &envelope); err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		comment, err := entity.ParseComment(raw)
		if err != nil {
			return nil, fmt.Errorf("parse artist comment on post %s: %w", postID, err)
		}
		comments = append(comments, comment)
	}
	sortCommentsNewestFirst(comments)
	return comments, nil
}

// Comment fetches a single comment by id.
func (s *Source) Comment(ctx context.Context, commentID string) (*entity.Comment, error) {
	var raw json.RawMessage
	if err := s.client.getJSON(ctx, commentURL(commentID), &raw); err != nil {
		return nil, err
	}
	return entity.ParseComment(raw)
}

// Post fetches a text post by id.
func (s *Source) Post(ctx context.Context, postID string) (*entity.Post, error) {
	var raw json.RawMessage
	if err := s.client.getJSON(ctx, postURL(postID), &raw); err != nil {
		return nil, err
	}
	return entity.ParsePost(raw)
}

// Media fetches a media post by id. The concrete variant depends on
// the extension payload the API returns.
func (s *Source) Media(ctx context.Context, postID string) (entity.Media, error) {
	var raw json.RawMessage
	if err := s.client.getJSON(ctx, postURL(postID), &raw); err != nil {
		return nil, err
	}
	return entity.ParseMedia(raw)
}

// Moment fetches a moment post by id.
func (s *Source) Moment(ctx context.Context, postID string) (entity.Moment, error) {
	var raw json.RawMessage
	if err := s.client.getJSON(ctx, postURL(postID), &raw); err != nil {
		return nil, err
	}
	return entity.ParseMoment(raw)
}

// Live fetches a live broadcast post by id.
func (s *Source) Live(ctx context.Context, postID string) (*entity.Live, error) {
	var raw json.RawMessage
	if err := s.client.getJSON(ctx, postURL(postID), &raw); err != nil {
		return nil, err
	}
	return entity.ParseLive(raw)
}

// Notice fetches a notice by its string id as it appears in the feed.
// A response without a parent community marker means the notice was
// taken down between the feed fetch and this call.
func (s *Source) Notice(ctx context.Context, noticeID string) (*entity.Notice, error) {
	id, err := strconv.ParseInt(noticeID, 10, 64)
	if err != nil {
		return nil, &entity.ParseError{Record: "notice", Field: "noticeId", Reason: fmt.Sprintf("non-numeric id %q", noticeID)}
	}

	url := noticeURL(id)
	var raw map[string]json.RawMessage
	if err := s.client.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}
	if _, ok := raw["parentId"]; !ok {
		return nil, fmt.Errorf("notice %d: %w", id, entity.ErrNotFound)
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encode notice %d: %w", id, err)
	}
	return entity.ParseNotice(encoded)
}

// Member fetches a community member profile by id.
func (s *Source) Member(ctx context.Context, memberID string) (*entity.Member, error) {
	var raw json.RawMessage
	if err := s.client.getJSON(ctx, memberURL(memberID), &raw); err != nil {
		return nil, err
	}
	return entity.ParseMember(raw)
}

// Community fetches a community by id.
func (s *Source) Community(ctx context.Context, communityID int64) (*entity.Community, error) {
	var raw json.RawMessage
	if err := s.client.getJSON(ctx, communityURL(communityID), &raw); err != nil {
		return nil, err
	}
	return entity.ParseCommunity(raw)
}

// JoinedCommunities returns the communities the signed-in account has
// joined. Only notifications from these communities appear in the feed.
func (s *Source) JoinedCommunities(ctx context.Context) ([]*entity.Community, error) {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := s.client.getJSON(ctx, joinedCommunitiesURL(), &envelope); err != nil {
		return nil, err
	}

	communities := make([]*entity.Community, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		community, err := entity.ParseCommunity(raw)
		if err != nil {
			return nil, fmt.Errorf("parse joined community: %w", err)
		}
		communities = append(communities, community)
	}
	return communities, nil
}

// Artists returns the artist members of a community.
func (s *Source) Artists(ctx context.Context, communityID int64) ([]*entity.Artist, error) {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := s.client.getJSON(ctx, artistsURL(communityID), &envelope); err != nil {
		return nil, err
	}

	artists := make([]*entity.Artist, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		artist, err := entity.ParseArtist(raw)
		if err != nil {
			return nil, fmt.Errorf("parse artist of community %d: %w", communityID, err)
		}
		artists = append(artists, artist)
	}
	return artists, nil
}

// VideoURL resolves the direct playback URL of a post video at its
// highest available resolution.
func (s *Source) VideoURL(ctx context.Context, videoID string) (string, error) {
	var download struct {
		Downloads []struct {
			Resolution string `json:"resolution"`
			URL        string `json:"url"`
		} `json:"downloadInfo"`
	}
	if err := s.client.getJSON(ctx, videoDownloadURL(videoID), &download); err != nil {
		return "", err
	}
	if len(download.Downloads) == 0 {
		return "", fmt.Errorf("video %s has no playable renditions: %w", videoID, entity.ErrNotFound)
	}

	// Resolutions come back as strings like "480P" and "1080P".
	best := download.Downloads[0]
	bestHeight := resolutionHeight(best.Resolution)
	for _, candidate := range download.Downloads[1:] {
		if h := resolutionHeight(candidate.Resolution); h > bestHeight {
			best, bestHeight = candidate, h
		}
	}
	return best.URL, nil
}

func resolutionHeight(resolution string) int {
	digits := make([]rune, 0, len(resolution))
	for _, r := range resolution {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	height, _ := strconv.Atoi(string(digits))
	return height
}

// sortCommentsNewestFirst orders comments by descending creation time.
// The API already returns this order; this guards reconstruction
// against upstream regressions.
func sortCommentsNewestFirst(comments []*entity.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt > comments[j].CreatedAt
	})
}
