package weverse

import (
	"fmt"
	"time"
)

func currentEpochMillis() int64 {
	return time.Now().UnixMilli()
}

// Endpoint builders. Each returns a fully signed absolute URL; the
// signature embeds the current epoch so URLs are single-use and never
// cached.

func latestNotificationsURL() string {
	return signURL("/noti/feed/v1.0/activities"+apiParameters, currentEpochMillis())
}

// notificationURL addresses a single notification through the feed
// cursor: the feed page starting at id+1 has the wanted entry first.
func notificationURL(notificationID int64) string {
	path := fmt.Sprintf("/noti/feed/v1.0/activities%s&next=%d", apiParameters, notificationID+1)
	return signURL(path, currentEpochMillis())
}

func joinedCommunitiesURL() string {
	return signURL("/noti/feed/v1.0/activities/community"+apiParameters, currentEpochMillis())
}

func communityURL(communityID int64) string {
	path := fmt.Sprintf("/community/v1.0/community-%d%s&fieldSet=communityHomeV1", communityID, apiParameters)
	return signURL(path, currentEpochMillis())
}

func artistsURL(communityID int64) string {
	path := fmt.Sprintf("/member/v1.0/community-%d/artistMembers%s"+
		"&fieldSet=artistMembersV1&fields=communityId"+
		"%%2CjoinedDate%%2CprofileType%%2CprofileName%%2CprofileImageUrl"+
		"%%2CprofileCoverImageUrl%%2CprofileComment", communityID, apiParameters)
	return signURL(path, currentEpochMillis())
}

func postURL(postID string) string {
	path := fmt.Sprintf("/post/v1.0/post-%s%s&fieldSet=postV1", postID, apiParameters)
	return signURL(path, currentEpochMillis())
}

func videoDownloadURL(videoID string) string {
	path := fmt.Sprintf("/cvideo/v1.0/cvideo-%s/downloadInfo%s", videoID, apiParameters)
	return signURL(path, currentEpochMillis())
}

func noticeURL(noticeID int64) string {
	path := fmt.Sprintf("/notice/v1.0/notice-%d%s&fieldSet=noticeV1", noticeID, apiParameters)
	return signURL(path, currentEpochMillis())
}

func memberURL(memberID string) string {
	path := fmt.Sprintf("/member/v1.0/member-%s%s"+
		"&fields=memberId%%2CcommunityId%%2Cjoined%%2CjoinedDate%%2CprofileType"+
		"%%2CprofileName%%2CprofileImageUrl%%2CprofileCoverImageUrl%%2CprofileComment"+
		"%%2Chidden%%2Cblinded%%2CmemberJoinStatus%%2CfollowCount%%2ChasMembership"+
		"%%2ChasOfficialMark%%2CfirstJoinAt%%2Cfollowed%%2CartistOfficialProfile%%2CmyProfile",
		memberID, apiParameters)
	return signURL(path, currentEpochMillis())
}

func commentURL(commentID string) string {
	path := fmt.Sprintf("/comment/v1.0/comment-%s%s&fieldSet=commentV1", commentID, apiParameters)
	return signURL(path, currentEpochMillis())
}

func artistCommentsURL(postID string) string {
	path := fmt.Sprintf("/comment/v1.0/post-%s/artistComments%s&fieldSet=postArtistCommentsV1", postID, apiParameters)
	return signURL(path, currentEpochMillis())
}
