package entity

// Photo is an image attachment on a post, moment or notice.
type Photo struct {
	ID     string
	URL    string
	Width  int
	Height int
}

// Video is a video attachment on a post or moment.
type Video struct {
	ID       string
	URL      string
	Width    int
	Height   int
	PlayTime int // seconds
}

type rawPhoto struct {
	PhotoID string `json:"photoId"`
	URL     string `json:"url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

func (r *rawPhoto) entity() Photo {
	return Photo{ID: r.PhotoID, URL: r.URL, Width: r.Width, Height: r.Height}
}

type rawVideo struct {
	VideoID  string `json:"videoId"`
	VideoURL string `json:"videoUrl"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	PlayTime int    `json:"playTime"`
}

func (r *rawVideo) entity() Video {
	return Video{ID: r.VideoID, URL: r.VideoURL, Width: r.Width, Height: r.Height, PlayTime: r.PlayTime}
}
