// Package weverse implements the Resource Fetcher collaborator for the
// Weverse API: signed request URLs, bearer-credential authentication,
// an HTTP client with a typed error taxonomy, and decoding of raw JSON
// payloads into domain records.
package weverse

import (
	"crypto/hmac"
	"crypto/sha1" // #nosec G505 -- the upstream API mandates HMAC-SHA1 request signatures.
	"encoding/base64"
	"fmt"
	"net/url"
)

const (
	signingKey    = "1b9cb6378d959b45714bec49971ade22e6e24e42"
	apiParameters = "?appId=be4d79eb8fc7bd008ee82c8ec4ff6fd4&language=en&platform=WEB&wpf=pc"

	// signedPathLimit bounds how much of the path participates in the
	// digest; the upstream signs at most this many bytes.
	signedPathLimit = 255
)

// baseAPIURL is a variable so tests can point the source at a local
// server.
var baseAPIURL = "https://global.apis.naver.com/weverse/wevweb"

// messageDigest computes the URL-safe request signature for message.
func messageDigest(message []byte) string {
	mac := hmac.New(sha1.New, []byte(signingKey))
	mac.Write(message)
	digest := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return url.QueryEscape(digest)
}

// signURL turns an API path (including its query parameters) into the
// absolute signed URL the upstream accepts. The signature covers the
// truncated path concatenated with the epoch-millisecond pad, which is
// echoed as the wmsgpad parameter.
func signURL(path string, epochMillis int64) string {
	indexed := path
	if len(indexed) > signedPathLimit {
		indexed = indexed[:signedPathLimit]
	}

	message := fmt.Sprintf("%s%d", indexed, epochMillis)
	digest := messageDigest([]byte(message))
	return fmt.Sprintf("%s%s&wmsgpad=%d&wmd=%s", baseAPIURL, path, epochMillis, digest)
}
