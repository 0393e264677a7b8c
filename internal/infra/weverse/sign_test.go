package weverse

import (
	"strings"
	"testing"
)

func TestSignURL_Shape(t *testing.T) {
	path := "/noti/feed/v1.0/activities" + apiParameters
	signed := signURL(path, 1662440000000)

	if !strings.HasPrefix(signed, baseAPIURL+path) {
		t.Errorf("signed URL should start with the base URL and path: %s", signed)
	}
	if !strings.Contains(signed, "&wmsgpad=1662440000000&wmd=") {
		t.Errorf("signed URL missing epoch pad and digest: %s", signed)
	}
}

func TestSignURL_Deterministic(t *testing.T) {
	path := "/post/v1.0/post-2-106587283" + apiParameters

	a := signURL(path, 1662440000000)
	b := signURL(path, 1662440000000)
	if a != b {
		t.Error("same path and epoch must produce the same signature")
	}

	c := signURL(path, 1662440000001)
	if a == c {
		t.Error("different epochs must produce different signatures")
	}
}

func TestSignURL_TruncatesLongPaths(t *testing.T) {
	long := "/comment/v1.0/post-" + strings.Repeat("x", 300) + apiParameters
	signed := signURL(long, 1662440000000)

	// The full path is kept in the URL even though only the first 255
	// bytes participate in the digest.
	if !strings.Contains(signed, strings.Repeat("x", 300)) {
		t.Error("signed URL must carry the full path")
	}

	// A path differing only beyond the signed prefix yields the same
	// digest.
	other := "/comment/v1.0/post-" + strings.Repeat("x", 299) + "y" + apiParameters
	digest := signed[strings.LastIndex(signed, "&wmd="):]
	otherDigest := signURL(other, 1662440000000)
	if !strings.HasSuffix(otherDigest, digest) {
		t.Error("bytes beyond the signed prefix must not change the digest")
	}
}

func TestMessageDigest_URLSafe(t *testing.T) {
	digest := messageDigest([]byte("/noti/feed/v1.0/activities1662440000000"))

	for _, forbidden := range []string{"+", "/", " "} {
		if strings.Contains(digest, forbidden) {
			t.Errorf("digest %q contains unescaped %q", digest, forbidden)
		}
	}
}
