package util

import (
	"fmt"
	"net/url"
	"strings"
)

// listingTags mark URLs that already point at a concrete video list.
var listingTags = []string{"/videos", "/streams", "/shorts", "/playlist", "/watch", "list="}

// channelKeys mark URLs that name a channel and need the /videos suffix to
// enumerate real uploads.
var channelKeys = []string{"/channel/", "/user/", "/c/", "/@"}

// NormalizeChannelURL rewrites a handle/channel/user URL so it points at the
// channel's uploads list. Bare handles ("@name") and scheme-less hosts are
// completed; URLs already naming a listing are returned unchanged.
func NormalizeChannelURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return u
	}
	if strings.HasPrefix(u, "@") {
		u = "https://www.youtube.com/" + u
	}
	if strings.HasPrefix(u, "youtube.com/") || strings.HasPrefix(u, "www.youtube.com/") {
		u = "https://" + u
	}
	lower := strings.TrimRight(strings.ToLower(u), "/")
	for _, tag := range listingTags {
		if strings.Contains(lower, tag) {
			return u
		}
	}
	for _, key := range channelKeys {
		if strings.Contains(lower, key) {
			return strings.TrimRight(u, "/") + "/videos"
		}
	}
	return u
}

// ValidateVideoURL checks that a pasted line parses as an absolute URL.
func ValidateVideoURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid URL %q", raw)
	}
	return nil
}

// SplitURLList splits pasted text into trimmed, non-empty URLs, one per line.
func SplitURLList(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls
}
