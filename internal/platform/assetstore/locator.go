// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assetstore

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	// versionSegment matches Cloudinary's "v1712345678" path component.
	versionSegment = regexp.MustCompile(`^v\d+$`)

	// transformationSegment matches delivery parameters such as "q_auto" or
	// "w_300,h_200,c_fill".
	transformationSegment = regexp.MustCompile(`^[a-z]{1,3}_[^,/]+(,[a-z]{1,3}_[^,/]+)*$`)
)

// Locator recognises URLs served by the asset host.
//
// It is a best-effort heuristic: a URL is treated as hosted when it starts
// with BaseURL and has a "/image/upload/" or "/video/upload/" path. Anything
// else is reported as unknown, never as an error.
type Locator struct {
	// BaseURL is the delivery prefix, e.g. "https://res.cloudinary.com/joycdecor".
	// An empty BaseURL checks the path shape only.
	BaseURL string `json:"baseUrl"`
}

// Owns reports whether rawURL looks like an asset served by this host.
func (locator Locator) Owns(rawURL string) bool {
	_, ok := locator.Parse(rawURL)
	return ok
}

// Parse derives the asset identity from a hosted URL.
// The kind comes from the path segment before "upload"; the public id is the
// remainder of the path without leading transformation segments, the version
// segment or the file extension. Folders in the public id are kept.
func (locator Locator) Parse(rawURL string) (Asset, bool) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return Asset{}, false
	}

	if base := strings.TrimSuffix(locator.BaseURL, "/"); base != "" {
		if rawURL != base && !strings.HasPrefix(rawURL, base+"/") {
			return Asset{}, false
		}
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for index := 0; index+2 < len(segments); index++ {
		if segments[index+1] != "upload" {
			continue
		}

		kind, ok := ParseKind(segments[index])
		if !ok {
			continue
		}

		rest := stripDeliveryPrefix(segments[index+2:])

		publicID := strings.Join(rest, "/")
		publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
		if publicID == "" {
			return Asset{}, false
		}

		return Asset{URL: rawURL, Kind: kind, PublicID: publicID}, true
	}

	return Asset{}, false
}

// stripDeliveryPrefix drops transformation segments and the version segment
// that may precede the public id. The last segment is always kept.
func stripDeliveryPrefix(rest []string) []string {
	for len(rest) > 1 && transformationSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) > 1 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	return rest
}
