//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Conversion of Spotify share links into URI suffixes.
//

package mpris

import "strings"

// NormalizeURI turns a Spotify share link or a full spotify: URI into the
// "<kind>:<id>" form expected by TargetURI. Any other input is returned as-is.
func NormalizeURI(input string) string {
	input = strings.TrimSpace(input)

	// A full URL like https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=xxx
	if _, rest, ok := strings.Cut(input, "open.spotify.com/"); ok {
		// Remove any query parameters or fragment
		rest, _, _ = strings.Cut(rest, "?")
		rest, _, _ = strings.Cut(rest, "#")

		parts := strings.Split(strings.Trim(rest, "/"), "/")
		// Localised links carry a leading intl-xx segment
		if len(parts) > 0 && strings.HasPrefix(parts[0], "intl-") {
			parts = parts[1:]
		}
		if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
			return parts[0] + ":" + parts[1]
		}
		return input
	}

	return strings.TrimPrefix(input, "spotify:")
}
