//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Client-credentials authentication against the accounts service.
//

package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// FetchToken requests an app access token using the client-credentials grant.
// The result is not cached; every call hits the token endpoint.
func (c *Client) FetchToken(ctx context.Context) (*AuthToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var token AuthToken
	if err := c.do(c.httpClient, req, "fetch token", &token); err != nil {
		return nil, err
	}

	return &token, nil
}
