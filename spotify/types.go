//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Type definitions for the Spotify Web API responses.
//

package spotify

import (
	"encoding/json"
	"fmt"

	spotifyLib "github.com/zmb3/spotify/v2"
)

// AuthToken is the response of the accounts service token endpoint.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int32  `json:"expires_in"`
}

// UnmarshalJSON rejects token responses with missing or null fields.
func (t *AuthToken) UnmarshalJSON(data []byte) error {
	var raw struct {
		AccessToken *string `json:"access_token"`
		TokenType   *string `json:"token_type"`
		ExpiresIn   *int32  `json:"expires_in"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.AccessToken == nil:
		return missingField("access_token")
	case raw.TokenType == nil:
		return missingField("token_type")
	case raw.ExpiresIn == nil:
		return missingField("expires_in")
	}

	*t = AuthToken{
		AccessToken: *raw.AccessToken,
		TokenType:   *raw.TokenType,
		ExpiresIn:   *raw.ExpiresIn,
	}
	return nil
}

// Device is a Spotify Connect playback device.
type Device struct {
	ID               spotifyLib.ID `json:"id"`
	IsActive         bool          `json:"is_active"`
	IsPrivateSession bool          `json:"is_private_session"`
	IsRestricted     bool          `json:"is_restricted"`
	Name             string        `json:"name"`
	Kind             string        `json:"type"`
	VolumePercent    int16         `json:"volume_percent"`
}

// UnmarshalJSON rejects device objects with missing or null fields.
func (d *Device) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID               *spotifyLib.ID `json:"id"`
		IsActive         *bool          `json:"is_active"`
		IsPrivateSession *bool          `json:"is_private_session"`
		IsRestricted     *bool          `json:"is_restricted"`
		Name             *string        `json:"name"`
		Kind             *string        `json:"type"`
		VolumePercent    *int16         `json:"volume_percent"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.ID == nil:
		return missingField("id")
	case raw.IsActive == nil:
		return missingField("is_active")
	case raw.IsPrivateSession == nil:
		return missingField("is_private_session")
	case raw.IsRestricted == nil:
		return missingField("is_restricted")
	case raw.Name == nil:
		return missingField("name")
	case raw.Kind == nil:
		return missingField("type")
	case raw.VolumePercent == nil:
		return missingField("volume_percent")
	}

	*d = Device{
		ID:               *raw.ID,
		IsActive:         *raw.IsActive,
		IsPrivateSession: *raw.IsPrivateSession,
		IsRestricted:     *raw.IsRestricted,
		Name:             *raw.Name,
		Kind:             *raw.Kind,
		VolumePercent:    *raw.VolumePercent,
	}
	return nil
}

// Devices is the response of the player devices endpoint.
type Devices struct {
	Devices []Device `json:"devices"`
}

// UnmarshalJSON requires the devices array to be present.
func (d *Devices) UnmarshalJSON(data []byte) error {
	var raw struct {
		Devices *[]Device `json:"devices"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Devices == nil || *raw.Devices == nil {
		return missingField("devices")
	}

	d.Devices = *raw.Devices
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}
