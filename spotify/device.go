//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Device listing and display functions.
//

package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/oauth2"
)

// FetchDevices lists the Spotify Connect devices visible to accessToken.
// The token is sent as-is; it is not checked for expiry.
func (c *Client) FetchDevices(ctx context.Context, accessToken string) (*Devices, error) {
	endpoint := c.cfg.APIURL + "me/player/devices"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build devices request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// oauth2 sets the Authorization: Bearer header on every request
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	hc := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient), ts)

	var devices Devices
	if err := c.do(hc, req, "fetch devices", &devices); err != nil {
		return nil, err
	}

	return &devices, nil
}

// PrintDevicesTable displays the devices in a formatted table
// with colors to indicate active status.
func PrintDevicesTable(w io.Writer, devices []Device) {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "🎵 Available Spotify Connect Devices")
	fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Name", "Type", "Volume", "Status", "Device ID"})

	for i, device := range devices {
		t.AppendRow(table.Row{
			i + 1,
			color.New(color.Bold).Sprint(device.Name),
			device.Kind,
			fmt.Sprintf("%d%%", device.VolumePercent),
			deviceStatus(device),
			color.HiBlackString(string(device.ID)),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintln(w)
	green.Fprintf(w, "Total devices: %d\n", len(devices))
}

// PrintDevicesJSON writes the devices as indented JSON.
func PrintDevicesJSON(w io.Writer, devices *Devices) error {
	rawJSON, err := json.MarshalIndent(devices, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal devices: %w", err)
	}

	_, err = fmt.Fprintln(w, string(rawJSON))
	return err
}

func deviceStatus(d Device) string {
	status := []string{"Inactive"}
	if d.IsActive {
		status[0] = color.GreenString("● Active")
	}
	if d.IsPrivateSession {
		status = append(status, "Private")
	}
	if d.IsRestricted {
		status = append(status, color.YellowString("Restricted"))
	}
	return strings.Join(status, ", ")
}
