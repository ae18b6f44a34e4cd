//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: End-to-end tests for the command line entry point.
//

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudmanic/spotify-connect/mpris"
	"github.com/cloudmanic/spotify-connect/spotify"
)

const kitchenDevices = `{"devices":[{"id":"d1","is_active":true,"is_private_session":false,"is_restricted":false,"name":"Kitchen","type":"Speaker","volume_percent":50}]}`

// fakeRunner answers every program with the same output.
type fakeRunner struct {
	output []byte
	names  []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.names = append(f.names, name)
	return f.output, nil
}

// mockAPI serves the token and devices endpoints and counts device requests.
type mockAPI struct {
	server        *httptest.Server
	tokenStatus   int
	devicesBody   string
	deviceQueries atomic.Int32
}

func newMockAPI(t *testing.T, tokenStatus int, devicesBody string) *mockAPI {
	t.Helper()

	api := &mockAPI{tokenStatus: tokenStatus, devicesBody: devicesBody}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		if api.tokenStatus != http.StatusOK {
			w.WriteHeader(api.tokenStatus)
			fmt.Fprint(w, `{"error":"invalid_client"}`)
			return
		}
		fmt.Fprint(w, `{"access_token":"T","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v1/me/player/devices", func(w http.ResponseWriter, r *http.Request) {
		api.deviceQueries.Add(1)
		assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))
		fmt.Fprint(w, api.devicesBody)
	})

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)
	return api
}

// setupEnv points the configuration at api and returns a missing env file path.
func setupEnv(t *testing.T, api *mockAPI) string {
	t.Helper()

	t.Setenv("CLIENT_ID", "test-id")
	t.Setenv("CLIENT_SECRET", "test-secret")
	t.Setenv("SPOTIFY_DAEMON", "")
	if api != nil {
		t.Setenv("SPOTIFY_TOKEN_URL", api.server.URL+"/api/token")
		t.Setenv("SPOTIFY_API_URL", api.server.URL+"/v1/")
	}
	return filepath.Join(t.TempDir(), "missing.env")
}

// TestRun_ListsDevices tests the token → devices → print flow.
func TestRun_ListsDevices(t *testing.T) {
	api := newMockAPI(t, http.StatusOK, kitchenDevices)
	envFile := setupEnv(t, api)

	var out bytes.Buffer
	err := run(context.Background(), &out, []string{"--env-file", envFile}, &fakeRunner{})
	require.NoError(t, err)

	for _, want := range []string{"d1", "Kitchen", "Speaker", "50%", "Total devices: 1"} {
		assert.Contains(t, out.String(), want)
	}
	assert.Equal(t, int32(1), api.deviceQueries.Load())
}

// TestRun_JSON tests the raw JSON output.
func TestRun_JSON(t *testing.T) {
	api := newMockAPI(t, http.StatusOK, kitchenDevices)
	envFile := setupEnv(t, api)

	var out bytes.Buffer
	err := run(context.Background(), &out, []string{"--json", "--env-file", envFile}, &fakeRunner{})
	require.NoError(t, err)

	var devices spotify.Devices
	require.NoError(t, json.Unmarshal(out.Bytes(), &devices))
	require.Len(t, devices.Devices, 1)

	device := devices.Devices[0]
	assert.Equal(t, "d1", string(device.ID))
	assert.Equal(t, "Kitchen", device.Name)
	assert.Equal(t, "Speaker", device.Kind)
	assert.Equal(t, int16(50), device.VolumePercent)
}

// TestRun_TokenFailure tests that a token error is printed and devices are not queried.
func TestRun_TokenFailure(t *testing.T) {
	api := newMockAPI(t, http.StatusUnauthorized, kitchenDevices)
	envFile := setupEnv(t, api)

	var out bytes.Buffer
	err := run(context.Background(), &out, []string{"--env-file", envFile}, &fakeRunner{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "HTTP 401")
	assert.Contains(t, out.String(), "invalid_client")
	assert.Equal(t, int32(0), api.deviceQueries.Load())
}

// TestRun_DevicesDecodeFailure tests that a malformed device list is printed as an error.
func TestRun_DevicesDecodeFailure(t *testing.T) {
	api := newMockAPI(t, http.StatusOK, `{"devices":[{"id":"d1"}]}`)
	envFile := setupEnv(t, api)

	var out bytes.Buffer
	err := run(context.Background(), &out, []string{"--env-file", envFile}, &fakeRunner{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Invalid response")
	assert.NotContains(t, out.String(), "Total devices")
}

// TestRun_MissingCredentials tests that misconfiguration is returned to the caller.
func TestRun_MissingCredentials(t *testing.T) {
	envFile := setupEnv(t, nil)
	t.Setenv("CLIENT_SECRET", "")
	require.NoError(t, os.Unsetenv("CLIENT_SECRET"))

	var out bytes.Buffer
	err := run(context.Background(), &out, []string{"--env-file", envFile}, &fakeRunner{})

	var cfgErr *spotify.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "expected *spotify.ConfigError, got %T", err)
	assert.Empty(t, out.String())
}

// TestRun_Send tests that --send calls the local daemon instead of the Web API.
func TestRun_Send(t *testing.T) {
	api := newMockAPI(t, http.StatusOK, kitchenDevices)
	envFile := setupEnv(t, api)
	runner := &fakeRunner{output: []byte("1234\n")}

	var out bytes.Buffer
	err := run(context.Background(), &out, []string{"--env-file", envFile, "--send", "PlayPause"}, runner)
	require.NoError(t, err)

	assert.Equal(t, []string{"pgrep", "dbus-send"}, runner.names)
	assert.Equal(t, "1234\n", out.String())
	assert.Equal(t, int32(0), api.deviceQueries.Load())
}

// TestRun_SendNotRunning tests that a missing daemon is printed, not returned.
func TestRun_SendNotRunning(t *testing.T) {
	envFile := setupEnv(t, nil)

	var out bytes.Buffer
	err := run(context.Background(), &out, []string{"--env-file", envFile, "--send", "Next"}, &fakeRunner{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Not running")
	assert.Contains(t, out.String(), mpris.ErrDaemonNotRunning.Error())
}

// TestParseFlags tests flag validation.
func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--send", "OpenUri", "--uri", "track:abc", "--json"})
	require.NoError(t, err)
	assert.Equal(t, options{jsonOutput: true, send: "OpenUri", uri: "track:abc"}, opts)

	_, err = parseFlags([]string{"extra"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"--uri", "track:abc"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"--nope"})
	assert.Error(t, err)
}
