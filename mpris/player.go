//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Playback control of the local spotifyd daemon.
//

package mpris

import (
	"context"
	"fmt"
	"strings"
)

// Player sends MPRIS Player calls to a local daemon.
type Player struct {
	runner Runner
	daemon string
}

// NewPlayer returns a Player for the named daemon. A nil runner uses ExecRunner.
func NewPlayer(r Runner, daemon string) *Player {
	if r == nil {
		r = ExecRunner{}
	}
	return &Player{runner: r, daemon: daemon}
}

// Call invokes method on the daemon's Player interface and returns the
// dbus-send reply. When uri is not empty it is normalised and passed as the
// single string argument of the call.
func (p *Player) Call(ctx context.Context, method, uri string) (string, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return "", fmt.Errorf("no player method given")
	}

	// Find the running daemon
	pid, err := FindDaemonPID(ctx, p.runner, p.daemon)
	if err != nil {
		return "", fmt.Errorf("failed to find %s: %w", p.daemon, err)
	}

	target := ""
	if uri != "" {
		target = TargetURI(NormalizeURI(uri))
	}

	reply, err := SendMessage(ctx, p.runner, InstanceURI(pid), PlayerMethodURI(method), target)
	if err != nil {
		return "", fmt.Errorf("failed to call %s: %w", method, err)
	}

	return reply, nil
}
