//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Helpers for locating spotifyd and sending it MPRIS messages
// over D-Bus with dbus-send.
//

// Package mpris drives a local spotifyd daemon through its MPRIS D-Bus
// interface by shelling out to pgrep and dbus-send.
package mpris

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"
)

// ObjectPath is the MPRIS object every media player exports.
const ObjectPath = "/org/mpris/MediaPlayer2"

// ErrDaemonNotRunning is returned when pgrep finds no matching process.
var ErrDaemonNotRunning = errors.New("daemon not running")

// DecodeError is returned when a program writes output that is not UTF-8 text.
type DecodeError struct {
	Program string
	Output  []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s output is not valid UTF-8 (%d bytes)", e.Program, len(e.Output))
}

// FindDaemonPID returns the process id of the named daemon as reported by
// pgrep. When several processes match, the first is used.
func FindDaemonPID(ctx context.Context, r Runner, daemon string) (string, error) {
	out, err := r.Run(ctx, "pgrep", daemon)
	if err != nil {
		// pgrep exits 1 when nothing matched
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Code == 1 {
			return "", fmt.Errorf("%s: %w", daemon, ErrDaemonNotRunning)
		}
		return "", fmt.Errorf("failed to run pgrep: %w", err)
	}

	if !utf8.Valid(out) {
		return "", &DecodeError{Program: "pgrep", Output: out}
	}

	pids := strings.Fields(string(out))
	if len(pids) == 0 {
		return "", fmt.Errorf("%s: %w", daemon, ErrDaemonNotRunning)
	}
	if len(pids) > 1 {
		log.Printf("Warning: %d %s processes found, using pid %s", len(pids), daemon, pids[0])
	}

	return pids[0], nil
}

// InstanceURI returns the D-Bus bus name of the spotifyd instance with the given pid.
func InstanceURI(pid string) string {
	return "org.mpris.MediaPlayer2.spotifyd.instance" + pid
}

// PlayerMethodURI returns the fully qualified name of a Player interface method.
func PlayerMethodURI(method string) string {
	return "org.mpris.MediaPlayer2.Player." + method
}

// TargetURI returns a dbus-send string argument holding a spotify: URI.
func TargetURI(uri string) string {
	return "string:spotify:" + uri
}

// SendMessage calls methodURI on instance with dbus-send and returns the
// printed reply. An empty target sends the call without arguments.
func SendMessage(ctx context.Context, r Runner, instance, methodURI, target string) (string, error) {
	args := []string{"--print-reply", "--dest=" + instance, ObjectPath, methodURI}
	if target != "" {
		args = append(args, target)
	}

	out, err := r.Run(ctx, "dbus-send", args...)
	if err != nil {
		return "", fmt.Errorf("dbus-send failed for %s: %w", methodURI, err)
	}

	if !utf8.Valid(out) {
		return "", &DecodeError{Program: "dbus-send", Output: out}
	}

	return string(out), nil
}
