//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Spotify Connect device lister. This application obtains an
// app token with the client-credentials grant and lists the playback
// devices visible to it. It can also send MPRIS calls to a local spotifyd.
//

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/cloudmanic/spotify-connect/mpris"
	"github.com/cloudmanic/spotify-connect/spotify"
)

// options holds the parsed command line flags.
type options struct {
	jsonOutput bool
	envFile    string
	send       string
	uri        string
}

// main is the entry point for the application.
func main() {
	ctx := context.Background()

	err := run(ctx, os.Stdout, os.Args[1:], mpris.ExecRunner{})
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
}

// run parses args, loads the configuration and executes the requested
// action. Only configuration and usage errors are returned; request
// failures are printed to out.
func run(ctx context.Context, out io.Writer, args []string, runner mpris.Runner) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}

	cfg, err := spotify.LoadConfig(envFiles...)
	if err != nil {
		return err
	}

	// Send a D-Bus call to the local daemon instead of listing devices
	if opts.send != "" {
		player := mpris.NewPlayer(runner, cfg.Daemon)
		reply, err := player.Call(ctx, opts.send, opts.uri)
		if err != nil {
			printError(out, err)
			return nil
		}
		fmt.Fprint(out, reply)
		return nil
	}

	client := spotify.NewClient(cfg)

	token, err := client.FetchToken(ctx)
	if err != nil {
		printError(out, err)
		return nil
	}

	devices, err := client.FetchDevices(ctx, token.AccessToken)
	if err != nil {
		printError(out, err)
		return nil
	}

	if opts.jsonOutput {
		if err := spotify.PrintDevicesJSON(out, devices); err != nil {
			log.Printf("Warning: %v", err)
		}
		return nil
	}

	spotify.PrintDevicesTable(out, devices.Devices)
	return nil
}

// parseFlags parses the command line into options.
func parseFlags(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("spotify-connect", pflag.ContinueOnError)
	fs.BoolVar(&opts.jsonOutput, "json", false, "Print the device list as raw JSON")
	fs.StringVar(&opts.envFile, "env-file", "", "Load environment variables from this file instead of .env")
	fs.StringVar(&opts.send, "send", "", "Call this MPRIS Player method on the local spotifyd (e.g. PlayPause)")
	fs.StringVar(&opts.uri, "uri", "", "Spotify URI or share link passed to the --send method")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.uri != "" && opts.send == "" {
		return options{}, errors.New("--uri requires --send")
	}

	return opts, nil
}

// printError writes err to out, tagging it with the kind of failure.
func printError(out io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)

	var (
		netErr    *spotify.NetworkError
		statusErr *spotify.StatusError
		decodeErr *spotify.DecodeError
	)

	kind := "Error"
	switch {
	case errors.As(err, &netErr):
		kind = "Network error"
	case errors.As(err, &statusErr):
		kind = fmt.Sprintf("HTTP %d", statusErr.StatusCode)
	case errors.As(err, &decodeErr):
		kind = "Invalid response"
	case errors.Is(err, mpris.ErrDaemonNotRunning):
		kind = "Not running"
	}

	red.Fprintf(out, "%s: ", kind)
	fmt.Fprintf(out, "%v\n", err)
}
