// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			_, _ = fmt.Fprintf(w, "version:    %s\n", version)
			if info, ok := debug.ReadBuildInfo(); ok {
				_, _ = fmt.Fprintf(w, "go:         %s\n", info.GoVersion)
				for _, s := range info.Settings {
					if s.Key == "vcs.revision" {
						_, _ = fmt.Fprintf(w, "commit:     %s\n", s.Value)
					}
				}
			}
			return nil
		},
	}
}
