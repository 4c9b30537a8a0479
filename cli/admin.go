// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all voters and votes (requires --admin-key)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)

			resp, err := rootOpts.client().Reset(cmd.Context())
			if err != nil {
				return out.Fail("reset", err)
			}

			return out.Success(resp, func(w io.Writer) {
				fmt.Fprintln(w, resp.Message)
			})
		},
	}
}
