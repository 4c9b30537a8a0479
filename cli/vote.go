// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/printvote/models"
)

// VoteOptions holds flags for the vote command.
type VoteOptions struct {
	*RootOptions
	Credential string
}

// NewVoteCommand creates the vote command.
func NewVoteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VoteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "vote <voter-id> <candidate-id>",
		Short: "Scan, verify and cast a vote in one step",
		Long: `Cast a vote for an enrolled voter.

Without --credential the simulated reader is scanned first; with it, the
given credential is verified as-is (a wrong one is rejected).

Example:
  printvotectl vote V001 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidateID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid candidate id %q: must be a number", args[1])
			}
			return castVote(cmd, opts, args[0], candidateID)
		},
	}

	cmd.Flags().StringVar(&opts.Credential, "credential", "", "credential to verify instead of scanning")

	return cmd
}

func castVote(cmd *cobra.Command, opts *VoteOptions, voterID string, candidateID int) error {
	out := opts.formatter(cmd)
	c := opts.client()
	ctx := cmd.Context()

	credential := opts.Credential
	if credential == "" {
		out.VerboseLog("scanning fingerprint for %s", voterID)
		scan, err := c.Scan(ctx, voterID)
		if err != nil {
			return out.Fail("scan", err)
		}
		credential = scan.Credential
	}

	out.VerboseLog("verifying %s", voterID)
	verified, err := c.Verify(ctx, voterID, credential)
	if err != nil {
		return out.Fail("verify", err)
	}

	out.VerboseLog("casting vote for candidate %d", candidateID)
	receipt, err := c.CastVote(ctx, voterID, verified.Authorization, candidateID)
	if err != nil {
		return out.Fail("vote", err)
	}

	return out.Success(receipt, func(w io.Writer) {
		writeReceipt(w, receipt)
	})
}

func writeReceipt(w io.Writer, r models.VoteReceipt) {
	fmt.Fprintln(w, r.Message)
	fmt.Fprintf(w, "Receipt: %s\n", r.VoteID)
}
