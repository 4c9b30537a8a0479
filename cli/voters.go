// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/printvote/models"
)

// EnrollOptions holds flags for the enroll command.
type EnrollOptions struct {
	*RootOptions
	Age int
}

// NewEnrollCommand creates the enroll command.
func NewEnrollCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EnrollOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "enroll <voter-id> <name>",
		Short: "Enroll a voter and print their credential",
		Long: `Enroll a voter. The server returns the simulated fingerprint credential
the voter presents at verification.

Example:
  printvotectl enroll V001 "Alice Johnson" --age 34`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)

			resp, err := opts.client().Enroll(cmd.Context(), args[0], args[1], opts.Age)
			if err != nil {
				return out.Fail("enroll", err)
			}

			return out.Success(resp, func(w io.Writer) {
				fmt.Fprintf(w, "Enrolled %s\n", resp.VoterID)
				fmt.Fprintf(w, "Credential: %s\n", resp.Credential)
			})
		},
	}

	cmd.Flags().IntVar(&opts.Age, "age", 0, "voter age (18 or older)")
	cmd.MarkFlagRequired("age")

	return cmd
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <voter-id>",
		Short: "Run the simulated fingerprint reader for a voter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)

			resp, err := rootOpts.client().Scan(cmd.Context(), args[0])
			if err != nil {
				return out.Fail("scan", err)
			}

			return out.Success(resp, func(w io.Writer) {
				fmt.Fprintf(w, "Scanned %s\n", resp.VoterID)
				fmt.Fprintf(w, "Credential: %s\n", resp.Credential)
			})
		},
	}
}

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Credential string
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <voter-id>",
		Short: "Verify a credential and print the vote authorization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)

			resp, err := opts.client().Verify(cmd.Context(), args[0], opts.Credential)
			if err != nil {
				return out.Fail("verify", err)
			}

			return out.Success(resp, func(w io.Writer) {
				fmt.Fprintf(w, "Verified %s\n", resp.VoterID)
				fmt.Fprintf(w, "Authorization: %s\n", resp.Authorization)
				fmt.Fprintf(w, "Expires: %s\n", humanize.Time(resp.ExpiresAt))
			})
		},
	}

	cmd.Flags().StringVar(&opts.Credential, "credential", "", "credential from enroll or scan")
	cmd.MarkFlagRequired("credential")

	return cmd
}

// NewVotersCommand creates the voters command.
func NewVotersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "voters",
		Short: "List enrolled voters and whether they have voted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)

			voters, err := rootOpts.client().ListVoters(cmd.Context())
			if err != nil {
				return out.Fail("list voters", err)
			}

			return out.Success(voters, func(w io.Writer) {
				writeVoters(w, voters)
			})
		},
	}
}

func writeVoters(w io.Writer, voters []models.VoterSummary) {
	if len(voters) == 0 {
		fmt.Fprintln(w, "No voters enrolled.")
		return
	}

	fmt.Fprintf(w, "%-12s %-24s %4s  %-9s %s\n", "VOTER", "NAME", "AGE", "STATUS", "ENROLLED")
	for _, v := range voters {
		status := "pending"
		if v.HasVoted {
			status = "voted"
		}
		fmt.Fprintf(w, "%-12s %-24s %4d  %-9s %s\n", v.ID, v.Name, v.Age, status, v.Enrolled)
	}
}
