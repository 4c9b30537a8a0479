// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/printvote/models"
)

// NewResultsCommand creates the results command.
func NewResultsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show the live ranked tally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)

			tally, err := rootOpts.client().Results(cmd.Context())
			if err != nil {
				return out.Fail("results", err)
			}

			return out.Success(tally, func(w io.Writer) {
				writeTally(w, tally)
			})
		},
	}
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show enrollment and turnout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)

			stats, err := rootOpts.client().Stats(cmd.Context())
			if err != nil {
				return out.Fail("stats", err)
			}

			return out.Success(stats, func(w io.Writer) {
				writeStats(w, stats)
			})
		},
	}
}

// NewCandidatesCommand creates the candidates command.
func NewCandidatesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates",
		Short: "List candidates in ballot order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)

			candidates, err := rootOpts.client().Candidates(cmd.Context())
			if err != nil {
				return out.Fail("candidates", err)
			}

			return out.Success(candidates, func(w io.Writer) {
				writeCandidates(w, candidates)
			})
		},
	}
}

func writeTally(w io.Writer, t models.Tally) {
	fmt.Fprintf(w, "Total votes: %s\n\n", humanize.Comma(int64(t.TotalVotes)))
	fmt.Fprintf(w, "%-4s  %-20s  %-20s  %7s  %6s\n", "RANK", "CANDIDATE", "PARTY", "VOTES", "SHARE")
	for _, e := range t.Entries {
		fmt.Fprintf(w, "%-4d  %-20s  %-20s  %7s  %5.1f%%\n",
			e.Rank, e.Candidate.Name, e.Candidate.Party, humanize.Comma(int64(e.VoteCount)), e.Percentage)
	}
	fmt.Fprintln(w)

	if t.Winner == nil {
		fmt.Fprintln(w, "No votes cast yet.")
		return
	}
	fmt.Fprintf(w, "Leading: %s with %s\n", t.Winner.Candidate.Name, plural(t.Winner.VoteCount, "vote"))
}

func writeStats(w io.Writer, s models.Stats) {
	fmt.Fprintf(w, "Enrolled voters: %s\n", humanize.Comma(int64(s.EnrolledVoters)))
	fmt.Fprintf(w, "Votes cast:      %s\n", humanize.Comma(int64(s.VotesCast)))
	fmt.Fprintf(w, "Pending votes:   %s\n", humanize.Comma(int64(s.PendingVotes)))
	fmt.Fprintf(w, "Candidates:      %d\n", s.Candidates)
	fmt.Fprintf(w, "Turnout:         %.1f%%\n", s.TurnoutPercent)
}

func writeCandidates(w io.Writer, candidates []models.Candidate) {
	for _, c := range candidates {
		fmt.Fprintf(w, "%3d  %-20s  %-20s  %s\n", c.ID, c.Name, c.Party, plural(c.VoteCount, "vote"))
	}
}

func plural(n int, unit string) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, unit, "")
}
