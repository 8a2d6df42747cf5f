package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/cognilevel/internal/cognition"
	"github.com/abhisek/cognilevel/internal/store"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List completed assessment sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().RecentSessions(context.Background(), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No completed sessions yet.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-16s  %-14s  %-16s  %5s  %4s  %-7s  %s\n",
			"ID", "Finished", "Domain", "Level", "Conf", "Qs", "Quality", "Stop")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, e := range sessions {
			fmt.Fprintf(out, "%-8s  %-16s  %-14s  %-16s  %4.0f%%  %4d  %-7s  %s\n",
				truncate(e.SessionID, 8),
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(e.Domain, 14),
				cognition.Level(e.FinalLevel),
				e.Confidence*100,
				e.QuestionsAsked,
				e.QualityTier,
				e.StopReason,
			)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the report and turns of a completed session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		ev, err := findSession(ctx, s.EventRepo(), args[0])
		if err != nil {
			return err
		}
		report, err := store.DecodeReport(*ev)
		if err != nil {
			return err
		}
		turns, err := s.EventRepo().SessionTurns(ctx, ev.SessionID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Session:     %s\n", report.SessionID)
		fmt.Fprintf(out, "Started:     %s\n", report.StartedAt.Local().Format("2006-01-02 15:04:05"))
		printReport(out, report)

		if len(turns) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%4s  %-12s  %-20s  %-16s  %5s  %8s  %s\n",
			"Turn", "Question", "Kind", "Assessed", "Conf", "Estimate", "Source")
		fmt.Fprintln(out, strings.Repeat("─", 88))
		for _, t := range turns {
			fmt.Fprintf(out, "%4d  %-12s  %-20s  %-16s  %4.0f%%  %8.2f  %s\n",
				t.Turn,
				truncate(t.QuestionID, 12),
				t.Kind,
				cognition.Level(t.Level),
				t.Confidence*100,
				t.EstimateAfter,
				t.Source,
			)
		}
		return nil
	},
}

// findSession resolves a completed session by full id or unique prefix.
func findSession(ctx context.Context, repo store.EventRepo, id string) (*store.SessionEvent, error) {
	sessions, err := repo.RecentSessions(ctx, 0)
	if err != nil {
		return nil, err
	}
	var match *store.SessionEvent
	for i := range sessions {
		e := &sessions[i]
		if e.SessionID == id {
			return e, nil
		}
		if strings.HasPrefix(e.SessionID, id) {
			if match != nil {
				return nil, fmt.Errorf("session id %q is ambiguous", id)
			}
			match = e
		}
	}
	if match == nil {
		return nil, fmt.Errorf("session %q not found", id)
	}
	return match, nil
}

func init() {
	sessionsCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	sessionsCmd.AddCommand(sessionsShowCmd)
}
