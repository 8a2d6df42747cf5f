package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/cognilevel/internal/assess"
	"github.com/abhisek/cognilevel/internal/cognition"
)

// errNoInput is returned when stdin ends before the session completes.
var errNoInput = errors.New("input closed before the assessment completed")

// lineResponder reads one answer per line. Multiple-choice questions
// accept the option number as well as its text.
type lineResponder struct {
	scanner *bufio.Scanner
	out     io.Writer
	now     func() time.Time
}

func (r *lineResponder) Respond(ctx context.Context, s *assess.Session, q cognition.Question) (string, time.Duration, error) {
	fmt.Fprintf(r.out, "\nQuestion %d/%d  [%s, %s]\n%s\n",
		s.TurnCount()+1, s.Config().MaxQuestions, q.Kind, q.Difficulty, q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(r.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(r.out, "> ")

	start := r.now()
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", 0, err
		}
		return "", 0, errNoInput
	}
	answer := strings.TrimSpace(r.scanner.Text())
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(q.Options) {
		answer = q.Options[n-1]
	}
	return answer, r.now().Sub(start), nil
}

// runPlain runs one session over line-based input and prints the report.
// A session cut short by closed input still prints its partial report.
func runPlain(ctx context.Context, engine *assess.Engine, domain string, cfg assess.Config, in io.Reader, out io.Writer, asJSON bool) error {
	responder := &lineResponder{scanner: bufio.NewScanner(in), out: out, now: time.Now}
	report, runErr := engine.Run(ctx, domain, cfg, responder)
	if runErr != nil && !errors.Is(runErr, errNoInput) {
		return runErr
	}

	fmt.Fprintln(out)
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	}
	printReport(out, report)
	return nil
}

// printReport writes a plain-text rendition of r.
func printReport(w io.Writer, r assess.FinalReport) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Domain:      %s\n", r.Domain)
	fmt.Fprintf(w, "Level:       %s\n", r.FinalLevel)
	fmt.Fprintf(w, "Confidence:  %.0f%% (%s quality)\n", r.OverallConfidence*100, r.QualityTier)
	target := "not reached"
	if r.TargetReached {
		target = "reached"
	}
	fmt.Fprintf(w, "Target:      %.0f%% (%s)\n", r.ConfidenceTarget*100, target)
	fmt.Fprintf(w, "Questions:   %d (stopped: %s)\n", r.QuestionsAsked, r.StopReason)
	fmt.Fprintln(w, sep)

	fmt.Fprintln(w, "Recommendations:")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(w, "  - %s\n", rec)
	}
	if len(r.AggregatedStrengths) > 0 {
		fmt.Fprintf(w, "Strengths:   %s\n", strings.Join(r.AggregatedStrengths, ", "))
	}
	if len(r.AggregatedWeaknesses) > 0 {
		fmt.Fprintf(w, "Weaknesses:  %s\n", strings.Join(r.AggregatedWeaknesses, ", "))
	}
	if len(r.LearningModules) > 0 {
		fmt.Fprintf(w, "Next level:  %s\n", r.NextLevel)
		for _, m := range r.LearningModules {
			fmt.Fprintf(w, "  - %s (%dh)\n", m.Title, m.EstimatedHours)
		}
	}
}
