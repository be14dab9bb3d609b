package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// sleepFn waits d or until ctx is done. It is a test seam.
var sleepFn = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Breathe guides the user through the given number of breathing cycles and
// records the session. An interrupted exercise records nothing.
func (a *App) Breathe(ctx context.Context, cycles string) error {
	n, err := strconv.Atoi(cycles)
	if err != nil || n < 1 {
		return fmt.Errorf("cycles must be a positive number, got %q", cycles)
	}

	pattern, err := a.wellness.BreathingPattern(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d cycles, about %s\n", n, time.Duration(n*pattern.CycleSeconds)*time.Second)
	for c := 1; c <= n; c++ {
		for _, ph := range pattern.Phases {
			fmt.Fprintf(a.out, "[%d/%d] %s for %ds\n", c, n, ph.Label, ph.Seconds)
			if err := sleepFn(ctx, time.Duration(ph.Seconds)*time.Second); err != nil {
				return err
			}
		}
	}

	s, err := a.wellness.RecordBreathing(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Well done: %d cycles, %ds\n", s.Cycles, s.DurationSeconds)
	return nil
}

// Sessions lists recent breathing sessions.
func (a *App) Sessions(ctx context.Context) error {
	sessions, err := a.wellness.BreathingSessions(ctx, listLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No sessions yet")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(a.out, "%s  %d cycles  %ds\n", s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Cycles, s.DurationSeconds)
	}
	return nil
}
