package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/client/dashboard"
)

const barWidth = 20

func bar(pct int) string {
	filled := pct * barWidth / 100
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
}

// renderDashboard writes the dimensions whose trackers are enabled, the
// missing check-ins and the phone dependence panel.
func renderDashboard(w io.Writer, st dashboard.State) {
	d := st.Dashboard
	if d == nil {
		fmt.Fprintln(w, "No dashboard yet")
		return
	}

	tr := d.Preferences.Trackers
	rows := []struct {
		on    bool
		label string
		value int
	}{
		{tr.Mood, "Mood", d.Snapshot.Mood},
		{tr.Focus, "Focus", d.Snapshot.Focus},
		{tr.Anxiety, "Anxiety", d.Snapshot.Anxiety},
		{tr.Depression, "Depression", d.Snapshot.Depression},
	}
	for _, r := range rows {
		if r.on {
			fmt.Fprintf(w, "%-11s %3d  %s\n", r.label, r.value, bar(r.value))
		}
	}

	if d.Phone.Enabled {
		if d.Phone.Score != nil {
			fmt.Fprintf(w, "%-11s %3d  %s  (%s)\n", "Phone", *d.Phone.Score, bar(*d.Phone.Score), d.Phone.Tier)
		} else {
			fmt.Fprintf(w, "%-11s   -  take the phone_habits check-in\n", "Phone")
		}
	}

	if len(d.Missing) > 0 {
		labels := make([]string, len(d.Missing))
		for i, m := range d.Missing {
			labels[i] = m.Label
		}
		fmt.Fprintf(w, "Not checked in recently: %s\n", strings.Join(labels, ", "))
	}

	switch {
	case st.Cached:
		fmt.Fprintf(w, "(offline: cached copy from %s)\n", d.GeneratedAt.Local().Format("2006-01-02 15:04"))
	case d.Degraded:
		fmt.Fprintln(w, "(some data could not be loaded; showing defaults)")
	}
}

// Dashboard fetches and shows the dashboard, falling back to the cached copy
// when offline.
func (a *App) Dashboard(ctx context.Context) error {
	st, err := a.view.Refresh(ctx, a.wellness.Dashboard)
	if err != nil {
		if errors.Is(err, dashboard.ErrSuperseded) {
			return nil
		}
		return err
	}
	renderDashboard(a.out, st)
	return nil
}

// waitForEnter is a test seam: it blocks until the user presses Enter.
var waitForEnter = func(r *bufio.Reader) {
	_, _ = readLine(r)
}

// Watch shows the dashboard every time the server pushes a new one, until
// the user presses Enter.
func (a *App) Watch(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Watching for changes, press Enter to stop")

	done := make(chan error, 1)
	go func() {
		done <- a.wellness.Watch(ctx, func(d *api.Dashboard) {
			st := a.view.Push(d)
			fmt.Fprintln(a.out)
			renderDashboard(a.out, st)
		})
	}()

	stopped := make(chan struct{})
	go func() {
		waitForEnter(a.reader)
		close(stopped)
	}()

	select {
	case <-stopped:
		cancel()
		return <-done
	case err := <-done:
		fmt.Fprintln(a.out, "Watch stopped, press Enter to continue")
		<-stopped
		return err
	}
}
