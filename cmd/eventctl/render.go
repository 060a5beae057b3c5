package main

import (
	"fmt"
	"io"
	"time"

	"github.com/hohoindia/event-client/internal/core/domain"
	"github.com/hohoindia/event-client/internal/core/service"
)

// renderListing prints the classified event listing: upcoming soonest-first,
// then recently ended.
func renderListing(w io.Writer, state service.EventState, now time.Time) {
	classified := domain.Classify(state.Events, now)
	if len(classified) == 0 {
		fmt.Fprintln(w, "No events to display.")
		return
	}

	var upcoming, ended int
	for _, ev := range classified {
		if ev.Status == domain.StatusUpcoming {
			upcoming++
		} else {
			ended++
		}
	}
	fmt.Fprintf(w, "%d upcoming, %d recently ended (%d total)\n\n", upcoming, ended, state.TotalEvents)

	for _, ev := range classified {
		badge := domain.StatusLabel(ev.Date, now)
		fmt.Fprintf(w, "%-26s %s  %s\n", "["+badge.Label+"]", domain.FormatDate(ev.Date), ev.Title)
		fmt.Fprintf(w, "  %s · %s · organized by %s", ev.ID, ev.Venue, ev.OrganizerName())
		if n := ev.RegistrationCount(); n > 0 {
			fmt.Fprintf(w, " · %d registered", n)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", domain.TruncateDescription(ev.Description, 120))
	}
}

// renderDetail prints the current event and its registrations snapshot.
func renderDetail(w io.Writer, state service.EventState, now time.Time) {
	ev := state.CurrentEvent
	if ev == nil {
		fmt.Fprintln(w, "Event not found.")
		return
	}

	badge := domain.StatusLabel(ev.Date, now)
	fmt.Fprintf(w, "%s  [%s]\n", ev.Title, badge.Label)
	fmt.Fprintf(w, "Date:     %s", domain.FormatDate(ev.Date))
	if ev.Time != "" {
		fmt.Fprintf(w, " at %s", ev.Time)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Venue:    %s\n", ev.Venue)
	fmt.Fprintf(w, "Capacity: %d seats\n", ev.Capacity)
	fmt.Fprintf(w, "Register: %s\n", ev.RegistrationURL)
	if len(ev.Speakers) > 0 {
		fmt.Fprintln(w, "Speakers:")
		for _, sp := range ev.Speakers {
			fmt.Fprintf(w, "  - %s\n", sp.Name)
		}
	}
	fmt.Fprintf(w, "\n%s\n", ev.Description)

	if len(state.Registrations) > 0 {
		fmt.Fprintf(w, "\nRegistrations (%d):\n", len(state.Registrations))
		for _, r := range state.Registrations {
			fmt.Fprintf(w, "  %-24s %-28s %s\n", r.Name, r.Email, r.RegistrationDate.Format("2 Jan 2006 15:04"))
		}
	}
}
