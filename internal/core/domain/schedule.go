package domain

import (
	"fmt"
	"sort"
	"time"
)

// EventStatus tags an event as upcoming or ended relative to a reference time.
type EventStatus string

const (
	StatusUpcoming EventStatus = "upcoming"
	StatusEnded    EventStatus = "ended"
)

// VisibilityWindow is how long an ended event stays visible in the past
// view before it is dropped from listings entirely.
const VisibilityWindow = 5 * 24 * time.Hour

// ClassifiedEvent is an Event tagged with its schedule status.
type ClassifiedEvent struct {
	Event
	Status EventStatus
}

// dateLayouts are the formats accepted for event dates, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseEventDate parses an event's raw date string. The second return is
// false for a missing or unparsable date; such events are excluded from
// classification rather than treated as errors.
func ParseEventDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Classify partitions events into upcoming and recently ended, relative to
// an explicit now (never the wall clock, so callers and tests stay
// deterministic):
//
//  1. Events with a missing or unparsable date are dropped.
//  2. Ended events outside the visibility window are dropped.
//  3. The rest split into upcoming (date >= now) and ended (date < now).
//  4. Upcoming sorts ascending by date, ended descending.
//
// The result is upcoming followed by ended, each entry tagged. The input
// slice is never mutated.
func Classify(events []Event, now time.Time) []ClassifiedEvent {
	if len(events) == 0 {
		return nil
	}

	cutoff := now.Add(-VisibilityWindow)

	type dated struct {
		ev Event
		at time.Time
	}
	var upcoming, ended []dated

	for _, ev := range events {
		at, ok := ParseEventDate(ev.Date)
		if !ok {
			continue
		}
		if at.Before(now) {
			if at.Before(cutoff) {
				continue
			}
			ended = append(ended, dated{ev: ev, at: at})
		} else {
			upcoming = append(upcoming, dated{ev: ev, at: at})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].at.Before(upcoming[j].at) })
	sort.SliceStable(ended, func(i, j int) bool { return ended[i].at.After(ended[j].at) })

	out := make([]ClassifiedEvent, 0, len(upcoming)+len(ended))
	for _, d := range upcoming {
		out = append(out, ClassifiedEvent{Event: d.ev, Status: StatusUpcoming})
	}
	for _, d := range ended {
		out = append(out, ClassifiedEvent{Event: d.ev, Status: StatusEnded})
	}
	return out
}

// StatusKind distinguishes the badge styles a listing renders per event.
type StatusKind string

const (
	KindEnded    StatusKind = "ended"
	KindToday    StatusKind = "today"
	KindSoon     StatusKind = "soon"
	KindUpcoming StatusKind = "upcoming"
	KindInvalid  StatusKind = "invalid"
)

// Status is a presentation-level badge for a single event date.
type Status struct {
	Label string
	Kind  StatusKind
}

// StatusLabel derives the badge for an event date against an explicit now.
// An unparsable date never fails; it yields an explicit invalid badge.
func StatusLabel(date string, now time.Time) Status {
	at, ok := ParseEventDate(date)
	if !ok {
		return Status{Label: "Invalid Date", Kind: KindInvalid}
	}

	if at.Before(now) {
		days := ceilDays(now.Sub(at))
		return Status{Label: fmt.Sprintf("Ended %d %s ago", days, dayWord(days)), Kind: KindEnded}
	}

	ay, am, ad := at.Date()
	ny, nm, nd := now.Date()
	if ay == ny && am == nm && ad == nd {
		return Status{Label: "Today", Kind: KindToday}
	}

	days := ceilDays(at.Sub(now))
	if days <= 7 {
		return Status{Label: fmt.Sprintf("%d %s left", days, dayWord(days)), Kind: KindSoon}
	}
	return Status{Label: "Upcoming", Kind: KindUpcoming}
}

func ceilDays(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

// FormatDate renders an event date for listings ("13 Jan 2025").
func FormatDate(date string) string {
	at, ok := ParseEventDate(date)
	if !ok {
		return "Invalid Date"
	}
	return at.Format("2 Jan 2006")
}

// FormatDateLong renders an event date for the QR card ("13 January 2025").
func FormatDateLong(date string) string {
	at, ok := ParseEventDate(date)
	if !ok {
		return "Invalid Date"
	}
	return at.Format("2 January 2006")
}

// TruncateDescription shortens long descriptions for card views.
func TruncateDescription(s string, max int) string {
	if s == "" {
		return "No description available"
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
