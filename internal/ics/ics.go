// Package ics renders iCalendar documents for invites and the public feed.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/payram/igaming-events-api/internal/calendar"
	"github.com/payram/igaming-events-api/internal/models"
)

// ProductID identifies documents produced by this service.
const ProductID = "-//PayRam//Gaming Event Calendar//EN"

// ReminderTrigger fires the invite alarm a day before the start.
const ReminderTrigger = "-PT24H"

// Person is an organizer or attendee.
type Person struct {
	Name  string
	Email string
}

// Invite describes one event invitation.
type Invite struct {
	UID         string
	Summary     string
	Description string
	Website     string
	Location    string
	// Start and End are the first and last day of the event. End is inclusive.
	Start     time.Time
	End       time.Time
	Organizer Person
	Attendee  Person
	Stamp     time.Time
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ical.MethodPublish)
	return cal
}

// BuildInvite renders a single-event PUBLISH calendar with a reminder alarm.
func BuildInvite(inv Invite) string {
	cal := newCalendar()

	event := cal.AddEvent(inv.UID)
	event.SetDtStampTime(inv.Stamp.UTC())
	event.SetStartAt(midnight(inv.Start).UTC())
	event.SetEndAt(midnight(inv.End).AddDate(0, 0, 1).UTC())
	if inv.Organizer.Email != "" {
		event.SetOrganizer("mailto:"+inv.Organizer.Email, ical.WithCN(inv.Organizer.Name))
	}
	event.AddAttendee(inv.Attendee.Email,
		ical.CalendarUserTypeIndividual,
		ical.ParticipationRoleReqParticipant,
		ical.ParticipationStatusNeedsAction,
		ical.WithRSVP(true),
		ical.WithCN(inv.Attendee.Name),
	)
	event.SetSummary(inv.Summary)
	event.SetDescription(inviteDescription(inv.Description, inv.Website))
	event.SetLocation(inv.Location)
	event.SetStatus(ical.ObjectStatusConfirmed)
	event.SetProperty(ical.ComponentPropertySequence, "0")

	alarm := event.AddAlarm()
	alarm.SetAction(ical.ActionDisplay)
	alarm.SetTrigger(ReminderTrigger)
	alarm.SetProperty(ical.ComponentPropertyDescription, "Reminder: "+inv.Summary)

	return cal.Serialize()
}

func inviteDescription(description, website string) string {
	if website == "" {
		return description
	}
	return description + "\n\nWebsite: " + website
}

// BuildFeed renders every event with parseable dates as an all-day entry.
// UIDs derive from the event link so subscribers see stable identities.
func BuildFeed(events []models.Event, uidDomain string, stamp time.Time) string {
	cal := newCalendar()
	cal.SetXWRCalName("iGaming Events")
	cal.SetRefreshInterval("PT6H")

	for _, e := range calendar.SortEventsByDate(events) {
		start, err := calendar.ParseDate(e.StartDate)
		if err != nil {
			continue
		}
		end, err := calendar.ParseDate(e.EndDate)
		if err != nil || end.Before(start) {
			continue
		}

		event := cal.AddEvent(FeedUID(e.Link, uidDomain))
		event.SetDtStampTime(stamp.UTC())
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(end.AddDate(0, 0, 1))
		event.SetSummary(e.EventName)
		event.SetDescription(inviteDescription(e.Description, e.Website))
		event.SetLocation(e.Location)
		if e.Website != "" {
			event.SetURL(e.Website)
		}
		event.SetStatus(ical.ObjectStatusConfirmed)
	}

	return cal.Serialize()
}

// FeedUID maps a link onto a UID that is valid in an iCalendar property.
func FeedUID(link, domain string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(link) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "event"
	}
	return fmt.Sprintf("%s@%s", slug, domain)
}

// InviteUID builds the unique id of an invite sent at t.
func InviteUID(t time.Time, domain string) string {
	return fmt.Sprintf("%d@%s", t.UnixMilli(), domain)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
