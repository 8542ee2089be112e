package ine

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ReleaseEvent is one scheduled publication from the INE availability
// calendar.
type ReleaseEvent struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// Calendar downloads the .ics publication calendar from calendarURL and
// returns its events sorted by date. Events without a parsable start date
// are skipped.
func (c *Client) Calendar(ctx context.Context, calendarURL string) ([]ReleaseEvent, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, calendarURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch calendar: unexpected status %d", resp.StatusCode)
	}

	cal, err := ics.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	return extractEvents(cal), nil
}

func extractEvents(cal *ics.Calendar) []ReleaseEvent {
	var events []ReleaseEvent
	for _, e := range cal.Events() {
		date, err := e.GetStartAt()
		if err != nil {
			// All-day events carry a date without a time component.
			date, err = e.GetAllDayStartAt()
			if err != nil {
				continue
			}
		}

		title := ""
		if prop := e.GetProperty(ics.ComponentPropertySummary); prop != nil {
			title = prop.Value
		}

		events = append(events, ReleaseEvent{Title: title, Date: date})
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return events
}
