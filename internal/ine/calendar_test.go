package ine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//INE//Calendario//ES
BEGIN:VEVENT
UID:2@ine.es
DTSTART:20240215T090000Z
SUMMARY:Índice de Precios de Consumo. Enero 2024
END:VEVENT
BEGIN:VEVENT
UID:1@ine.es
DTSTART:20240131T090000Z
SUMMARY:Encuesta de Población Activa. T4 2023
END:VEVENT
END:VCALENDAR
`

func TestCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		w.Write([]byte(testICS))
	}))
	defer srv.Close()

	c := NewClient(nil, WithRateLimit(1000, 1000))
	events, err := c.Calendar(context.Background(), srv.URL)
	require.NoError(t, err)

	require.Len(t, events, 2)
	// Sorted by date regardless of file order.
	assert.Equal(t, "Encuesta de Población Activa. T4 2023", events[0].Title)
	assert.Equal(t, "Índice de Precios de Consumo. Enero 2024", events[1].Title)
	assert.True(t, events[0].Date.Before(events[1].Date))
}

func TestCalendarNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no disponible", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(nil, WithRateLimit(1000, 1000))
	_, err := c.Calendar(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 503")
}

func TestCalendarMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not an ics file"))
	}))
	defer srv.Close()

	c := NewClient(nil, WithRateLimit(1000, 1000))
	_, err := c.Calendar(context.Background(), srv.URL)
	assert.Error(t, err)
}
