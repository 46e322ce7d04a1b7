package aspectarian

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/astro"
)

// EventExport is a JSON-friendly event.
type EventExport struct {
	JD     float64   `json:"jd"`
	Time   time.Time `json:"time"`
	Kind   string    `json:"kind"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Other  string    `json:"other,omitempty"`
	Aspect string    `json:"aspect,omitempty"`
	Angle  *float64  `json:"angle,omitempty"`
	Retro  *bool     `json:"retro,omitempty"`
	Sign   string    `json:"sign,omitempty"`
	Lon    float64   `json:"lon"`
}

// Export is the JSON-serializable representation of a scan.
type Export struct {
	Start  time.Time     `json:"start"`
	Stop   time.Time     `json:"stop"`
	Events []EventExport `json:"events"`
}

// ExportEvents converts a scan over [start, stop] to its exportable form.
func ExportEvents(events []Event, start, stop float64) *Export {
	e := &Export{
		Start:  astro.TimeFromJulian(start),
		Stop:   astro.TimeFromJulian(stop),
		Events: make([]EventExport, 0, len(events)),
	}
	for _, ev := range events {
		x := EventExport{
			JD:    ev.JD,
			Time:  astro.TimeFromJulian(ev.JD),
			Kind:  ev.Kind.String(),
			Title: ev.Title(),
			Body:  ev.Body.String(),
			Lon:   ev.Lon,
		}
		switch ev.Kind {
		case KindAspect:
			angle := ev.Aspect
			x.Other = ev.Other.String()
			x.Aspect = aspect.Name(ev.Aspect)
			x.Angle = &angle
		case KindStation:
			retro := ev.Retro
			x.Retro = &retro
		case KindIngress:
			x.Sign = ev.Sign.String()
		}
		e.Events = append(e.Events, x)
	}
	return e
}

// WriteJSON writes the scan as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteTable writes one line per event, in the time zone loc.
func WriteTable(w io.Writer, events []Event, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	fmt.Fprintf(w, "%-20s %-8s %-32s %s\n", "Time", "Kind", "Event", "Longitude")
	fmt.Fprintln(w, strings.Repeat("─", 76))
	for _, ev := range events {
		fmt.Fprintf(w, "%-20s %-8s %-32s %9.4f\n",
			astro.TimeFromJulian(ev.JD).In(loc).Format("2006-01-02 15:04:05"),
			ev.Kind,
			ev.Title(),
			ev.Lon,
		)
	}
	fmt.Fprintf(w, "\nTotal: %d events\n", len(events))
}
