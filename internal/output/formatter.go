// Package output formats command results as text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/skein-dev/skein/internal/batchlog"
	"github.com/skein-dev/skein/internal/ui"
	"github.com/skein-dev/skein/pkg/timeutil"
)

// Format specifies the output format type.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formatter handles output formatting for different formats.
type Formatter struct {
	format   Format
	writer   io.Writer
	renderer *ui.Renderer
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(format string, w io.Writer) *Formatter {
	return &Formatter{
		format:   Format(format),
		writer:   w,
		renderer: ui.NewRenderer(ui.WithOutput(w)),
	}
}

// entryJSON is the JSON shape of a log entry.
type entryJSON struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Entry writes a single tailed log entry. In text mode it renders a styled
// line; in JSON mode one object per line, suitable for piping.
func (f *Formatter) Entry(stream string, e batchlog.Entry) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.writer).Encode(entryJSON{
			ID:        e.ID,
			Timestamp: time.UnixMilli(e.Timestamp).UTC(),
			Message:   e.Message,
		})
	default:
		f.renderer.LogEntry(time.UnixMilli(e.Timestamp).Local().Format("15:04:05"), stream, e.Message)
		return nil
	}
}

// Streams writes a stream listing.
func (f *Formatter) Streams(streams []batchlog.StreamInfo) error {
	if f.format == FormatJSON {
		type streamJSON struct {
			Name       string     `json:"name"`
			FirstEvent *time.Time `json:"first_event,omitempty"`
			LastEvent  *time.Time `json:"last_event,omitempty"`
		}
		out := make([]streamJSON, 0, len(streams))
		for _, s := range streams {
			row := streamJSON{Name: s.Name}
			if s.FirstEventTime != 0 {
				t := time.UnixMilli(s.FirstEventTime).UTC()
				row.FirstEvent = &t
			}
			if s.LastEventTime != 0 {
				t := time.UnixMilli(s.LastEventTime).UTC()
				row.LastEvent = &t
			}
			out = append(out, row)
		}
		enc := json.NewEncoder(f.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	rows := make([][]string, 0, len(streams))
	for _, s := range streams {
		rows = append(rows, []string{
			s.Name,
			timeutil.FormatMillis(s.FirstEventTime),
			timeutil.FormatMillis(s.LastEventTime),
		})
	}
	f.renderer.Table([]string{"STREAM", "FIRST EVENT", "LAST EVENT"}, rows)
	return nil
}

// Activity writes log volume buckets.
func (f *Formatter) Activity(points []batchlog.ActivityPoint) error {
	if f.format == FormatJSON {
		type pointJSON struct {
			Timestamp time.Time `json:"timestamp"`
			Events    float64   `json:"events"`
			Bytes     float64   `json:"bytes"`
		}
		out := make([]pointJSON, 0, len(points))
		for _, p := range points {
			out = append(out, pointJSON{Timestamp: p.Timestamp.UTC(), Events: p.Events, Bytes: p.Bytes})
		}
		enc := json.NewEncoder(f.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Timestamp.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%.0f", p.Events),
			formatBytes(p.Bytes),
		})
	}
	f.renderer.Table([]string{"BUCKET", "EVENTS", "BYTES"}, rows)
	return nil
}

func formatBytes(n float64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", n/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", n/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", n/(1<<10))
	default:
		return fmt.Sprintf("%.0f B", n)
	}
}
