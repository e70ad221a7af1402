// Package stats tracks timing and counts for one extraction run.
// It records each phase of execution, the number of values produced,
// and memory usage at the end of the run.
package stats

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Stats holds performance metrics for an extraction run.
type Stats struct {
	// Timing for each phase
	DecodeStart  time.Time
	DecodeEnd    time.Time
	ExtractStart time.Time
	ExtractEnd   time.Time
	RenderStart  time.Time
	RenderEnd    time.Time

	// Counts
	InputBytes      int64
	Namespaces      int
	LinkTrailChars  int
	ValuesExtracted int
	Ignored         int

	// Ignore rules in effect
	IgnoreValues  int
	IgnoreGlobs   int
	IgnoreRegexes int

	// Memory stats (captured at end)
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	NumGoroutine int
}

// New creates a new Stats instance.
func New() *Stats {
	return &Stats{}
}

// StartDecode marks the beginning of siteinfo decoding.
func (s *Stats) StartDecode() {
	s.DecodeStart = time.Now()
}

// EndDecode marks the end of decoding.
func (s *Stats) EndDecode(inputBytes int64, namespaces int) {
	s.DecodeEnd = time.Now()
	s.InputBytes = inputBytes
	s.Namespaces = namespaces
}

// StartExtract marks the beginning of the extraction phase.
func (s *Stats) StartExtract() {
	s.ExtractStart = time.Now()
}

// EndExtract marks the end of extraction.
func (s *Stats) EndExtract(linkTrailChars, values, ignored int) {
	s.ExtractEnd = time.Now()
	s.LinkTrailChars = linkTrailChars
	s.ValuesExtracted = values
	s.Ignored = ignored
}

// SetIgnoreRules records how many exact, glob and regex ignore rules were active.
func (s *Stats) SetIgnoreRules(values, globs, regexes int) {
	s.IgnoreValues = values
	s.IgnoreGlobs = globs
	s.IgnoreRegexes = regexes
}

// StartRender marks the beginning of report rendering.
func (s *Stats) StartRender() {
	s.RenderStart = time.Now()
}

// EndRender marks the end of rendering and captures memory stats.
func (s *Stats) EndRender() {
	s.RenderEnd = time.Now()
	s.captureMemoryStats()
}

func (s *Stats) captureMemoryStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s.HeapAlloc = m.HeapAlloc
	s.TotalAlloc = m.TotalAlloc
	s.NumGC = m.NumGC
	s.NumGoroutine = runtime.NumGoroutine()
}

// DecodeDuration returns the time spent decoding the siteinfo payload.
func (s *Stats) DecodeDuration() time.Duration {
	return span(s.DecodeStart, s.DecodeEnd)
}

// ExtractDuration returns the time spent building the configuration.
func (s *Stats) ExtractDuration() time.Duration {
	return span(s.ExtractStart, s.ExtractEnd)
}

// RenderDuration returns the time spent rendering the report.
func (s *Stats) RenderDuration() time.Duration {
	return span(s.RenderStart, s.RenderEnd)
}

// TotalDuration returns the total time from decode start to render end.
func (s *Stats) TotalDuration() time.Duration {
	return span(s.DecodeStart, s.RenderEnd)
}

func span(start, end time.Time) time.Duration {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return end.Sub(start)
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%.1fs", int(d.Minutes()), d.Seconds()-float64(int(d.Minutes())*60))
}

// FormatBytes formats bytes for human-readable display.
func FormatBytes(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// String returns a formatted string representation of the stats.
func (s *Stats) String() string {
	var b strings.Builder

	total := s.TotalDuration()
	phase := func(label string, d time.Duration) {
		b.WriteString(fmt.Sprintf("  %-14s %8s", label, FormatDuration(d)))
		if total > 0 {
			b.WriteString(fmt.Sprintf("  (%4.1f%%)", float64(d)/float64(total)*100))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n=== Performance Statistics ===\n\n")

	b.WriteString("Timing:\n")
	phase("Decode:", s.DecodeDuration())
	phase("Extract:", s.ExtractDuration())
	phase("Render:", s.RenderDuration())
	b.WriteString("  ─────────────────────────\n")
	b.WriteString(fmt.Sprintf("  Total:         %8s\n", FormatDuration(total)))

	b.WriteString("\nCounts:\n")
	b.WriteString(fmt.Sprintf("  Input size:     %8s\n", FormatBytes(uint64(max(s.InputBytes, 0)))))
	b.WriteString(fmt.Sprintf("  Namespaces:        %5d\n", s.Namespaces))
	b.WriteString(fmt.Sprintf("  Link trail chars:  %5d\n", s.LinkTrailChars))
	b.WriteString(fmt.Sprintf("  Values extracted:  %5d\n", s.ValuesExtracted))
	if s.Ignored > 0 {
		b.WriteString(fmt.Sprintf("  Ignored:           %5d\n", s.Ignored))
	}
	if s.IgnoreValues+s.IgnoreGlobs+s.IgnoreRegexes > 0 {
		b.WriteString(fmt.Sprintf("  Ignore rules:      %d values, %d globs, %d regexes\n",
			s.IgnoreValues, s.IgnoreGlobs, s.IgnoreRegexes))
	}

	b.WriteString("\nMemory:\n")
	b.WriteString(fmt.Sprintf("  Heap in use:   %8s\n", FormatBytes(s.HeapAlloc)))
	b.WriteString(fmt.Sprintf("  Total alloc:   %8s\n", FormatBytes(s.TotalAlloc)))
	b.WriteString(fmt.Sprintf("  GC cycles:     %8d\n", s.NumGC))
	b.WriteString(fmt.Sprintf("  Goroutines:    %8d\n", s.NumGoroutine))

	return b.String()
}

// ToJSON returns a map suitable for JSON serialization.
func (s *Stats) ToJSON() map[string]any {
	return map[string]any{
		"timing": map[string]any{
			"decode_ms":  s.DecodeDuration().Milliseconds(),
			"extract_ms": s.ExtractDuration().Milliseconds(),
			"render_ms":  s.RenderDuration().Milliseconds(),
			"total_ms":   s.TotalDuration().Milliseconds(),
		},
		"counts": map[string]any{
			"input_bytes":      s.InputBytes,
			"namespaces":       s.Namespaces,
			"link_trail_chars": s.LinkTrailChars,
			"values_extracted": s.ValuesExtracted,
			"ignored":          s.Ignored,
			"ignore_rules": map[string]any{
				"values":  s.IgnoreValues,
				"globs":   s.IgnoreGlobs,
				"regexes": s.IgnoreRegexes,
			},
		},
		"memory": map[string]any{
			"heap_bytes":  s.HeapAlloc,
			"total_bytes": s.TotalAlloc,
			"gc_cycles":   s.NumGC,
			"goroutines":  s.NumGoroutine,
		},
	}
}
