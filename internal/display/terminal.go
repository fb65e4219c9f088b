// Package display renders aggregated course results for the terminal.
package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

const separator = " • "

// TerminalFormatter formats search results for terminal display.
type TerminalFormatter struct {
	// DescriptionWidth caps the description line; zero hides it
	DescriptionWidth int
}

// NewTerminalFormatter creates a formatter that shows short descriptions.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{DescriptionWidth: 120}
}

// FormatCourse formats a single course.
func (f *TerminalFormatter) FormatCourse(c domain.NormalizedCourse) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("[%s] %s", strings.ToUpper(c.Provider), c.Title))

	if meta := f.formatMeta(c); meta != "" {
		lines = append(lines, "  "+meta)
	}

	if f.DescriptionWidth > 0 && c.Description != "" {
		lines = append(lines, "  "+f.TruncateText(oneLine(c.Description), f.DescriptionWidth))
	}

	if c.URL != "" {
		lines = append(lines, "  "+c.URL)
	}

	return strings.Join(lines, "\n") + "\n"
}

func (f *TerminalFormatter) formatMeta(c domain.NormalizedCourse) string {
	var parts []string

	if price := c.Price.Text(); price != "" {
		parts = append(parts, price)
	}
	if c.Rating != nil {
		parts = append(parts, fmt.Sprintf("%.1f★", *c.Rating))
	}
	if c.ReviewCount != nil {
		parts = append(parts, strconv.Itoa(*c.ReviewCount)+" reviews")
	}
	if c.Language != nil {
		parts = append(parts, *c.Language)
	}
	if c.Duration != nil {
		parts = append(parts, *c.Duration)
	}
	if c.StartDate != nil {
		parts = append(parts, "starts "+*c.StartDate)
	}

	return strings.Join(parts, separator)
}

// FormatBucket formats one provider section, including its error if the call failed.
func (f *TerminalFormatter) FormatBucket(b domain.Bucket) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "== %s ", b.Provider)
	switch {
	case b.Failed():
		fmt.Fprintf(&sb, "(failed)\n  error: %s\n", *b.Error)
		return sb.String()
	case len(b.Courses) == 0:
		sb.WriteString("(no courses)\n")
		return sb.String()
	default:
		fmt.Fprintf(&sb, "(%d)\n\n", len(b.Courses))
	}

	formatted := make([]string, 0, len(b.Courses))
	for _, c := range b.Courses {
		formatted = append(formatted, f.FormatCourse(c))
	}
	sb.WriteString(strings.Join(formatted, "\n"))
	return sb.String()
}

// FormatResponse formats every bucket in provider order.
func (f *TerminalFormatter) FormatResponse(resp domain.AggregatedResponse) string {
	if resp.Len() == 0 {
		return "No providers configured.\n"
	}

	sections := make([]string, 0, resp.Len())
	for _, b := range resp.Buckets() {
		sections = append(sections, f.FormatBucket(b))
	}
	return strings.Join(sections, "\n")
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(r[:maxLen-3]) + "..."
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
