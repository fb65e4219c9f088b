package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

// Header is the column order of the course CSV
var Header = []string{
	"provider",
	"provider_course_id",
	"title",
	"url",
	"price",
	"numeric_price",
	"rating",
	"reviews",
	"language",
}

// WriteCSV writes one row per course of every successful bucket, in provider order.
// Failed buckets contribute no rows.
func WriteCSV(w io.Writer, resp domain.AggregatedResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, row := range Rows(resp) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Rows renders the courses as string rows matching Header
func Rows(resp domain.AggregatedResponse) [][]string {
	var rows [][]string
	for _, b := range resp.Buckets() {
		if b.Failed() {
			continue
		}
		for _, c := range b.Courses {
			rows = append(rows, Row(c))
		}
	}
	return rows
}

// Row renders a single course; absent optional values become empty cells
func Row(c domain.NormalizedCourse) []string {
	rating := ""
	if c.Rating != nil {
		rating = strconv.FormatFloat(*c.Rating, 'f', -1, 64)
	}
	reviews := ""
	if c.ReviewCount != nil {
		reviews = strconv.Itoa(*c.ReviewCount)
	}
	language := ""
	if c.Language != nil {
		language = *c.Language
	}

	return []string{
		c.Provider,
		c.ProviderCourseID,
		clean(c.Title),
		c.URL,
		clean(c.Price.Text()),
		strconv.FormatFloat(c.NumericPrice, 'f', -1, 64),
		rating,
		reviews,
		language,
	}
}

func clean(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
