package httpx

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Flex decodes a JSON scalar that upstreams send as either a string or a number.
// null and a missing key both leave Present false.
type Flex struct {
	Text     string
	Number   float64
	IsNumber bool
	Present  bool
}

func (f *Flex) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*f = Flex{}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Flex{Text: s, Present: true}
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = Flex{Text: strconv.FormatBool(v), Present: true}
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		v, err := n.Float64()
		if err != nil {
			return err
		}
		*f = Flex{Text: n.String(), Number: v, IsNumber: true, Present: true}
	}
	return nil
}

// String returns the scalar as text; numbers keep their wire form
func (f Flex) String() string {
	return f.Text
}

// Float returns the scalar as a number, parsing numeric strings
func (f Flex) Float() (float64, bool) {
	if !f.Present {
		return 0, false
	}
	if f.IsNumber {
		return f.Number, true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(f.Text), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Int returns the scalar truncated to an int; NaN and values outside the int
// range report false
func (f Flex) Int() (int, bool) {
	v, ok := f.Float()
	if !ok || math.IsNaN(v) || v >= float64(math.MaxInt) || v < float64(math.MinInt) {
		return 0, false
	}
	return int(v), true
}
