package course

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

// PriceStrategy names how a textual price becomes a number
type PriceStrategy string

const (
	// PriceLiteral joins every digit of the text, keeping one decimal point
	PriceLiteral PriceStrategy = "literal"
	// PriceFirstToken parses the first decimal number in the text
	PriceFirstToken PriceStrategy = "first_token"
)

// PriceParser derives the numeric price used for filtering and ranking
type PriceParser func(domain.Price) float64

// ParsePriceStrategy resolves a strategy name, empty meaning literal
func ParsePriceStrategy(name string) (PriceParser, error) {
	switch PriceStrategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PriceLiteral:
		return DerivePrice, nil
	case PriceFirstToken:
		return DerivePriceFirstToken, nil
	default:
		return nil, fmt.Errorf("unknown price strategy %q (want %s or %s)", name, PriceLiteral, PriceFirstToken)
	}
}

// DerivePrice uses numeric prices as-is. Text keeps every digit in order plus
// the first '.' that sits between two digits; later dots are dropped.
// "$49.99" gives 49.99, "2-day money back, $49" gives 249, "Version 2.0, $49.99"
// gives 2.04999 and "Free" gives 0.
func DerivePrice(p domain.Price) float64 {
	if v, ok := p.Numeric(); ok {
		return v
	}

	text := []rune(p.Text())
	var b strings.Builder
	seenDigit, seenPoint := false, false
	for i, r := range text {
		switch {
		case isDigit(r):
			b.WriteRune(r)
			seenDigit = true
		case r == '.' && seenDigit && !seenPoint && i+1 < len(text) && isDigit(text[i+1]):
			b.WriteRune(r)
			seenPoint = true
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

var firstNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// DerivePriceFirstToken uses numeric prices as-is and otherwise parses the
// first number in the text after dropping thousands separators.
func DerivePriceFirstToken(p domain.Price) float64 {
	if v, ok := p.Numeric(); ok {
		return v
	}
	m := firstNumber.FindString(strings.ReplaceAll(p.Text(), ",", ""))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
