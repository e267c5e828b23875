// internal/catalog/price.go
package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var ErrMalformedPrice = errors.New("malformed price")

// Price is a non-negative unit price. Catalog providers may supply it as a
// JSON number or as a currency-formatted string such as "R$ 12,50"; both are
// coerced through ParsePrice.
type Price float64

func (p Price) Float64() float64 {
	return float64(p)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Price(ParsePrice(raw))
	return nil
}

// Scan lets gorm read decimal and text price columns alike.
func (p *Price) Scan(src interface{}) error {
	*p = Price(ParsePrice(src))
	return nil
}

func (p Price) Value() (driver.Value, error) {
	return float64(p), nil
}

// ParsePrice coerces a raw number or a currency-formatted string into a
// float64. Values that cannot be parsed to a finite, non-negative number
// yield 0.
func ParsePrice(value interface{}) float64 {
	price, err := ParsePriceStrict(value)
	if err != nil {
		return 0
	}
	return price
}

// ParsePriceStrict is ParsePrice with the failure reported as an error
// wrapping ErrMalformedPrice.
func ParsePriceStrict(value interface{}) (float64, error) {
	var price float64

	switch v := value.(type) {
	case Price:
		price = float64(v)
	case float64:
		price = v
	case float32:
		price = float64(v)
	case int:
		price = float64(v)
	case int32:
		price = float64(v)
	case int64:
		price = float64(v)
	case uint:
		price = float64(v)
	case uint32:
		price = float64(v)
	case uint64:
		price = float64(v)
	case json.Number:
		return parsePriceString(v.String())
	case string:
		return parsePriceString(v)
	case []byte:
		return parsePriceString(string(v))
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrMalformedPrice, value)
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, fmt.Errorf("%w: %v", ErrMalformedPrice, price)
	}
	return price, nil
}

// parsePriceString strips currency symbols and thousands separators. When a
// string carries both ',' and '.', whichever appears last is the decimal
// separator. A repeated separator is always a thousands separator, and so is
// a single '.' followed by exactly three digits when a currency symbol is
// present ("R$ 1.500"). A lone ',' is otherwise decimal ("12,50" is 12.50).
// Signs are rejected.
func parsePriceString(s string) (float64, error) {
	var (
		b        strings.Builder
		currency bool
	)
	for _, r := range s {
		switch {
		case (r >= '0' && r <= '9') || r == ',' || r == '.':
			b.WriteRune(r)
		case r == '-' || r == '+':
			return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, s)
		case unicode.IsLetter(r) || unicode.Is(unicode.Sc, r):
			currency = true
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, s)
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastDot >= 0:
		if strings.Count(cleaned, ".") > 1 || (currency && len(cleaned)-lastDot-1 == 3) {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") > 1 {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, s)
	}
	return price, nil
}
