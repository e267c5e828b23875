// internal/cart/cart.go
package cart

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/javajoker/storefront/internal/catalog"
)

var (
	ErrNothingToCheckout = errors.New("cart has no items available for purchase")
	ErrInvalidCoupon     = errors.New("invalid coupon code")
)

// DiscountRate is the flat reduction granted by any applied coupon.
var DiscountRate = decimal.RequireFromString("0.10")

var couponPattern = regexp.MustCompile(`^[A-Za-z0-9]{3,32}$`)

// Item carries the display fields captured when a product is added.
type Item struct {
	ID            string         `json:"product_id"`
	Name          string         `json:"name"`
	Price         catalog.Price  `json:"price"`
	OriginalPrice *catalog.Price `json:"original_price,omitempty"`
	Image         string         `json:"image,omitempty"`
	Store         string         `json:"store"`
	Available     bool           `json:"available"`
}

func ItemFromProduct(p catalog.Product) Item {
	return Item{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Store:         p.Store,
		Available:     p.Available,
	}
}

// Line is one product's entry in the cart. Quantity is always >= 1.
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

func (l Line) Total() decimal.Decimal {
	return decimal.NewFromFloat(l.Price.Float64()).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is an immutable cart value. Every transition returns a new State and
// leaves the receiver untouched, so a State can be shared without locking.
// The zero value is an empty cart.
type State struct {
	lines     []Line
	coupon    string
	itemCount int
	subtotal  decimal.Decimal
}

func New() State {
	return State{}
}

// AddItem merges quantity into the line for item.ID, creating it when
// absent. Display fields are refreshed from item. A non-positive quantity
// is a no-op.
func (s State) AddItem(item Item, quantity int) State {
	if quantity <= 0 || item.ID == "" {
		return s
	}

	lines := s.cloneLines(1)
	if i := s.index(item.ID); i >= 0 {
		lines[i] = Line{Item: item, Quantity: lines[i].Quantity + quantity}
	} else {
		lines = append(lines, Line{Item: item, Quantity: quantity})
	}
	return s.with(lines, s.coupon)
}

// UpdateQuantity sets an absolute quantity. A quantity <= 0 removes the line;
// an unknown id is a no-op.
func (s State) UpdateQuantity(id string, quantity int) State {
	i := s.index(id)
	if i < 0 {
		return s
	}
	if quantity <= 0 {
		return s.RemoveItem(id)
	}

	lines := s.cloneLines(0)
	lines[i].Quantity = quantity
	return s.with(lines, s.coupon)
}

func (s State) RemoveItem(id string) State {
	i := s.index(id)
	if i < 0 {
		return s
	}

	lines := make([]Line, 0, len(s.lines)-1)
	lines = append(lines, s.lines[:i]...)
	lines = append(lines, s.lines[i+1:]...)
	return s.with(lines, s.coupon)
}

// ApplyCoupon records the discount code. A blank code clears it.
func (s State) ApplyCoupon(code string) State {
	code = strings.TrimSpace(code)
	if code == "" {
		return s.RemoveCoupon()
	}
	return s.with(s.cloneLines(0), code)
}

func (s State) RemoveCoupon() State {
	return s.with(s.cloneLines(0), "")
}

func (s State) Clear() State {
	return State{}
}

func (s State) Lines() []Line {
	return s.cloneLines(0)
}

func (s State) Line(id string) (Line, bool) {
	if i := s.index(id); i >= 0 {
		return s.lines[i], true
	}
	return Line{}, false
}

func (s State) Len() int {
	return len(s.lines)
}

// ItemCount sums quantities over available lines.
func (s State) ItemCount() int {
	return s.itemCount
}

// Subtotal sums price x quantity over available lines.
func (s State) Subtotal() decimal.Decimal {
	return s.subtotal
}

func (s State) Coupon() string {
	return s.coupon
}

func (s State) Discount() decimal.Decimal {
	if s.coupon == "" {
		return decimal.Zero
	}
	return s.subtotal.Mul(DiscountRate).Round(2)
}

func (s State) Total() decimal.Decimal {
	return s.subtotal.Sub(s.Discount()).Round(2)
}

// CheckoutReady is the caller-side guard run before handing the cart to
// the order backend.
func (s State) CheckoutReady() error {
	if s.itemCount == 0 {
		return ErrNothingToCheckout
	}
	return nil
}

func (s State) Equal(other State) bool {
	return s.coupon == other.coupon &&
		s.itemCount == other.itemCount &&
		s.subtotal.Equal(other.subtotal) &&
		len(s.lines) == len(other.lines) &&
		(len(s.lines) == 0 || reflect.DeepEqual(s.lines, other.lines))
}

func (s State) index(id string) int {
	for i, l := range s.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (s State) cloneLines(extra int) []Line {
	lines := make([]Line, len(s.lines), len(s.lines)+extra)
	copy(lines, s.lines)
	return lines
}

func (s State) with(lines []Line, coupon string) State {
	next := State{lines: lines, coupon: coupon, subtotal: decimal.Zero}
	for _, l := range lines {
		if !l.Available {
			continue
		}
		next.itemCount += l.Quantity
		next.subtotal = next.subtotal.Add(l.Total())
	}
	return next
}

// ValidateCoupon normalizes a user-entered code.
func ValidateCoupon(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !couponPattern.MatchString(code) {
		return "", ErrInvalidCoupon
	}
	return code, nil
}
