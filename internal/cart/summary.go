// internal/cart/summary.go
package cart

// Summary is the serializable view of a State. Money is rendered with two
// decimal places.
type Summary struct {
	Lines     []Line `json:"lines"`
	ItemCount int    `json:"item_count"`
	Subtotal  string `json:"subtotal"`
	Discount  string `json:"discount"`
	Total     string `json:"total"`
	Coupon    string `json:"coupon,omitempty"`
}

func (s State) Summary() Summary {
	return Summary{
		Lines:     s.Lines(),
		ItemCount: s.itemCount,
		Subtotal:  s.Subtotal().StringFixed(2),
		Discount:  s.Discount().StringFixed(2),
		Total:     s.Total().StringFixed(2),
		Coupon:    s.coupon,
	}
}
