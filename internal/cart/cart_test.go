package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/catalog"
)

func item(id string, price float64, available bool) Item {
	return Item{ID: id, Name: "Produto " + id, Price: catalog.Price(price), Store: "Loja", Available: available}
}

func populated() State {
	return New().
		AddItem(item("a", 10, true), 2).
		AddItem(item("b", 25.5, true), 1).
		AddItem(item("c", 99, false), 3)
}

func TestAddItem_CreatesLine(t *testing.T) {
	s := New().AddItem(item("a", 10, true), 1)

	require.Equal(t, 1, s.Len())
	line, ok := s.Line("a")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, 1, s.ItemCount())
	assert.True(t, s.Subtotal().Equal(decimal.NewFromInt(10)))
}

func TestAddItem_MergesOnReAdd(t *testing.T) {
	p := item("a", 10, true)
	s := New().AddItem(p, 2).AddItem(p, 3)

	require.Equal(t, 1, s.Len())
	line, _ := s.Line("a")
	assert.Equal(t, 5, line.Quantity)
}

func TestAddItem_RefreshesDisplayFields(t *testing.T) {
	s := New().AddItem(item("a", 10, true), 1)

	renamed := item("a", 12, true)
	renamed.Name = "Novo nome"
	s = s.AddItem(renamed, 1)

	line, _ := s.Line("a")
	assert.Equal(t, "Novo nome", line.Name)
	assert.Equal(t, catalog.Price(12), line.Price)
	assert.Equal(t, 2, line.Quantity)
}

func TestAddItem_NonPositiveQuantityIsNoOp(t *testing.T) {
	s := populated()

	assert.True(t, s.Equal(s.AddItem(item("z", 5, true), 0)))
	assert.True(t, s.Equal(s.AddItem(item("z", 5, true), -2)))
	assert.True(t, s.Equal(s.AddItem(item("a", 10, true), -1)))
	assert.True(t, s.Equal(s.AddItem(Item{}, 1)))
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	s := populated().AddItem(item("a", 10, true), 1)

	var order []string
	for _, l := range s.Lines() {
		order = append(order, l.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestUpdateQuantity(t *testing.T) {
	s := populated().UpdateQuantity("a", 7)

	line, _ := s.Line("a")
	assert.Equal(t, 7, line.Quantity)
	assert.Equal(t, 8, s.ItemCount())
}

func TestUpdateQuantity_ZeroEquivalentToRemove(t *testing.T) {
	s := populated()
	for _, id := range []string{"a", "b", "c"} {
		for _, q := range []int{0, -1, -50} {
			assert.True(t, s.UpdateQuantity(id, q).Equal(s.RemoveItem(id)), "id=%s q=%d", id, q)
		}
	}
}

func TestUpdateQuantity_UnknownIDIsNoOp(t *testing.T) {
	s := populated()
	assert.True(t, s.Equal(s.UpdateQuantity("missing", 4)))
	assert.True(t, s.Equal(s.UpdateQuantity("missing", 0)))
}

func TestRemoveItem(t *testing.T) {
	s := populated().RemoveItem("b")

	_, ok := s.Line("b")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.ItemCount())
}

func TestRemoveItem_UnknownIDIsNoOp(t *testing.T) {
	s := populated()
	assert.True(t, s.Equal(s.RemoveItem("missing")))
	assert.True(t, New().Equal(New().RemoveItem("missing")))
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	s := populated()
	before := s.Lines()

	s.AddItem(item("a", 10, true), 5)
	s.UpdateQuantity("b", 9)
	s.RemoveItem("c")
	s.ApplyCoupon("PROMO10")

	assert.Equal(t, before, s.Lines())
	assert.Empty(t, s.Coupon())
}

func TestLinesReturnsCopy(t *testing.T) {
	s := populated()
	lines := s.Lines()
	lines[0].Quantity = 100

	line, _ := s.Line("a")
	assert.Equal(t, 2, line.Quantity)
}

func TestAggregatesExcludeUnavailableLines(t *testing.T) {
	s := populated()

	var count int
	sum := decimal.Zero
	for _, l := range s.Lines() {
		if l.Available {
			count += l.Quantity
			sum = sum.Add(l.Total())
		}
	}

	assert.Equal(t, count, s.ItemCount())
	assert.Equal(t, 3, s.ItemCount())
	assert.True(t, s.Subtotal().Equal(sum))
	assert.Equal(t, "45.50", s.Subtotal().StringFixed(2))
}

func TestCouponMath(t *testing.T) {
	s := New().AddItem(item("a", 25, true), 4).ApplyCoupon("PROMO10")

	assert.Equal(t, "100.00", s.Subtotal().StringFixed(2))
	assert.Equal(t, "10.00", s.Discount().StringFixed(2))
	assert.Equal(t, "90.00", s.Total().StringFixed(2))
	assert.True(t, s.Total().Equal(decimal.RequireFromString("90")))

	cleared := s.RemoveCoupon()
	assert.Empty(t, cleared.Coupon())
	assert.True(t, cleared.Discount().IsZero())
	assert.Equal(t, "100.00", cleared.Total().StringFixed(2))
}

func TestCouponMath_RoundsToCents(t *testing.T) {
	s := New().AddItem(item("a", 19.99, true), 1).ApplyCoupon("PROMO10")

	assert.Equal(t, "2.00", s.Discount().StringFixed(2))
	assert.Equal(t, "17.99", s.Total().StringFixed(2))
}

func TestApplyCoupon_BlankClears(t *testing.T) {
	s := populated().ApplyCoupon("PROMO10").ApplyCoupon("  ")
	assert.Empty(t, s.Coupon())
}

func TestCouponSurvivesTransitions(t *testing.T) {
	s := populated().ApplyCoupon("PROMO10").AddItem(item("d", 1, true), 1).RemoveItem("a")
	assert.Equal(t, "PROMO10", s.Coupon())
}

func TestCheckoutReady(t *testing.T) {
	assert.ErrorIs(t, New().CheckoutReady(), ErrNothingToCheckout)

	onlyUnavailable := New().AddItem(item("c", 99, false), 1)
	assert.ErrorIs(t, onlyUnavailable.CheckoutReady(), ErrNothingToCheckout)

	assert.NoError(t, populated().CheckoutReady())
}

func TestClear(t *testing.T) {
	s := populated().ApplyCoupon("PROMO10").Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Coupon())
	assert.True(t, s.Equal(New()))
}

func TestValidateCoupon(t *testing.T) {
	code, err := ValidateCoupon("  promo10 ")
	require.NoError(t, err)
	assert.Equal(t, "PROMO10", code)

	for _, bad := range []string{"", "ab", "com espaço", "desconto-10", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"} {
		_, err := ValidateCoupon(bad)
		assert.ErrorIs(t, err, ErrInvalidCoupon, bad)
	}
}

func TestItemFromProduct(t *testing.T) {
	original := catalog.Price(30)
	p := catalog.Product{ID: "p1", Name: "Caneca", Price: 20, OriginalPrice: &original, Image: "caneca.jpg", Store: "Casa", Available: true}

	assert.Equal(t, Item{
		ID:            "p1",
		Name:          "Caneca",
		Price:         20,
		OriginalPrice: &original,
		Image:         "caneca.jpg",
		Store:         "Casa",
		Available:     true,
	}, ItemFromProduct(p))
}

func TestSummary(t *testing.T) {
	s := populated().ApplyCoupon("PROMO10")
	summary := s.Summary()

	assert.Len(t, summary.Lines, 3)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, "45.50", summary.Subtotal)
	assert.Equal(t, "4.55", summary.Discount)
	assert.Equal(t, "40.95", summary.Total)

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"product_id":"a"`)
	assert.Contains(t, string(data), `"coupon":"PROMO10"`)
}
