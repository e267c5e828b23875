// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/cart"
	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/notify"
)

var ErrItemNotInCart = errors.New("item not in cart")

// CartService applies cart transitions to a session and reports the
// outcome through the notification queue found in ctx.
type CartService struct {
	catalog       *CatalogService
	notifications *NotificationService
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=999"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=999"`
}

type CouponRequest struct {
	Code string `json:"code" validate:"required,coupon_code"`
}

func NewCartService(catalogService *CatalogService, notificationService *NotificationService) *CartService {
	return &CartService{
		catalog:       catalogService,
		notifications: notificationService,
	}
}

func (s *CartService) Summary(sess *Session) cart.Summary {
	return sess.Cart().Summary()
}

// Add looks the product up and merges quantity into the cart. Unavailable
// products are still added but reported with a warning.
func (s *CartService) Add(ctx context.Context, sess *Session, lang string, req AddItemRequest) (cart.Summary, error) {
	q := notify.MustFromContext(ctx)

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.catalog.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			s.notifications.Notify(q, lang, notify.SeverityError, i18n.KeyProductNotFound)
		} else {
			s.notifications.Notify(q, lang, notify.SeverityError, i18n.KeyCatalogUnavailable)
		}
		return sess.Cart().Summary(), err
	}

	_, next := sess.Update(func(state cart.State) cart.State {
		return state.AddItem(cart.ItemFromProduct(product), quantity)
	})

	if product.Available {
		s.notifications.Notify(q, lang, notify.SeveritySuccess, i18n.KeyCartItemAdded, product.Name)
	} else {
		s.notifications.Notify(q, lang, notify.SeverityWarning, i18n.KeyCartItemUnavailable, product.Name)
	}

	logrus.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"product_id": product.ID,
		"quantity":   quantity,
	}).Debug("Cart item added")

	return next.Summary(), nil
}

// Update sets an absolute quantity; zero removes the line.
func (s *CartService) Update(ctx context.Context, sess *Session, lang string, productID string, req UpdateItemRequest) (cart.Summary, error) {
	if req.Quantity <= 0 {
		return s.Remove(ctx, sess, lang, productID)
	}

	q := notify.MustFromContext(ctx)

	prev, next := sess.Update(func(state cart.State) cart.State {
		return state.UpdateQuantity(productID, req.Quantity)
	})

	line, ok := prev.Line(productID)
	if !ok {
		return next.Summary(), fmt.Errorf("%w: %s", ErrItemNotInCart, productID)
	}

	s.notifications.Notify(q, lang, notify.SeverityInfo, i18n.KeyCartItemUpdated, line.Name, req.Quantity)
	return next.Summary(), nil
}

// Remove drops the line and offers an undo action that restores it.
func (s *CartService) Remove(ctx context.Context, sess *Session, lang string, productID string) (cart.Summary, error) {
	q := notify.MustFromContext(ctx)

	prev, next := sess.Update(func(state cart.State) cart.State {
		return state.RemoveItem(productID)
	})

	line, ok := prev.Line(productID)
	if !ok {
		return next.Summary(), fmt.Errorf("%w: %s", ErrItemNotInCart, productID)
	}

	undo := &notify.Action{
		Label: i18n.T(lang, i18n.KeyCartUndo),
		Callback: func() {
			sess.Update(func(state cart.State) cart.State {
				return state.AddItem(line.Item, line.Quantity)
			})
		},
	}
	s.notifications.NotifyWithAction(q, lang, notify.SeverityInfo, undo, i18n.KeyCartItemRemoved, line.Name)

	return next.Summary(), nil
}

func (s *CartService) ApplyCoupon(ctx context.Context, sess *Session, lang string, req CouponRequest) (cart.Summary, error) {
	q := notify.MustFromContext(ctx)

	code, err := cart.ValidateCoupon(req.Code)
	if err != nil {
		s.notifications.Notify(q, lang, notify.SeverityError, i18n.KeyCartCouponInvalid)
		return sess.Cart().Summary(), err
	}

	_, next := sess.Update(func(state cart.State) cart.State {
		return state.ApplyCoupon(code)
	})

	s.notifications.Notify(q, lang, notify.SeveritySuccess, i18n.KeyCartCouponApplied, code)
	return next.Summary(), nil
}

func (s *CartService) RemoveCoupon(ctx context.Context, sess *Session, lang string) cart.Summary {
	q := notify.MustFromContext(ctx)

	prev, next := sess.Update(func(state cart.State) cart.State {
		return state.RemoveCoupon()
	})

	if prev.Coupon() != "" {
		s.notifications.Notify(q, lang, notify.SeverityInfo, i18n.KeyCartCouponRemoved)
	}
	return next.Summary()
}

func (s *CartService) Clear(ctx context.Context, sess *Session, lang string) cart.Summary {
	q := notify.MustFromContext(ctx)

	_, next := sess.Update(func(state cart.State) cart.State {
		return state.Clear()
	})

	s.notifications.Notify(q, lang, notify.SeverityInfo, i18n.KeyCartCleared)
	return next.Summary()
}

// Checkout only verifies the cart can be handed to the order backend; it
// places no order.
func (s *CartService) Checkout(ctx context.Context, sess *Session, lang string) (cart.Summary, error) {
	q := notify.MustFromContext(ctx)
	state := sess.Cart()

	if err := state.CheckoutReady(); err != nil {
		s.notifications.Notify(q, lang, notify.SeverityWarning, i18n.KeyCartEmpty)
		return state.Summary(), err
	}

	s.notifications.Notify(q, lang, notify.SeveritySuccess, i18n.KeyCartCheckoutReady)
	return state.Summary(), nil
}
