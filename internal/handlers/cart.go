// internal/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/cart"
	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sess := middleware.MustSession(c)
	h.respond(c, sess, h.cartService.Summary(sess), nil)
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sess := middleware.MustSession(c)

	var req services.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.cartService.Add(c.Request.Context(), sess, utils.GetLangFromContext(c), req)
	h.respond(c, sess, summary, err)
}

// PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sess := middleware.MustSession(c)

	var req services.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.cartService.Update(c.Request.Context(), sess, utils.GetLangFromContext(c), c.Param("id"), req)
	h.respond(c, sess, summary, err)
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sess := middleware.MustSession(c)

	summary, err := h.cartService.Remove(c.Request.Context(), sess, utils.GetLangFromContext(c), c.Param("id"))
	h.respond(c, sess, summary, err)
}

// POST /cart/coupon
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	sess := middleware.MustSession(c)

	var req services.CouponRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.cartService.ApplyCoupon(c.Request.Context(), sess, utils.GetLangFromContext(c), req)
	h.respond(c, sess, summary, err)
}

// DELETE /cart/coupon
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	sess := middleware.MustSession(c)
	summary := h.cartService.RemoveCoupon(c.Request.Context(), sess, utils.GetLangFromContext(c))
	h.respond(c, sess, summary, nil)
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sess := middleware.MustSession(c)
	summary := h.cartService.Clear(c.Request.Context(), sess, utils.GetLangFromContext(c))
	h.respond(c, sess, summary, nil)
}

// POST /cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	sess := middleware.MustSession(c)

	summary, err := h.cartService.Checkout(c.Request.Context(), sess, utils.GetLangFromContext(c))
	h.respond(c, sess, summary, err)
}

// respond writes the cart together with the session's active notifications,
// so clients see the feedback a transition produced.
func (h *CartHandler) respond(c *gin.Context, sess *services.Session, summary cart.Summary, err error) {
	lang := utils.GetLangFromContext(c)
	notifications := sess.Notifications.List()

	switch {
	case err == nil:
		utils.SuccessResponse(c, gin.H{
			"cart":          summary,
			"notifications": notifications,
		})
	case errors.Is(err, catalog.ErrProductNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyProductNotFound), gin.H{"notifications": notifications})
	case errors.Is(err, services.ErrItemNotInCart):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyCartItemNotInCart), gin.H{"notifications": notifications})
	case errors.Is(err, cart.ErrInvalidCoupon):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "INVALID_COUPON", i18n.T(lang, i18n.KeyCartCouponInvalid), gin.H{"notifications": notifications})
	case errors.Is(err, cart.ErrNothingToCheckout):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "EMPTY_CART", i18n.T(lang, i18n.KeyCartEmpty), gin.H{"cart": summary, "notifications": notifications})
	default:
		catalogUnavailable(c, err)
	}
}

// bindJSON decodes and validates the request body, writing the error
// response itself when it fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}
