// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"
	KeyWarning = "warning"
	KeyInfo    = "info"

	// Catalog
	KeyProductNotFound    = "product.not_found"
	KeyCatalogUnavailable = "catalog.unavailable"
	KeyInvalidSortKey     = "catalog.invalid_sort"
	KeyInvalidPriceRange  = "catalog.invalid_price_range"

	// Cart
	KeyCartItemAdded       = "cart.item_added"
	KeyCartItemUnavailable = "cart.item_unavailable"
	KeyCartItemUpdated     = "cart.item_updated"
	KeyCartItemRemoved     = "cart.item_removed"
	KeyCartItemNotInCart   = "cart.item_not_in_cart"
	KeyCartCleared         = "cart.cleared"
	KeyCartCouponApplied   = "cart.coupon_applied"
	KeyCartCouponRemoved   = "cart.coupon_removed"
	KeyCartCouponInvalid   = "cart.coupon_invalid"
	KeyCartEmpty           = "cart.empty"
	KeyCartCheckoutReady   = "cart.checkout_ready"
	KeyCartUndo            = "cart.undo"

	// Session
	KeySessionRequired = "session.required"
	KeySessionInvalid  = "session.invalid"
	KeySessionExpired  = "session.expired"
	KeySessionCreated  = "session.created"

	// Notifications
	KeyNotificationNotFound  = "notification.not_found"
	KeyNotificationDismissed = "notification.dismissed"
	KeyNotificationsCleared  = "notification.cleared"

	// Validation
	KeyValidationFailed   = "validation.failed"
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Server
	KeyInternalError     = "server.internal_error"
	KeyRateLimitExceeded = "server.rate_limit_exceeded"
	KeyRouteNotFound     = "server.route_not_found"
)
