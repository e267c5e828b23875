// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/i18n"
)

// I18nMiddleware stores the best bundled locale for Accept-Language under
// the "lang" context key.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Match(c.GetHeader("Accept-Language"))
		c.Set("lang", lang)
		c.Header("Content-Language", i18n.LanguageTag(lang).String())
		c.Next()
	}
}
