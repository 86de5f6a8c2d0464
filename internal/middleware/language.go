package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tadreeb/academy/internal/pkg/i18n"
)

// Context keys set by the middleware chain
const (
	ContextKeyLang      = "lang"
	ContextKeyRequestID = "requestID"
	ContextKeyUserID    = "userID"
	ContextKeyEmail     = "email"
	ContextKeyRole      = "role"
)

// LangCookie is the cookie the SPA writes when the visitor toggles the language
const LangCookie = "lang"

// Language negotiates the request language and stores it on the context.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(LangCookie)
		lang := i18n.Negotiate(c.Query("lang"), cookie, c.GetHeader("Accept-Language"))

		c.Set(ContextKeyLang, lang)
		c.Header("Content-Language", lang.String())
		c.Header("Vary", "Accept-Language, Cookie")
		c.Next()
	}
}

// LangFrom returns the negotiated language, or the default when the
// Language middleware did not run.
func LangFrom(c *gin.Context) i18n.Lang {
	if v, ok := c.Get(ContextKeyLang); ok {
		if lang, ok := v.(i18n.Lang); ok {
			return lang
		}
	}
	return i18n.DefaultLang
}

// RequestIDFrom returns the id assigned by RequestLogger
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
