package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/morabaat/backend/internal/infrastructure/i18n"
)

// LangKey is the gin context key for the negotiated response language
const LangKey = "lang"

// Language negotiates the response language from Accept-Language. Arabic
// is the site default; English is the only alternative.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Match(c.GetHeader("Accept-Language"))
		c.Set(LangKey, lang)
		c.Header("Content-Language", string(lang))
		c.Next()
	}
}

// GetLang returns the negotiated language for the current request
func GetLang(c *gin.Context) i18n.Lang {
	if v, ok := c.Get(LangKey); ok {
		if lang, ok := v.(i18n.Lang); ok {
			return lang
		}
	}
	return i18n.LangArabic
}
