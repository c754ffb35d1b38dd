// Package i18n resolves user-facing API messages in Arabic and English.
// Arabic is the primary language of the directory; English is the fallback
// for clients that ask for it.
package i18n

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.Arabic, // default
	language.English,
}

var matcher = language.NewMatcher(supported)

// Lang is a resolved UI language
type Lang string

const (
	LangArabic  Lang = "ar"
	LangEnglish Lang = "en"
)

// Match resolves an Accept-Language header (or explicit ?lang= value) to a
// supported language, defaulting to Arabic.
func Match(acceptLanguage string) Lang {
	if acceptLanguage == "" {
		return LangArabic
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LangArabic
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return LangArabic
	}
	if supported[idx] == language.English {
		return LangEnglish
	}
	return LangArabic
}

// messages maps message keys to per-language text
var messages = map[string]map[Lang]string{
	"error.not_found": {
		LangArabic:  "العنصر المطلوب غير موجود",
		LangEnglish: "The requested item was not found",
	},
	"error.unauthorized": {
		LangArabic:  "يجب تسجيل الدخول للمتابعة",
		LangEnglish: "You must sign in to continue",
	},
	"error.forbidden": {
		LangArabic:  "ليس لديك صلاحية لهذا الإجراء",
		LangEnglish: "You do not have permission for this action",
	},
	"error.validation": {
		LangArabic:  "البيانات المدخلة غير صالحة",
		LangEnglish: "The submitted data is invalid",
	},
	"error.conflict": {
		LangArabic:  "العنصر موجود مسبقاً",
		LangEnglish: "The item already exists",
	},
	"error.internal": {
		LangArabic:  "حدث خطأ غير متوقع، حاول مرة أخرى لاحقاً",
		LangEnglish: "An unexpected error occurred, please try again later",
	},
	"review.submitted": {
		LangArabic:  "تم استلام تقييمك وسيظهر بعد المراجعة",
		LangEnglish: "Your review was received and will appear after moderation",
	},
	"request.submitted": {
		LangArabic:  "تم استلام طلبك وسيتم مراجعته قريباً",
		LangEnglish: "Your request was received and will be reviewed soon",
	},
	"company.claim_pending": {
		LangArabic:  "طلب ملكية الشركة قيد المراجعة",
		LangEnglish: "Your company claim is pending review",
	},
}

// T returns the message for key in lang, falling back to Arabic and then to
// the key itself when nothing is registered.
func T(lang Lang, key string) string {
	byLang, ok := messages[key]
	if !ok {
		return key
	}
	if msg, ok := byLang[lang]; ok {
		return msg
	}
	if msg, ok := byLang[LangArabic]; ok {
		return msg
	}
	return key
}
