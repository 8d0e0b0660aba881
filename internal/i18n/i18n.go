// Package i18n 提供接口提示语的多语言文案
package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleEN = "en-US"
	LocaleZH = "zh-CN"

	DefaultLocale = LocaleEN
)

var (
	supportedTags = []language.Tag{language.AmericanEnglish, language.SimplifiedChinese}
	matcher       = language.NewMatcher(supportedTags)
)

// T 返回文案，缺失时依次回退到默认语言与 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 按文案模板格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 依次读取 lang 参数与 Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return Normalize(lang)
	}
	return Negotiate(c.GetHeader("Accept-Language"))
}

// Negotiate 按 Accept-Language 选择最接近的支持语言
func Negotiate(acceptLanguage string) string {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return localeOf(supportedTags[index])
}

// Normalize 把任意语言标签归一为支持的语言
func Normalize(locale string) string {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLocale
	}
	return localeOf(supportedTags[index])
}

func localeOf(tag language.Tag) string {
	if tag == language.SimplifiedChinese {
		return LocaleZH
	}
	return LocaleEN
}

func lookup(locale, key string) (string, bool) {
	messages, ok := catalog[locale]
	if !ok {
		return "", false
	}
	msg, ok := messages[key]
	return msg, ok
}
