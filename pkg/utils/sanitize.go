package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText 去除用户输入中的全部 HTML 标签并裁剪首尾空白
// 保留下来的文本按原样存储，bluemonday 产生的实体会被还原
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
