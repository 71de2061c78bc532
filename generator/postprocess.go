package generator

import (
	"strings"
)

// Excerpt 摘要取首段（去掉标题行），没有则取压缩后的前 limit 个字符。
func Excerpt(md string, limit int) string {
	md = strings.TrimSpace(md)
	digest := firstParagraph(md)
	if digest == "" {
		digest = strings.Join(strings.Fields(md), " ")
	}
	return truncate(digest, limit)
}

func firstParagraph(md string) string {
	lines := strings.Split(md, "\n")
	var b strings.Builder
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			if b.Len() > 0 {
				break
			}
			continue
		}
		if trimmed == "" {
			if b.Len() > 0 {
				break
			}
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(trimmed)
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
