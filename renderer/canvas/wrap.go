package canvasrenderer

import (
	"math"
	"strings"
	"unicode"
)

// measurer reports the width of s in mm.
type measurer interface {
	TextWidth(s string) float64
}

type textLine struct {
	Content string
	Width   float64
}

// wrapText 贪心换行：优先在空白处分割，单词超过限制时在词内拆分，并尊重显式换行。
// 宽度单位均为 mm；limit <= 0 表示不限宽。
func wrapText(content string, limit float64, face measurer) []textLine {
	if limit <= 0 {
		limit = math.MaxFloat64
	}
	var (
		lines   []textLine
		builder strings.Builder
		current float64
	)
	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, textLine{})
			}
			return
		}
		str := strings.TrimRightFunc(builder.String(), unicode.IsSpace)
		lines = append(lines, textLine{Content: str, Width: face.TextWidth(str)})
		builder.Reset()
		current = 0
	}
	appendToken := func(token string) {
		// 行首空白丢弃
		if builder.Len() == 0 && strings.TrimSpace(token) == "" {
			return
		}
		builder.WriteString(token)
		current += face.TextWidth(token)
	}

	for _, token := range tokenizeContent(content) {
		if token == "\n" {
			emit(true)
			continue
		}
		tokenWidth := face.TextWidth(token)
		if current > 0 && current+tokenWidth > limit {
			emit(false)
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}
		for _, chunk := range splitTokenByWidth(token, limit, face) {
			chunkWidth := face.TextWidth(chunk)
			if current > 0 && current+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk)
		}
	}
	emit(true)
	return lines
}

// fitText 截断到 limit 内，超出部分以省略号结尾。
func fitText(s string, limit float64, face measurer) string {
	if limit <= 0 || face.TextWidth(s) <= limit {
		return s
	}
	const ellipsis = "…"
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		cand := string(runes[:n]) + ellipsis
		if face.TextWidth(cand) <= limit {
			return cand
		}
	}
	return ""
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, face measurer) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if face.TextWidth(builder.String()) > limit && builder.Len() > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
