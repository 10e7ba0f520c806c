package utils

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// IsTransient reports whether a failed model call looks temporary (rate limits,
// 5xx, timeouts). Nothing retries on it; callers use it to pick a status code
// or log level.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		return openAIErr.HTTPStatusCode >= 500 || openAIErr.HTTPStatusCode == 429
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500 || reqErr.HTTPStatusCode == 429
	}
	errMsg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"rate limit",
		"500 internal server error",
		"502 bad gateway",
		"503 service unavailable",
		"504 gateway timeout",
		"timeout",
		"connection reset by peer",
		"context deadline exceeded",
	} {
		if strings.Contains(errMsg, marker) {
			return true
		}
	}
	return false
}

// FenceTag returns the info string of the first ``` fence in text, lowercased,
// or "" when text has no fence.
func FenceTag(text string) string {
	idx := strings.Index(text, "```")
	if idx == -1 {
		return ""
	}
	rest := text[idx+3:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		rest = rest[:nl]
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// DetermineLanguage labels generated code from a fence tag ("astro", "ts")
// or a filename ("src/pages/index.astro").
func DetermineLanguage(hint string) string {
	lower := strings.ToLower(strings.TrimSpace(hint))
	if lower == "" {
		return "Unknown"
	}
	ext := filepath.Ext(lower)
	if ext == "" {
		ext = "." + lower
	}
	switch ext {
	case ".astro":
		return "Astro"
	case ".html":
		return "HTML"
	case ".css":
		return "CSS"
	case ".js", ".mjs", ".cjs", ".javascript":
		return "JavaScript"
	case ".jsx":
		return "JSX"
	case ".ts", ".typescript":
		return "TypeScript"
	case ".tsx":
		return "TSX"
	case ".json":
		return "JSON"
	case ".md", ".markdown":
		return "Markdown"
	case ".yaml", ".yml":
		return "YAML"
	case ".toml":
		return "TOML"
	case ".sh", ".bash", ".shell":
		return "Shell"
	case ".svg":
		return "SVG"
	default:
		base := filepath.Base(lower)
		if strings.Contains(base, "tailwind.config") || strings.Contains(base, "astro.config") {
			return "Config"
		}
		if strings.Contains(base, "package.json") || strings.Contains(base, "tsconfig.json") {
			return "JSON"
		}
		return "Unknown"
	}
}
