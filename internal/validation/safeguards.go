// Package validation screens user supplied text before it is placed into a
// generation prompt.
package validation

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// InjectionCheckResult holds the result of a basic injection heuristic check.
type InjectionCheckResult struct {
	IsSafe           bool     // Whether the content passed the basic heuristic check
	DetectedKeywords []string // Any suspicious keywords found
	Reason           string   // Human-readable explanation
}

// BasicInjectionKeywords contains trigger words that suggest prompt injection attempts.
// This is intentionally not comprehensive - it's a fallback heuristic only.
var BasicInjectionKeywords = []string{
	"ignore previous",
	"ignore all",
	"disregard",
	"forget everything",
	"system prompt",
	"act as",
	"pretend",
	"roleplay",
	"new instructions",
}

// injectionPatterns catch phrasings the keyword list misses.
var injectionPatterns = map[string]*regexp.Regexp{
	"ignore instructions": regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+instructions?`),
	"forget previous":     regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior)`),
	"you are now":         regexp.MustCompile(`(?i)you\s+are\s+now\b`),
}

// CheckBasicHeuristics performs a keyword and pattern check for obvious injection attempts.
func CheckBasicHeuristics(text string) *InjectionCheckResult {
	lowerText := strings.ToLower(text)
	var detected []string

	for _, keyword := range BasicInjectionKeywords {
		if strings.Contains(lowerText, keyword) {
			detected = append(detected, keyword)
		}
	}
	for name, pattern := range injectionPatterns {
		if pattern.MatchString(text) {
			detected = append(detected, name)
		}
	}

	if len(detected) == 0 {
		return &InjectionCheckResult{IsSafe: true}
	}

	sort.Strings(detected)
	return &InjectionCheckResult{
		IsSafe:           false,
		DetectedKeywords: detected,
		Reason:           "detected potential injection keywords: " + strings.Join(detected, ", "),
	}
}

// CheckFields runs CheckBasicHeuristics over every field and returns only the unsafe ones.
func CheckFields(fields map[string]string) map[string]*InjectionCheckResult {
	flagged := make(map[string]*InjectionCheckResult)
	for name, value := range fields {
		if result := CheckBasicHeuristics(value); !result.IsSafe {
			flagged[name] = result
		}
	}
	return flagged
}

// LogInjectionWarning logs a warning if suspicious content is detected.
// It does NOT block processing - just logs for awareness.
func LogInjectionWarning(logger *zap.Logger, result *InjectionCheckResult, source string) {
	if logger == nil || result == nil || result.IsSafe {
		return
	}
	logger.Warn("potential prompt injection detected",
		zap.String("source", source),
		zap.Strings("keywords", result.DetectedKeywords),
	)
}
