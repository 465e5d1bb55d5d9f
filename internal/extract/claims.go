package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/paperverify/internal/model"
)

// contextRadius is how many characters around a token are kept for hint detection
const contextRadius = 50

// maxPlausibleValue caps parsed values; anything above is domain-implausible
// (1e9 still admits parameter counts like 710M)
const maxPlausibleValue = 1e9

// numberPattern matches a numeric token: digits with optional thousands
// commas, optional fraction, optional K/M/B magnitude suffix. RE2 has no
// lookahead, so the "suffix must not precede a lowercase letter" rule (which
// separates 1.2M from 12ms) is applied after matching.
var numberPattern = regexp.MustCompile(`[0-9,]+\.?[0-9]*[kKmMbB]?`)

// skipLinePattern matches administrative lines that never carry claims
var skipLinePattern = regexp.MustCompile(`\\usepackage|\\documentclass|\\bibliography|\\label\{|\\ref\{|\\cite`)

// modelPattern matches known model names with optional size variants
var modelPattern = regexp.MustCompile(`(?i)xgboost|arima|chronos[-\s]*(?:tiny|mini|small|large)?|moirai[-\s]*(?:small|base|large)?|dlinear|patchtst|timesfm`)

// metricKeywords maps a metric name to the phrases that identify it in
// context. Order matters: the first metric with any keyword present wins,
// so this is a slice rather than a map.
var metricKeywords = []struct {
	metric   string
	keywords []string
}{
	{"mae", []string{"mae", "mean absolute error"}},
	{"rmse", []string{"rmse", "root mean squared error"}},
	{"smape", []string{"smape", "symmetric mean absolute percentage"}},
	{"latency", []string{"latency", "ms", "millisecond", "inference time"}},
	{"vram", []string{"vram", "memory", "gb"}},
	{"accuracy", []string{"accuracy", "acc"}},
}

// ClaimExtractor scans document text for numeric claims
type ClaimExtractor struct{}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{}
}

// Scan extracts all numeric claims from the document text in a single
// line-oriented pass. Claims come back in document order.
func (e *ClaimExtractor) Scan(text string) []model.Claim {
	var claims []model.Claim

	for i, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "%") {
			continue
		}
		if skipLinePattern.MatchString(line) {
			continue
		}
		claims = append(claims, e.scanLine(line, i+1)...)
	}

	return claims
}

// scanLine extracts the claims from a single retained line
func (e *ClaimExtractor) scanLine(line string, lineNum int) []model.Claim {
	var claims []model.Claim

	for _, loc := range numberPattern.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]

		// A magnitude suffix followed by a lowercase letter is really a unit
		// abbreviation ("ms", "mb"); back it off the token.
		if isMagnitudeSuffix(line[end-1]) && end < len(line) && isLower(line[end]) {
			end--
		}

		raw := line[start:end]

		// Stray page numbers and small integers
		if len(raw) < 2 && !strings.Contains(raw, ".") {
			continue
		}

		value, ok := parseNumber(raw)
		if !ok {
			continue
		}
		if value == 0 || value > maxPlausibleValue {
			continue
		}

		ctxStart := start - contextRadius
		if ctxStart < 0 {
			ctxStart = 0
		}
		ctxEnd := end + contextRadius
		if ctxEnd > len(line) {
			ctxEnd = len(line)
		}
		context := line[ctxStart:ctxEnd]

		claims = append(claims, model.Claim{
			Value:      value,
			RawText:    raw,
			LineNumber: lineNum,
			Context:    context,
			MetricHint: identifyMetric(context),
			ModelHint:  identifyModel(context),
		})
	}

	return claims
}

// parseNumber parses a raw token, handling thousands commas and K/M/B suffixes
func parseNumber(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	if cleaned == "" {
		return 0, false
	}

	multiplier := 1.0
	last := cleaned[len(cleaned)-1]
	switch {
	case last == 'k' || last == 'K':
		multiplier = 1e3
		cleaned = cleaned[:len(cleaned)-1]
	case last == 'm' || last == 'M':
		multiplier = 1e6
		cleaned = cleaned[:len(cleaned)-1]
	case last == 'b' || last == 'B':
		multiplier = 1e9
		cleaned = cleaned[:len(cleaned)-1]
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v * multiplier, true
}

// identifyMetric returns the first metric whose any keyword occurs in the
// context window, or "" if none match
func identifyMetric(context string) string {
	lower := strings.ToLower(context)
	for _, entry := range metricKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.metric
			}
		}
	}
	return ""
}

// identifyModel returns the first model name mentioned in the context
// window, lower-cased, or "" if none match
func identifyModel(context string) string {
	if m := modelPattern.FindString(context); m != "" {
		return strings.ToLower(m)
	}
	return ""
}

func isMagnitudeSuffix(c byte) bool {
	switch c {
	case 'k', 'K', 'm', 'M', 'b', 'B':
		return true
	}
	return false
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
