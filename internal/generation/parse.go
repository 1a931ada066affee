package generation

import (
	"regexp"
	"strconv"
	"strings"

	"gmail-ai-assistant/internal/models"
)

// CategoryResult is the parsed outcome of a classification call
type CategoryResult struct {
	Category   models.Category
	Confidence int
	Rationale  string
}

var (
	categoryRe   = regexp.MustCompile(`(?i)Category:\s*(URGENT|IMPORTANT|LOW_PRIORITY)`)
	confidenceRe = regexp.MustCompile(`Confidence:\s*(\d+)`)
	rationaleRe  = regexp.MustCompile(`Rationale:\s*(.*)`)
)

// ParseCategoryResponse applies the lenient parsing policy for classify
// output. No category match defaults to LOW_PRIORITY, no confidence match
// defaults to 0, no rationale match defaults to "". Malformed output is never
// an error: the defaults are the deliberate safe fallback for this system,
// not data loss.
func ParseCategoryResponse(response string) CategoryResult {
	result := CategoryResult{Category: models.CategoryLowPriority}

	if m := categoryRe.FindStringSubmatch(response); m != nil {
		result.Category = models.Category(strings.ToUpper(m[1]))
	}
	if m := confidenceRe.FindStringSubmatch(response); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			result.Confidence = n
		}
	}
	if m := rationaleRe.FindStringSubmatch(response); m != nil {
		result.Rationale = strings.TrimSpace(m[1])
	}

	return result
}
