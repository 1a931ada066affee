// Package cleaner strips model reasoning artifacts out of generated reply
// text before it is persisted or sent.
package cleaner

import (
	"regexp"
	"strings"
)

var (
	thinkBlockRe   = regexp.MustCompile(`(?s)<think>.*?</think>`)
	metaOpenerRe   = regexp.MustCompile(`(?m)^(Let me|I'll|I will|Here's|Here is).*$`)
	thinkingLineRe = regexp.MustCompile(`(?im)^.*thinking process.*$`)
	thoughtLineRe  = regexp.MustCompile(`(?im)^.*thought process.*$`)
	subjectMetaRe  = regexp.MustCompile(`(?m)^\*\*Subject:\*\*.*$`)
	categoryMetaRe = regexp.MustCompile(`(?m)^\*\*Category:\*\*.*$`)
	blankRunRe     = regexp.MustCompile(`\n\s*\n`)
)

// Clean removes thinking blocks, meta-narration lines, and stray metadata
// labels from generated text, then collapses blank-line runs and trims. The
// steps are order-sensitive. Clean is deterministic and idempotent:
// Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	text = thinkBlockRe.ReplaceAllString(text, "")
	text = metaOpenerRe.ReplaceAllString(text, "")
	text = thinkingLineRe.ReplaceAllString(text, "")
	text = thoughtLineRe.ReplaceAllString(text, "")
	text = subjectMetaRe.ReplaceAllString(text, "")
	text = categoryMetaRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
