// Package format normalizes generated model output for email delivery.
package format

import (
	"regexp"
	"strings"
)

var (
	fenceRe      = regexp.MustCompile("^```[a-zA-Z]*\n|\n```$")
	blankRunsRe  = regexp.MustCompile(`\n{3,}`)
	subjectEcho  = regexp.MustCompile(`(?i)^subject:[^\n]*\n+`)
	trailingWSRe = regexp.MustCompile(`[ \t]+\n`)
)

// CleanBody normalizes model-generated prose into plain email body text.
// Models frequently wrap output in a markdown code fence, echo a
// "Subject:" line at the top, or emit runs of blank lines; all of these
// leak into delivered email verbatim if left alone.
func CleanBody(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.TrimSpace(s)
	s = fenceRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = subjectEcho.ReplaceAllString(s, "")
	s = trailingWSRe.ReplaceAllString(s, "\n")
	s = blankRunsRe.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
