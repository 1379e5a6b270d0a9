package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

const (
	// ScopeTitleLength is how many runes of the requirements become the deliverable title.
	ScopeTitleLength = 64

	DefaultScopeTitle = "Custom deliverable"

	MaxTurnaroundDays = 365
)

// ScopeGenerator turns a buyer brief into the short scope statement shown on
// the offer before an order is placed.
type ScopeGenerator struct{}

func NewScopeGenerator() ScopeGenerator {
	return ScopeGenerator{}
}

// Generate returns one bullet per line, for example:
//
//	Deliverable: Logo for a bakery
//	Turnaround: 3 day(s)
//	Revisions: 2
//	Proof at milestones (link/file/screenshot)
//	Acceptance: meets requirements + final file/link delivered
func (g ScopeGenerator) Generate(requirements string, etaDays, revisions int) (string, error) {
	if etaDays < 1 || etaDays > MaxTurnaroundDays {
		return "", errs.NewValueIsOutOfRangeError("etaDays", etaDays, 1, MaxTurnaroundDays)
	}
	if revisions < 0 || revisions > order.MaxRevisionsAllowed {
		return "", errs.NewValueIsOutOfRangeError("revisions", revisions, 0, order.MaxRevisionsAllowed)
	}

	bullets := []string{
		"Deliverable: " + scopeTitle(requirements),
		fmt.Sprintf("Turnaround: %d day(s)", etaDays),
		fmt.Sprintf("Revisions: %d", revisions),
		"Proof at milestones (link/file/screenshot)",
		"Acceptance: meets requirements + final file/link delivered",
	}
	return strings.Join(bullets, "\n"), nil
}

func scopeTitle(requirements string) string {
	r := strings.TrimSpace(requirements)
	if r == "" {
		return DefaultScopeTitle
	}
	if utf8.RuneCountInString(r) <= ScopeTitleLength {
		return r
	}
	return string([]rune(r)[:ScopeTitleLength])
}
