package adif

import (
	"slices"
	"strings"
)

// Criteria decides which QSOs still need a paper QSL sent through the bureau.
// All comparisons are case-insensitive.
type Criteria struct {
	// ExcludeDXCC lists entity codes which never get labels.
	ExcludeDXCC []string
	// RequireVia - QSL_VIA must contain at least one of these.
	RequireVia []string
	// ExcludeStatus - neither QSL_SENT nor QSL_RCVD may contain any of these.
	ExcludeStatus []string
}

// DefaultCriteria returns bureau selection rules.
func DefaultCriteria() Criteria {
	return Criteria{
		ExcludeDXCC:   []string{"291"},
		RequireVia:    []string{"buro", "bureau"},
		ExcludeStatus: []string{"cardc:", "label printed"},
	}
}

// Accept reports whether QSO passes all rules. It depends only on DXCC,
// QSL_VIA, QSL_SENT and QSL_RCVD.
func (c Criteria) Accept(q QSO) bool {
	if slices.ContainsFunc(c.ExcludeDXCC, func(code string) bool { return strings.EqualFold(q.DXCC, code) }) {
		return false
	}
	if !containsAny(q.QSLVia, c.RequireVia) {
		return false
	}
	if containsAny(q.QSLSent, c.ExcludeStatus) || containsAny(q.QSLRcvd, c.ExcludeStatus) {
		return false
	}
	return true
}

func containsAny(s string, subs []string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
