// Package labels selects QSOs which still need paper QSL cards sent through
// the bureau and prints address labels for them.
package labels

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"adifc/adif"
	"adifc/layout"
)

// ErrNoMatches is returned when no QSO passed the filter. It is not a failure
// and the program reports it without producing any output.
var ErrNoMatches = errors.New("no QSOs matched the filter criteria")

// Selection is the result of filtering the log.
type Selection struct {
	Labels  []layout.Label
	Records []*adif.Record
	// Total is number of records seen in the log.
	Total int
}

// Select parses log text, filters records with crit and builds a label for
// every accepted record, preserving log order. Text is lower-cased before
// parsing, so criteria comparisons are case insensitive. Header is optional.
func Select(ctx context.Context, text string, crit adif.Criteria, b *Builder, log *zap.Logger) (*Selection, error) {
	text = strings.ToLower(text)
	if _, rest, err := adif.SplitHeader(text); err == nil {
		text = rest
	}

	sel := &Selection{}
	for _, c := range adif.SplitRecords(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sel.Total++
		rec := adif.ParseRecord(c.Body)
		q := adif.NewQSO(rec)
		if !crit.Accept(q) {
			log.Debug("QSO rejected", zap.Int("record", sel.Total), zap.String("call", q.Call),
				zap.String("dxcc", q.DXCC), zap.String("qsl_via", q.QSLVia),
				zap.String("qsl_sent", q.QSLSent), zap.String("qsl_rcvd", q.QSLRcvd))
			continue
		}

		label, err := b.Build(len(sel.Labels), q)
		if err != nil {
			return nil, err
		}
		sel.Labels = append(sel.Labels, label)
		sel.Records = append(sel.Records, rec)
	}

	if len(sel.Labels) == 0 {
		return sel, ErrNoMatches
	}
	return sel, nil
}
