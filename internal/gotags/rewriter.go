package gotags

import (
	"errors"
	"sort"

	"github.com/bethropolis/gotags/internal/logger"
	"github.com/bethropolis/gotags/internal/types"
)

// Result collects what one Run did.
type Result struct {
	Bodies       []types.Span  // struct bodies found, in pre-edit offsets
	Replacements []Replacement // applied edits, in order
	Errors       []error       // scan failures, one per failed selection at most
}

// Changed reports whether any replacement was applied.
func (r Result) Changed() bool {
	return len(r.Replacements) > 0
}

// Rewriter applies one action to every struct found in a set of selections.
type Rewriter struct {
	doc    Document
	action Action
}

// NewRewriter creates a rewriter for doc.
func NewRewriter(doc Document, action Action) *Rewriter {
	return &Rewriter{doc: doc, action: action}
}

// Bodies returns the struct bodies whose headers lie in sel, expanded to
// whole lines. Scanning stops at the first failure, and the bodies found so
// far are returned with the error.
func (r *Rewriter) Bodies(sel types.Span) ([]types.Span, error) {
	var bodies []types.Span
	begin := r.doc.Line(sel.Begin).Begin
	limit := r.doc.Line(sel.End).End
	for begin < limit {
		body, err := FindStructBody(r.doc, begin, limit)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return bodies, err
		}
		bodies = append(bodies, body)
		begin = body.End + 1
	}
	return bodies, nil
}

// Run rewrites every struct body found in selections. Failures in one
// selection are recorded and do not stop the others. Bodies are rewritten in
// buffer order, each shifted by the length change of the edits before it.
func (r *Rewriter) Run(selections []types.Span) Result {
	var res Result
	seen := make(map[types.Span]struct{})
	for _, sel := range selections {
		bodies, err := r.Bodies(sel)
		for _, b := range bodies {
			if _, dup := seen[b]; dup {
				continue
			}
			seen[b] = struct{}{}
			res.Bodies = append(res.Bodies, b)
		}
		if err != nil {
			logger.Debugf("gotags: selection %s: %v", sel, err)
			res.Errors = append(res.Errors, err)
		}
	}
	if len(res.Bodies) == 0 {
		logger.DebugTagf("gotags", "nothing to do")
		return res
	}
	sort.Slice(res.Bodies, func(i, j int) bool { return res.Bodies[i].Begin < res.Bodies[j].Begin })

	offset := 0
	for _, body := range res.Bodies {
		shifted := body.Shift(offset)
		logger.DebugTagf("gotags", "struct body %s:\n%s", shifted, r.doc.Substr(shifted))
		applied, err := RewriteStructBody(r.doc, shifted, r.action)
		for _, rep := range applied {
			offset += rep.Delta()
		}
		res.Replacements = append(res.Replacements, applied...)
		if err != nil {
			res.Errors = append(res.Errors, err)
			break
		}
	}
	return res
}
