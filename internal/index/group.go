package index

import (
	"fmt"

	"github.com/arxlib/searchd/internal/domain"
	"github.com/arxlib/searchd/internal/domain/query"
)

// Expr is a node in a precedence-grouped expression tree. Leaves are
// fielded terms; internal nodes join two subtrees with a boolean operator.
type Expr interface {
	isExpr()
}

// Leaf wraps a single fielded term.
type Leaf struct {
	Term query.FieldedSearchTerm
}

// Node is a binary (left, operator, right) group. NOT is binary here: it
// always modifies the right operand of a preceding left operand.
type Node struct {
	Left  Expr
	Op    query.Operator
	Right Expr
}

// MatchAll is the sentinel tree for an empty term list.
type MatchAll struct{}

func (Leaf) isExpr()     {}
func (Node) isExpr()     {}
func (MatchAll) isExpr() {}

// element pairs a subtree with the operator joining it to the elements on
// its left during folding.
type element struct {
	op   query.Operator
	expr Expr
}

// GroupTerms resolves an ordered clause list into a single expression tree
// honoring operator precedence: NOT binds tightest, then AND, then OR.
// Folding is strictly left-associative within each level, so
// [a, OR b, OR c] groups as ((a OR b) OR c).
//
// The leading term's operator is ignored. A later term with no operator is
// a contract violation by the caller, not a user error, but is still
// surfaced rather than guessed around.
func GroupTerms(terms query.FieldedSearchList) (Expr, error) {
	if len(terms) == 0 {
		return MatchAll{}, nil
	}

	items := make([]element, 0, len(terms))
	for i, t := range terms {
		op := t.Operator
		if i == 0 {
			op = query.OpNone
		} else if op == query.OpNone {
			return nil, fmt.Errorf("%w: term %d has no joining operator", domain.ErrInvalidQuery, i)
		}
		items = append(items, element{op: op, expr: Leaf{Term: t}})
	}

	for _, op := range []query.Operator{query.OpNot, query.OpAnd, query.OpOr} {
		items = collapse(items, op)
	}
	if len(items) != 1 {
		// Unreachable for validated operators; a rogue operator value
		// survives all three passes and lands here.
		return nil, fmt.Errorf("%w: %d groups remain after folding", domain.ErrInvalidQuery, len(items))
	}
	return items[0].expr, nil
}

// collapse folds every element joined by op into its left neighbour,
// left to right, leaving elements joined by other operators untouched.
func collapse(items []element, op query.Operator) []element {
	out := make([]element, 0, len(items))
	out = append(out, items[0])
	for _, it := range items[1:] {
		if it.op == op {
			prev := &out[len(out)-1]
			prev.expr = Node{Left: prev.expr, Op: op, Right: it.expr}
			continue
		}
		out = append(out, it)
	}
	return out
}
