// Package expr implements the filter expression language used by the
// --where flag and the repl "where" command:
//
//	y == "yes" && marital == "single"
//	age >= 30 and not (job in ("student", "retired"))
//	`emp.var.rate` < 0 || euribor3m < 1.5
//
// Comparisons take a column on one side and a literal on the other.
// Expressions compile to report predicates.
package expr

import (
	"fmt"

	"github.com/akhildatla/bankeda/pkg/report"
)

// Compile parses src and builds the equivalent predicate.
func Compile(src string) (report.Predicate, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Build(n)
}

// Build converts a parsed expression into a predicate.
func Build(n Node) (report.Predicate, error) {
	switch e := n.(type) {
	case *BinaryExpr:
		switch e.Op {
		case TokenAnd, TokenOr:
			left, err := Build(e.Left)
			if err != nil {
				return nil, err
			}
			right, err := Build(e.Right)
			if err != nil {
				return nil, err
			}
			if e.Op == TokenAnd {
				return report.And(left, right), nil
			}
			return report.Or(left, right), nil
		}
		return buildComparison(e)

	case *NotExpr:
		p, err := Build(e.Cond)
		if err != nil {
			return nil, err
		}
		return report.Not(p), nil

	case *InExpr:
		vals := make([]interface{}, len(e.Values))
		for i, v := range e.Values {
			vals[i], _ = literal(v)
		}
		return report.In(e.Column.Name, vals...), nil

	case nil:
		return nil, &SyntaxError{Msg: "empty expression"}
	}
	return nil, &SyntaxError{Msg: fmt.Sprintf("%s is not a condition", n)}
}

func buildComparison(e *BinaryExpr) (report.Predicate, error) {
	op := e.Op
	col, colOK := e.Left.(*Ident)
	val, valOK := literal(e.Right)
	if !colOK || !valOK {
		// literal on the left: 30 <= age
		col, colOK = e.Right.(*Ident)
		val, valOK = literal(e.Left)
		op = flip(op)
	}
	if !colOK || !valOK {
		return nil, &SyntaxError{Msg: fmt.Sprintf("%s must compare a column with a value", e)}
	}

	switch op {
	case TokenEQ:
		return report.Eq(col.Name, val), nil
	case TokenNE:
		return report.Ne(col.Name, val), nil
	case TokenLT:
		return report.Lt(col.Name, val), nil
	case TokenLE:
		return report.Le(col.Name, val), nil
	case TokenGT:
		return report.Gt(col.Name, val), nil
	case TokenGE:
		return report.Ge(col.Name, val), nil
	}
	return nil, &SyntaxError{Msg: fmt.Sprintf("unsupported operator %v", e.Op)}
}

// flip mirrors a comparison so that a op b == b flip(op) a.
func flip(op TokenType) TokenType {
	switch op {
	case TokenLT:
		return TokenGT
	case TokenLE:
		return TokenGE
	case TokenGT:
		return TokenLT
	case TokenGE:
		return TokenLE
	}
	return op
}
