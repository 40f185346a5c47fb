package expr

import (
	"strconv"
	"strings"
)

// Node is the interface implemented by all filter expression nodes.
type Node interface {
	String() string
	node()
}

// Ident is a column reference.
type Ident struct {
	Name string
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// FloatLit is a float literal.
type FloatLit struct {
	Value float64
}

// StringLit is a string literal.
type StringLit struct {
	Value string
}

// BinaryExpr is a comparison (==, !=, <, <=, >, >=) or a logical
// connective (and, or).
type BinaryExpr struct {
	Left  Node
	Op    TokenType
	Right Node
}

// NotExpr negates a condition.
type NotExpr struct {
	Cond Node
}

// InExpr tests a column against a list of literals.
// Example: job in ("services", "admin.")
type InExpr struct {
	Column *Ident
	Values []Node
}

func (*Ident) node()      {}
func (*IntLit) node()     {}
func (*FloatLit) node()   {}
func (*StringLit) node()  {}
func (*BinaryExpr) node() {}
func (*NotExpr) node()    {}
func (*InExpr) node()     {}

func (n *Ident) String() string     { return n.Name }
func (n *IntLit) String() string    { return strconv.FormatInt(n.Value, 10) }
func (n *FloatLit) String() string  { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (n *StringLit) String() string { return strconv.Quote(n.Value) }
func (n *NotExpr) String() string   { return "!(" + n.Cond.String() + ")" }

func (n *BinaryExpr) String() string {
	op := n.Op.String()
	switch n.Op {
	case TokenAnd:
		op = "&&"
	case TokenOr:
		op = "||"
	}
	return "(" + n.Left.String() + " " + op + " " + n.Right.String() + ")"
}

func (n *InExpr) String() string {
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		parts[i] = v.String()
	}
	return n.Column.String() + " in (" + strings.Join(parts, ", ") + ")"
}

// literal returns the Go value of a literal node.
func literal(n Node) (interface{}, bool) {
	switch v := n.(type) {
	case *IntLit:
		return v.Value, true
	case *FloatLit:
		return v.Value, true
	case *StringLit:
		return v.Value, true
	}
	return nil, false
}
