package ast

import "lox/interpreter-go/pkg/token"

type NodeType string

const (
	NodeLiteral  NodeType = "Literal"
	NodeGrouping NodeType = "Grouping"
	NodeUnary    NodeType = "Unary"
	NodeBinary   NodeType = "Binary"
	NodeLogical  NodeType = "Logical"
	NodeVariable NodeType = "Variable"
	NodeAssign   NodeType = "Assign"
	NodeCall     NodeType = "Call"
	NodeGet      NodeType = "Get"
	NodeSet      NodeType = "Set"
	NodeThis     NodeType = "This"
	NodeSuper    NodeType = "Super"

	NodeExpressionStmt NodeType = "ExpressionStmt"
	NodePrintStmt      NodeType = "PrintStmt"
	NodeVarStmt        NodeType = "VarStmt"
	NodeBlockStmt      NodeType = "BlockStmt"
	NodeIfStmt         NodeType = "IfStmt"
	NodeWhileStmt      NodeType = "WhileStmt"
	NodeFunctionStmt   NodeType = "FunctionStmt"
	NodeReturnStmt     NodeType = "ReturnStmt"
	NodeClassStmt      NodeType = "ClassStmt"
)

// Node is implemented by every syntax tree node. Nodes are always handled
// through pointers: the resolver keys its side table on node identity.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expr interface {
	Node
	exprNode()
}

type exprMarker struct{}

func (exprMarker) exprNode() {}

type Stmt interface {
	Node
	stmtNode()
}

type stmtMarker struct{}

func (stmtMarker) stmtNode() {}

// Literal holds nil, a bool, a float64 or a string.
type Literal struct {
	nodeImpl
	exprMarker

	Value any `json:"value"`
}

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type Grouping struct {
	nodeImpl
	exprMarker

	Expression Expr `json:"expression"`
}

func NewGrouping(expression Expr) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expression: expression}
}

type Unary struct {
	nodeImpl
	exprMarker

	Operator token.Token `json:"operator"`
	Right    Expr        `json:"right"`
}

func NewUnary(operator token.Token, right Expr) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Right: right}
}

type Binary struct {
	nodeImpl
	exprMarker

	Left     Expr        `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expr        `json:"right"`
}

func NewBinary(left Expr, operator token.Token, right Expr) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Left: left, Operator: operator, Right: right}
}

// Logical is `and` / `or`; kept apart from Binary because it short-circuits.
type Logical struct {
	nodeImpl
	exprMarker

	Left     Expr        `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expr        `json:"right"`
}

func NewLogical(left Expr, operator token.Token, right Expr) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical), Left: left, Operator: operator, Right: right}
}

type Variable struct {
	nodeImpl
	exprMarker

	Name token.Token `json:"name"`
}

func NewVariable(name token.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

type Assign struct {
	nodeImpl
	exprMarker

	Name  token.Token `json:"name"`
	Value Expr        `json:"value"`
}

func NewAssign(name token.Token, value Expr) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

// Call keeps the closing paren token for error locations.
type Call struct {
	nodeImpl
	exprMarker

	Callee    Expr        `json:"callee"`
	Paren     token.Token `json:"paren"`
	Arguments []Expr      `json:"arguments"`
}

func NewCall(callee Expr, paren token.Token, arguments []Expr) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Paren: paren, Arguments: arguments}
}

type Get struct {
	nodeImpl
	exprMarker

	Object Expr        `json:"object"`
	Name   token.Token `json:"name"`
}

func NewGet(object Expr, name token.Token) *Get {
	return &Get{nodeImpl: newNodeImpl(NodeGet), Object: object, Name: name}
}

type Set struct {
	nodeImpl
	exprMarker

	Object Expr        `json:"object"`
	Name   token.Token `json:"name"`
	Value  Expr        `json:"value"`
}

func NewSet(object Expr, name token.Token, value Expr) *Set {
	return &Set{nodeImpl: newNodeImpl(NodeSet), Object: object, Name: name, Value: value}
}

type This struct {
	nodeImpl
	exprMarker

	Keyword token.Token `json:"keyword"`
}

func NewThis(keyword token.Token) *This {
	return &This{nodeImpl: newNodeImpl(NodeThis), Keyword: keyword}
}

type Super struct {
	nodeImpl
	exprMarker

	Keyword token.Token `json:"keyword"`
	Method  token.Token `json:"method"`
}

func NewSuper(keyword, method token.Token) *Super {
	return &Super{nodeImpl: newNodeImpl(NodeSuper), Keyword: keyword, Method: method}
}
