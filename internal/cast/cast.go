// Package cast defines the Abstract Syntax Tree node contract this module
// consumes. The upstream C parser that produces these nodes is an external
// collaborator: this package only declares the shapes, it never builds them
// from source text itself.
//
// The set of node variants mirrors pycparser's c_ast (the library the
// original m2c decompiler parsed C with): TypeDecl/PtrDecl/ArrayDecl/FuncDecl
// for types, Decl/Typedef/FuncDef for declarations, and a handful of
// expression nodes sized for the constant evaluator in internal/consteval.
package cast

// NodeID identifies an aggregate (struct/union) node for caching and
// anonymous-type bookkeeping. It stands in for the pointer identity that a
// dynamically-typed host language gets for free: two anonymous aggregates
// with identical members still get distinct IDs.
type NodeID uint32

// InvalidNodeID is never returned by IDAllocator.Next.
const InvalidNodeID NodeID = 0

// IDAllocator hands out stable NodeIDs as an AST is constructed.
type IDAllocator struct {
	next NodeID
}

// NewIDAllocator creates an allocator whose first Next() returns 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns the next unused NodeID.
func (a *IDAllocator) Next() NodeID {
	id := a.next
	a.next++
	return id
}

// Node is implemented by every AST node variant this module can see.
type Node interface {
	isNode()
}

// ----------------------------------------------------------------------------
// Expressions (just enough for bitfield widths and array dimensions)
// ----------------------------------------------------------------------------

// Expr is a constant-foldable expression, or anything else the evaluator
// will reject.
type Expr interface {
	Node
	isExpr()
}

// IntLiteral is an integer constant as written in source, before stripping
// the trailing l/L/u/U suffix or inferring its base.
type IntLiteral struct {
	Value string
}

func (*IntLiteral) isNode() {}
func (*IntLiteral) isExpr() {}

// BinaryOp is one of the operators the constant evaluator accepts.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpShl
	OpShr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	default:
		return "?"
	}
}

// BinaryExpr is a binary operation over two constant-foldable operands.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) isNode() {}
func (*BinaryExpr) isExpr() {}

// Ident is a bare identifier reference. In a parameter list it signals a
// K&R-style function header; as a general expression it is never
// constant-foldable.
type Ident struct {
	Name string
}

func (*Ident) isNode() {}
func (*Ident) isExpr() {}

// OtherExpr stands in for any expression shape the constant evaluator does
// not understand (casts, calls, unary operators, ...). Source is used only
// for error messages.
type OtherExpr struct {
	Source string
}

func (*OtherExpr) isNode() {}
func (*OtherExpr) isExpr() {}

// ----------------------------------------------------------------------------
// Types
// ----------------------------------------------------------------------------

// Type is one of PtrDecl | ArrayDecl | TypeDecl | FuncDecl.
type Type interface {
	Node
	isType()
}

// SimpleType is the post-decay subset of Type: PtrDecl | TypeDecl.
type SimpleType interface {
	Type
	isSimpleType()
}

// TypeSpec is the innermost type description a TypeDecl wraps: a primitive
// name list, an enum, or a struct/union definition (or forward reference).
type TypeSpec interface {
	isTypeSpec()
}

// IdentifierType is a primitive type spelled as a list of keywords, e.g.
// ["unsigned", "long"].
type IdentifierType struct {
	Names []string
}

func (*IdentifierType) isTypeSpec() {}

// EnumMember is one `name` or `name = value` entry of an enum.
type EnumMember struct {
	Name  string
	Value Expr // nil if no explicit value
}

// Enum is a (possibly anonymous, possibly forward-declared) enum type.
// Members == nil means the enum tag was referenced but not defined here.
type Enum struct {
	Name    string
	Members []EnumMember
}

func (*Enum) isTypeSpec() {}

// AggKind distinguishes struct from union.
type AggKind uint8

const (
	KindStruct AggKind = iota
	KindUnion
)

func (k AggKind) String() string {
	if k == KindUnion {
		return "union"
	}
	return "struct"
}

// StructOrUnion is a (possibly anonymous, possibly incomplete) struct/union
// type. Decls == nil means the tag was referenced before being defined
// (an incomplete type); Decls can hold *Decl members plus nested tag-only
// declarations represented as non-*Decl Nodes, which the layout engine
// skips over.
type StructOrUnion struct {
	Kind  AggKind
	Name  string // "" for anonymous aggregates
	Decls []Node // nil: incomplete type
	id    NodeID
}

func (*StructOrUnion) isNode()     {}
func (*StructOrUnion) isTypeSpec() {}

// NewStructOrUnion stamps a fresh NodeID on a new aggregate node. Anonymous
// aggregates rely on this identity for cache and TypeMap keys; named
// aggregates also get one, but are additionally keyed by name.
func NewStructOrUnion(alloc *IDAllocator, kind AggKind, name string, decls []Node) *StructOrUnion {
	return &StructOrUnion{Kind: kind, Name: name, Decls: decls, id: alloc.Next()}
}

// ID returns this node's identity key.
func (s *StructOrUnion) ID() NodeID { return s.id }

// TypeDecl wraps a TypeSpec, optionally naming the declarator it appears in
// (DeclName is informational; the layout engine never looks at it).
type TypeDecl struct {
	DeclName string
	Inner    TypeSpec
}

func (*TypeDecl) isNode()       {}
func (*TypeDecl) isType()       {}
func (*TypeDecl) isSimpleType() {}

// PtrDecl is a pointer to Inner.
type PtrDecl struct {
	Inner Type
}

func (*PtrDecl) isNode()       {}
func (*PtrDecl) isType()       {}
func (*PtrDecl) isSimpleType() {}

// ArrayDecl is an array of Inner. Dim == nil means no declared size
// (`T x[]`), which is only legal as a function parameter (decayed to a
// pointer) or as an incomplete type error everywhere else.
type ArrayDecl struct {
	Inner Type
	Dim   Expr
}

func (*ArrayDecl) isNode() {}
func (*ArrayDecl) isType() {}

// ParamList is the parenthesized parameter list of a function declarator.
// Each element is one of *Decl (named parameter), *EllipsisParam, *Ident
// (K&R identifier list entry), or *Typename (abstract declarator, used for
// unnamed parameters and the bare `void` marker).
type ParamList struct {
	Params []Node
}

// EllipsisParam marks a variadic `...` parameter.
type EllipsisParam struct{}

func (*EllipsisParam) isNode() {}

// Typename is an abstract declarator appearing in a parameter list: a type
// with no associated name, e.g. the `void` in `f(void)` or an unnamed `int`
// in `f(int)`.
type Typename struct {
	Type Type
}

func (*Typename) isNode() {}

// FuncDecl is a function declarator. Args == nil means no parameter list was
// given at all (`f()`, unknown arity); Args != nil with an empty Params
// slice is treated the same way. An explicit `(void)` is represented with
// one *Typename wrapping void in Args.Params, not an empty slice
// (ParseFunction strips it away after classification).
type FuncDecl struct {
	Args   *ParamList
	Return Type
}

func (*FuncDecl) isNode() {}
func (*FuncDecl) isType() {}

// Decl is a named (or, for struct members, possibly anonymous) declaration.
// Bitsize is non-nil only for bitfield struct members.
type Decl struct {
	Name    string
	Type    Type
	Bitsize Expr
}

func (*Decl) isNode() {}

// Typedef introduces a name for a type.
type Typedef struct {
	Name string
	Type Type
}

func (*Typedef) isNode() {}

// FuncDef is a function definition (declarator + body). The body itself is
// out of scope for this module; only the declarator is consulted.
type FuncDef struct {
	Decl *Decl // Decl.Type must be a *FuncDecl; Decl.Name must be set
}

func (*FuncDef) isNode() {}

// TranslationUnit is the top-level AST node: an ordered list of external
// declarations (*Typedef, *FuncDef, or *Decl).
type TranslationUnit struct {
	ExternalDecls []Node
}

// BasicType builds a TypeDecl wrapping an IdentifierType with the given
// keyword names, e.g. BasicType("unsigned", "long").
func BasicType(names ...string) *TypeDecl {
	return &TypeDecl{Inner: &IdentifierType{Names: names}}
}

// Pointer builds a pointer to t.
func Pointer(t Type) *PtrDecl {
	return &PtrDecl{Inner: t}
}

// ExprToC renders an expression in roughly the form it would have appeared
// in source, for use in diagnostic messages only.
func ExprToC(e Expr) string {
	switch v := e.(type) {
	case nil:
		return "<missing>"
	case *IntLiteral:
		return v.Value
	case *Ident:
		return v.Name
	case *BinaryExpr:
		return "(" + ExprToC(v.Left) + " " + v.Op.String() + " " + ExprToC(v.Right) + ")"
	case *OtherExpr:
		return v.Source
	default:
		return "<expr>"
	}
}
