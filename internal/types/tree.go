package types

import (
	"fmt"
	"strconv"
	"strings"
)

type kind uint8

const (
	kindNative = kind(iota)
	kindList
	kindSet
	kindMap
	kindVector
	kindTuple
	kindUDT
)

func (k kind) String() string {
	switch k {
	case kindNative:
		return "native"
	case kindList:
		return "list"
	case kindSet:
		return "set"
	case kindMap:
		return "map"
	case kindVector:
		return "vector"
	case kindTuple:
		return "tuple"
	case kindUDT:
		return "udt"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ID addresses a node inside the Builder that created it
type ID int32

type node struct {
	kind     kind
	code     Code
	frozen   bool
	children []ID

	// udt only
	keyspace string
	name     string
	fields   []string

	// vector only
	dims int
}

// Field is a named member of a user defined type
type Field struct {
	Name string
	Type ID
}

// Builder appends type nodes into an arena. A node can only reference nodes
// appended before it, so every built Tree is acyclic and finite.
//
// A Builder must not be used after Build.
type Builder struct {
	nodes []node
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) push(n node) ID {
	for _, child := range n.children {
		if child < 0 || int(child) >= len(b.nodes) {
			panic(fmt.Sprintf("cqlbridge: type node %d references unknown child %d", len(b.nodes), child))
		}
	}
	b.nodes = append(b.nodes, n)

	return ID(len(b.nodes) - 1)
}

func (b *Builder) Native(code Code) ID {
	if !code.IsScalar() {
		panic(fmt.Sprintf("cqlbridge: %s is not a native type code", code))
	}

	return b.push(node{kind: kindNative, code: code})
}

func (b *Builder) List(elem ID, frozen bool) ID {
	return b.push(node{kind: kindList, code: List, frozen: frozen, children: []ID{elem}})
}

func (b *Builder) Set(elem ID, frozen bool) ID {
	return b.push(node{kind: kindSet, code: Set, frozen: frozen, children: []ID{elem}})
}

func (b *Builder) Map(key, value ID, frozen bool) ID {
	return b.push(node{kind: kindMap, code: Map, frozen: frozen, children: []ID{key, value}})
}

// Vector is reported with the list code; its element is reachable with
// ListChild.
func (b *Builder) Vector(elem ID, dims int) ID {
	return b.push(node{kind: kindVector, code: List, children: []ID{elem}, dims: dims})
}

func (b *Builder) Tuple(elems ...ID) ID {
	return b.push(node{kind: kindTuple, code: Tuple, children: append([]ID(nil), elems...)})
}

func (b *Builder) UDT(keyspace, name string, frozen bool, fields ...Field) ID {
	n := node{
		kind:     kindUDT,
		code:     UDT,
		frozen:   frozen,
		keyspace: keyspace,
		name:     name,
		children: make([]ID, len(fields)),
		fields:   make([]string, len(fields)),
	}
	for i, f := range fields {
		n.children[i] = f.Type
		n.fields[i] = f.Name
	}

	return b.push(n)
}

func (b *Builder) Build() *Tree {
	t := &Tree{nodes: b.nodes}
	b.nodes = nil

	return t
}

// Tree is an immutable arena of type nodes. It is shared read-only by every
// Ref pointing into it and needs no locking.
type Tree struct {
	nodes []node
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}

	return len(t.nodes)
}

func (t *Tree) Ref(id ID) Ref {
	if id < 0 || int(id) >= t.Len() {
		panic(fmt.Sprintf("cqlbridge: type node %d out of range [0, %d)", id, t.Len()))
	}

	return Ref{tree: t, id: id}
}

// Ref is a borrowed view of one node. The zero Ref is the null handle.
// A Ref never outlives the Tree it points into and copying it never copies
// the node.
type Ref struct {
	tree *Tree
	id   ID
}

func (r Ref) IsNull() bool {
	return r.tree == nil
}

func (r Ref) Tree() *Tree {
	return r.tree
}

func (r Ref) ID() ID {
	r.mustNode("ID")

	return r.id
}

func (r Ref) mustNode(op string) *node {
	if r.tree == nil {
		panic("cqlbridge: null type handle passed to " + op)
	}

	return &r.tree.nodes[r.id]
}

func (r Ref) mustKind(op string, kinds ...kind) *node {
	n := r.mustNode(op)
	for _, k := range kinds {
		if n.kind == k {
			return n
		}
	}

	panic(fmt.Sprintf("cqlbridge: %s called on %s type", op, n.kind))
}

func (r Ref) child(id ID) Ref {
	return Ref{tree: r.tree, id: id}
}

func (r Ref) Code() Code {
	return r.mustNode("Code").code
}

// Frozen is only ever true for collections and user defined types
func (r Ref) Frozen() bool {
	return r.mustNode("Frozen").frozen
}

// ListChild returns the element type of a list (or a vector)
func (r Ref) ListChild() Ref {
	n := r.mustKind("ListChild", kindList, kindVector)

	return r.child(n.children[0])
}

func (r Ref) SetChild() Ref {
	n := r.mustKind("SetChild", kindSet)

	return r.child(n.children[0])
}

func (r Ref) MapChildren() (key, value Ref) {
	n := r.mustKind("MapChildren", kindMap)

	return r.child(n.children[0]), r.child(n.children[1])
}

func (r Ref) VectorDimensions() int {
	return r.mustKind("VectorDimensions", kindVector).dims
}

func (r Ref) TupleFieldCount() int {
	return len(r.mustKind("TupleFieldCount", kindTuple).children)
}

func (r Ref) TupleField(i int) Ref {
	n := r.mustKind("TupleField", kindTuple)
	if i < 0 || i >= len(n.children) {
		panic(fmt.Sprintf("cqlbridge: tuple field index %d out of range [0, %d)", i, len(n.children)))
	}

	return r.child(n.children[i])
}

func (r Ref) UDTName() string {
	return r.mustKind("UDTName", kindUDT).name
}

func (r Ref) UDTKeyspace() string {
	return r.mustKind("UDTKeyspace", kindUDT).keyspace
}

func (r Ref) UDTFieldCount() int {
	return len(r.mustKind("UDTFieldCount", kindUDT).children)
}

// UDTField returns the i-th field in schema declaration order
func (r Ref) UDTField(i int) (name string, typ Ref) {
	n := r.mustKind("UDTField", kindUDT)
	if i < 0 || i >= len(n.children) {
		panic(fmt.Sprintf("cqlbridge: udt field index %d out of range [0, %d)", i, len(n.children)))
	}

	return n.fields[i], r.child(n.children[i])
}

// String renders the type in CQL syntax
func (r Ref) String() string {
	if r.IsNull() {
		return "<null>"
	}
	var b strings.Builder
	r.writeTo(&b)

	return b.String()
}

func (r Ref) writeTo(b *strings.Builder) {
	n := r.mustNode("String")
	if n.frozen {
		b.WriteString("frozen<")
		defer b.WriteByte('>')
	}
	switch n.kind {
	case kindNative:
		b.WriteString(n.code.String())
	case kindUDT:
		if n.keyspace != "" {
			b.WriteString(n.keyspace)
			b.WriteByte('.')
		}
		b.WriteString(n.name)
	default:
		b.WriteString(n.kind.String())
		b.WriteByte('<')
		for i, child := range n.children {
			if i > 0 {
				b.WriteString(", ")
			}
			r.child(child).writeTo(b)
		}
		if n.kind == kindVector {
			b.WriteString(", ")
			b.WriteString(strconv.Itoa(n.dims))
		}
		b.WriteByte('>')
	}
}
