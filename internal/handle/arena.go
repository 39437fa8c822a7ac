package handle

import (
	"fmt"

	"github.com/cqlbridge/cqlbridge-go/internal/types"
	"github.com/cqlbridge/cqlbridge-go/internal/xsync"
)

// TypeHandle is a borrowed reference to a type node: the arena id in the
// high 32 bits and the node index plus one in the low bits. Zero is null.
type TypeHandle uint64

type arena struct {
	id   uint32
	refs int
}

// Arenas numbers the type trees reachable from the host
type Arenas struct {
	m      xsync.Mutex
	last   uint32
	byID   map[uint32]*types.Tree
	byTree map[*types.Tree]*arena
}

func NewArenas() *Arenas {
	return &Arenas{
		byID:   make(map[uint32]*types.Tree),
		byTree: make(map[*types.Tree]*arena),
	}
}

// Register makes handles into tree valid until the matching Release
func (a *Arenas) Register(tree *types.Tree) {
	if tree == nil {
		return
	}
	a.m.WithLock(func() {
		if ar, has := a.byTree[tree]; has {
			ar.refs++

			return
		}
		for {
			a.last++
			if _, has := a.byID[a.last]; a.last != 0 && !has {
				break
			}
		}
		a.byID[a.last] = tree
		a.byTree[tree] = &arena{id: a.last, refs: 1}
	})
}

func (a *Arenas) Release(tree *types.Tree) {
	if tree == nil {
		return
	}
	a.m.WithLock(func() {
		ar, has := a.byTree[tree]
		if !has {
			panic("cqlbridge: release of unregistered type tree")
		}
		ar.refs--
		if ar.refs == 0 {
			delete(a.byTree, tree)
			delete(a.byID, ar.id)
		}
	})
}

// Handle packs ref. The null Ref gives the zero handle.
func (a *Arenas) Handle(ref types.Ref) (h TypeHandle) {
	if ref.IsNull() {
		return 0
	}
	a.m.WithLock(func() {
		ar, has := a.byTree[ref.Tree()]
		if !has {
			panic("cqlbridge: type node of unregistered tree")
		}
		h = TypeHandle(uint64(ar.id)<<32 | uint64(ref.ID()+1))
	})

	return h
}

// Ref unpacks h. Handles into released trees are a contract violation.
func (a *Arenas) Ref(h TypeHandle) (ref types.Ref) {
	if h == 0 {
		return types.Ref{}
	}
	id, index := uint32(h>>32), int64(uint32(h))-1
	a.m.WithLock(func() {
		tree, has := a.byID[id]
		if !has || index < 0 || index >= int64(tree.Len()) {
			panic(fmt.Sprintf("cqlbridge: stale type handle 0x%x", uint64(h)))
		}
		ref = tree.Ref(types.ID(index))
	})

	return ref
}

func (a *Arenas) Len() (n int) {
	a.m.WithLock(func() {
		n = len(a.byID)
	})

	return n
}
