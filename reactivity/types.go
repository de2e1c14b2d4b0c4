package reactivity

import (
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

// identity is the raw identity of a tracked container. The type is part of
// the key so a struct and its first field never collide. Plain slices also
// carry their length: two headers over one backing array are distinct
// containers unless they have the same length.
//
// ptr is an address, not a reference, so identities never keep a target
// alive. Whoever holds an identity must also hold the target (an Object, or
// dep.raw) for the address to stay meaningful.
type identity struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

type iterateKey struct{}

func (iterateKey) String() string { return "<iterate>" }

// IterateKey is tracked by Keys, Len and Range and triggered whenever a key is
// added to or removed from a container.
var IterateKey any = iterateKey{}

// dep is the set of computations that read one (target, key) pair, or one
// computed value when keyed is false.
type dep struct {
	subs   mapset.Set[*EffectRunner]
	target identity
	key    any
	keyed  bool

	// raw is the backing container or the owning computed, for debug hooks.
	raw any
}

func newDep(raw any) *dep {
	return &dep{
		subs: mapset.NewThreadUnsafeSet[*EffectRunner](),
		raw:  raw,
	}
}
