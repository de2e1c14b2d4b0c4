package reactivity

import mapset "github.com/deckarep/golang-set/v2"

// traverse reads every key reachable from v so the active computation
// depends on all of them. Raw containers are wrapped on the way.
func traverse(rs *ReactiveSystem, v any, seen mapset.Set[identity]) {
	o, ok := Wrap(rs, v)
	if !ok || !seen.Add(o.id) {
		return
	}
	for _, k := range o.Keys() {
		traverse(rs, o.Get(k), seen)
	}
}
