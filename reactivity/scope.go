package reactivity

// EffectScope collects the effects, computed values and watchers created
// inside Run so they can be stopped together.
type EffectScope struct {
	rs       *ReactiveSystem
	parent   *EffectScope
	effects  []*EffectRunner
	scopes   []*EffectScope
	cleanups []func()
	active   bool
}

// NewEffectScope creates a scope. A scope created while another one is
// running is stopped along with it.
func NewEffectScope(rs *ReactiveSystem) *EffectScope {
	s := &EffectScope{
		rs:     rs,
		parent: rs.activeScope,
		active: true,
	}
	if s.parent != nil {
		s.parent.scopes = append(s.parent.scopes, s)
	}
	return s
}

// Run calls fn with s as the active scope. It does nothing once s is stopped.
func (s *EffectScope) Run(fn func()) {
	if !s.active {
		return
	}
	prev := s.rs.activeScope
	s.rs.activeScope = s
	defer func() {
		s.rs.activeScope = prev
	}()
	fn()
}

func (s *EffectScope) add(e *EffectRunner) {
	if s.active {
		s.effects = append(s.effects, e)
	}
}

func (s *EffectScope) Active() bool {
	return s.active
}

// Stop stops every collected effect and child scope, then runs the
// registered dispose callbacks.
func (s *EffectScope) Stop() {
	if !s.active {
		return
	}
	s.active = false
	for _, e := range s.effects {
		e.Stop()
	}
	for _, child := range s.scopes {
		child.Stop()
	}
	for _, fn := range s.cleanups {
		fn()
	}
	s.effects, s.scopes, s.cleanups = nil, nil, nil
}

// OnScopeDispose registers fn on the active scope. It reports false when no
// scope is running.
func OnScopeDispose(rs *ReactiveSystem, fn func()) bool {
	if rs.activeScope == nil {
		return false
	}
	rs.activeScope.cleanups = append(rs.activeScope.cleanups, fn)
	return true
}
