package holon

import (
	"fmt"

	"github.com/ProjectLiminality/dreamtalk/binding"
	"github.com/ProjectLiminality/dreamtalk/expr"
)

// RelationContext is the declaration context handed to a relationship
// callback. Part and parameter handles are methods on the context, so the
// callback records bindings without any registration call and without
// touching the holon's own fields. The context is valid only for the
// duration of the callback.
type RelationContext struct {
	holon     *Holon
	collector *binding.Collector
	released  bool
}

func (rc *RelationContext) check() {
	if rc.released {
		panic("holon: relation context used after its declaration pass ended")
	}
}

// Part returns the recording handle for a child identifier. The identifier
// is not validated against declared parts; a binding to an absent child is
// a no-op at invocation time.
func (rc *RelationContext) Part(name string) *binding.PartHandle {
	rc.check()

	return rc.collector.Part(name)
}

// Param returns a reference to a declared parameter, resolving the name the
// same way live access does (exact, then case-insensitive). An undeclared
// name still yields a reference; its generated read falls back to zero.
func (rc *RelationContext) Param(name string) *expr.Expr {
	rc.check()

	if p, ok := rc.holon.Parameter(name); ok {
		name = p.Name
	}

	return rc.collector.Param(name)
}

// collectRelationships runs the relationship callback inside a fresh
// declaration context. The context is released on every exit path,
// including a panicking callback, and nested passes are rejected.
func (h *Holon) collectRelationships(rs RelationshipSpec) (col *binding.Collector, err error) {
	if h.declaring {
		return nil, ErrReentrantDeclaration
	}
	h.declaring = true

	rc := &RelationContext{holon: h, collector: binding.NewCollector()}

	defer func() {
		rc.released = true
		h.declaring = false

		if r := recover(); r != nil {
			col = nil
			err = fmt.Errorf("%w: %v", ErrRelationshipFailed, r)
		}
	}()

	rs.Relationships(rc)

	return rc.collector, nil
}
