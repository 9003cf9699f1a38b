package catalog

import (
	"strings"

	"github.com/griffnb/core-schema/internal/domain"
)

// typeRef is the descriptor of a catalog type with qualified names.
type typeRef struct {
	name  string
	args  []*typeRef
	array bool
	param bool
}

func (r *typeRef) ID() string {
	return r.format(true)
}

func (r *typeRef) Name() string {
	if r.array {
		return r.args[0].Name() + "[]"
	}
	return r.name
}

func (r *typeRef) String() string {
	return r.format(false)
}

// format renders the reference. Identities mark type parameters with a
// leading "?" so they never equal a declared type of the same name.
func (r *typeRef) format(id bool) string {
	switch {
	case r.array:
		return r.args[0].format(id) + "[]"
	case r.param && id:
		return "?" + r.name
	case len(r.args) == 0:
		return r.name
	}
	parts := make([]string, len(r.args))
	for i, arg := range r.args {
		parts[i] = arg.format(id)
	}
	return r.name + "<" + strings.Join(parts, ", ") + ">"
}

func (r *typeRef) substitute(bindings map[string]domain.TypeDescriptor) domain.TypeDescriptor {
	if r.param {
		if bound, ok := bindings[r.name]; ok {
			return bound
		}
		return r
	}
	if len(r.args) == 0 {
		return r
	}

	out := &typeRef{name: r.name, array: r.array, args: make([]*typeRef, len(r.args))}
	for i, arg := range r.args {
		sub, ok := arg.substitute(bindings).(*typeRef)
		if !ok {
			sub = arg
		}
		out.args[i] = sub
	}
	return out
}
