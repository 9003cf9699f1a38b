package resolver

import (
	"github.com/griffnb/core-schema/internal/component"
	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/schema"
)

// entry is one resolved fragment.
type entry struct {
	schema        *schema.Schema
	key           string
	owner         string
	referenceable bool
}

func localEntry(s *schema.Schema) *entry {
	return &entry{schema: s}
}

// use returns what a use site embeds for e: a reference for named
// components, a private copy for inline fragments.
func (e *entry) use() *schema.SchemaRef {
	if e.referenceable {
		return component.RefSchema(e.key)
	}
	return schema.Inline(e.schema.Clone())
}

// pass is the state shared by every frame of one resolution pass.
type pass struct {
	hoisted   map[string]*entry
	schemas   schema.SchemaMap
	owners    map[string]string
	conflicts []*entry
	active    map[string]struct{}
	calls     map[string]int
}

// Context memoizes one resolution pass. Object and enum entries are shared
// by every mapper of the pass; scalar and container entries stay in the
// frame of the mapper that produced them. A Context is not safe for
// concurrent use.
type Context struct {
	pass  *pass
	local map[string]*entry
}

// NewContext creates the context of a new resolution pass.
func NewContext() *Context {
	return &Context{
		pass: &pass{
			hoisted: make(map[string]*entry),
			schemas: make(schema.SchemaMap),
			owners:  make(map[string]string),
			active:  make(map[string]struct{}),
			calls:   make(map[string]int),
		},
		local: make(map[string]*entry),
	}
}

// frame returns the working map of a mapper invocation. It sees every
// referenceable entry of the pass but none of the caller's local entries.
func (c *Context) frame() *Context {
	return &Context{pass: c.pass, local: make(map[string]*entry)}
}

func (c *Context) lookup(id string) (*entry, bool) {
	if e, ok := c.pass.hoisted[id]; ok {
		return e, true
	}
	e, ok := c.local[id]
	return e, ok
}

// store records e under id unless an entry already exists. A named
// component is hoisted into the pass only under its own type's identity.
func (c *Context) store(id string, e *entry) {
	if _, ok := c.lookup(id); ok {
		return
	}
	if !e.referenceable || e.owner != id {
		c.local[id] = e
		return
	}

	c.pass.hoisted[id] = e
	if owner, claimed := c.pass.owners[e.key]; claimed && owner != id {
		c.pass.conflicts = append(c.pass.conflicts, e)
		return
	}
	c.pass.schemas[e.key] = e.schema
	c.pass.owners[e.key] = id
}

// enter marks id as being resolved, reporting false on re-entry.
func (c *Context) enter(id string) bool {
	if _, ok := c.pass.active[id]; ok {
		return false
	}
	c.pass.active[id] = struct{}{}
	c.pass.calls[id]++
	return true
}

func (c *Context) leave(id string) {
	delete(c.pass.active, id)
}

// settle reconciles distinct types that derived the same component key.
func (c *Context) settle() error {
	for _, e := range c.pass.conflicts {
		existing := c.pass.schemas[e.key]
		if !schema.Compatible(existing, e.schema) {
			return &component.CollisionError{Key: e.key, Existing: c.pass.owners[e.key], Incoming: e.owner}
		}
		c.pass.schemas[e.key] = schema.Merge(existing, e.schema)
	}
	c.pass.conflicts = nil
	return nil
}

// Invocations returns how many times a mapper ran for t in this pass.
func (c *Context) Invocations(t domain.TypeDescriptor) int {
	return c.pass.calls[t.ID()]
}

// Schemas returns a copy of the components discovered so far.
func (c *Context) Schemas() schema.SchemaMap {
	out := make(schema.SchemaMap, len(c.pass.schemas))
	for k, v := range c.pass.schemas {
		out[k] = v.Clone()
	}
	return out
}

// Owners returns the identity of the type behind each component key.
func (c *Context) Owners() map[string]string {
	out := make(map[string]string, len(c.pass.owners))
	for k, v := range c.pass.owners {
		out[k] = v
	}
	return out
}
