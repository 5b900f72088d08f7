// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package migration

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/juju/errors"

	"github.com/canonical/entitymigration/core/entity"
)

// Principal is the acting user on whose behalf an export or import runs.
// Admission control is scoped to the principal's tenant.
type Principal struct {
	User   uuid.UUID
	Tenant uuid.UUID
}

// Validate returns an error if the principal carries no tenant.
func (p Principal) Validate() error {
	if p.Tenant == uuid.Nil {
		return errors.NotValidf("principal without tenant")
	}
	return nil
}

// ExportSettings controls exporter behaviour. The service passes it through
// to the resolved exporter without interpreting it.
type ExportSettings struct {
	// ExportRelations asks the exporter to include the entity's
	// relations in the snapshot.
	ExportRelations bool
}

// ImportSettings controls importer behaviour. The service passes it through
// to the resolved importer without interpreting it.
type ImportSettings struct {
	// FindExistingByName lets the importer match a previously imported
	// entity by name when the snapshot's id is unknown locally.
	FindExistingByName bool

	// UpdateReferences asks the importer to rewrite references to other
	// entities when their local ids differ from the snapshot's.
	UpdateReferences bool
}

// Relation records a directed link between two entities, carried in a
// snapshot when the exporter was asked for relations.
type Relation struct {
	From entity.Id
	To   entity.Id
	Kind string
}

// ExportData is a portable snapshot of one entity, tagged with the type
// used to resolve its importer on re-import. Its internal shape beyond that
// is the producing exporter's concern.
type ExportData struct {
	Type      entity.Type
	Entity    entity.Entity
	Relations []Relation
}

// Validate returns an error unless the snapshot carries an entity with a
// usable identity.
func (d *ExportData) Validate() error {
	if d == nil {
		return errors.NotValidf("nil export data")
	}
	if d.Entity == nil || d.Entity.EntityId().IsZero() {
		return errors.NotValidf("entity data without identity")
	}
	if err := d.Type.Validate(); err != nil {
		return errors.Trace(err)
	}
	return nil
}

// DeferredAction is a follow-up step handed back with an import result,
// invoked by the orchestrator under explicit conditions rather than
// automatically. An action runs at most once: the first Invoke executes it
// and memoises the outcome, later calls return the memoised error without
// re-executing.
type DeferredAction struct {
	name string
	run  func(context.Context) error

	once sync.Once
	err  error
}

// NewDeferredAction wraps run as an at-most-once action. The name appears
// in trace logging only.
func NewDeferredAction(name string, run func(context.Context) error) *DeferredAction {
	return &DeferredAction{name: name, run: run}
}

// Invoke runs the action if it has not run before and returns its error.
// A nil action or a nil wrapped function is a no-op.
func (a *DeferredAction) Invoke(ctx context.Context) error {
	if a == nil || a.run == nil {
		return nil
	}
	a.once.Do(func() {
		logger.Tracef("invoking deferred action %q", a.name)
		a.err = a.run(ctx)
	})
	return a.err
}

// ImportResult bundles the persisted entity with the two deferred follow-up
// actions of the two-phase import protocol. Either action may be nil when
// the importer has nothing to do for that phase.
type ImportResult struct {
	Entity entity.Entity

	// ResolveReferences fixes up the imported entity's references to
	// other entities, once those exist locally.
	ResolveReferences *DeferredAction

	// EmitEvents announces the completed import, for example to an audit
	// trail or lifecycle listeners.
	EmitEvents *DeferredAction
}
