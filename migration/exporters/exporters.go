// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package exporters supplies the generic fallback exporter and the base
// that type-specific exporters build on. Both read entities through narrow
// collaborator interfaces; persistence itself lives elsewhere.
package exporters

import (
	"context"

	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/canonical/entitymigration/core/entity"
	"github.com/canonical/entitymigration/migration"
)

// EntityReader fetches a live entity for snapshotting.
type EntityReader interface {
	Entity(ctx context.Context, who migration.Principal, id entity.Id) (entity.Entity, error)
}

// RelationReader fetches the relations an entity participates in.
type RelationReader interface {
	Relations(ctx context.Context, who migration.Principal, id entity.Id) ([]migration.Relation, error)
}

// Default is the generic exporter the export registry falls back to for
// supported types no dedicated exporter claims. It snapshots the entity
// as read, attaching relations when the settings ask for them.
type Default struct {
	entities  EntityReader
	relations RelationReader
}

// NewDefault returns the fallback exporter. The relation reader may be nil,
// in which case ExportRelations is ignored.
func NewDefault(entities EntityReader, relations RelationReader) (*Default, error) {
	if entities == nil {
		return nil, errors.NotValidf("nil entity reader")
	}
	return &Default{entities: entities, relations: relations}, nil
}

// SupportedTypes declares nothing: the fallback claims types only through
// the registry's default mechanism.
func (e *Default) SupportedTypes() []entity.Type {
	return nil
}

// Export implements migration.Exporter.
func (e *Default) Export(ctx context.Context, who migration.Principal, id entity.Id, settings migration.ExportSettings) (*migration.ExportData, error) {
	ent, err := e.entities.Entity(ctx, who, id)
	if err != nil {
		return nil, errors.Trace(err)
	}
	data := &migration.ExportData{
		Type:   id.Type(),
		Entity: ent,
	}
	if settings.ExportRelations && e.relations != nil {
		relations, err := e.relations.Relations(ctx, who, id)
		if err != nil {
			return nil, errors.Trace(err)
		}
		data.Relations = relations
	}
	return data, nil
}

// Base carries the declared type set for a dedicated exporter. Concrete
// exporters embed it and wrap Export to add their type-specific snapshot
// content.
type Base struct {
	Default
	types set.Strings
}

// NewBase returns a Base claiming the given types.
func NewBase(entities EntityReader, relations RelationReader, types ...entity.Type) (*Base, error) {
	if entities == nil {
		return nil, errors.NotValidf("nil entity reader")
	}
	if len(types) == 0 {
		return nil, errors.NotValidf("exporter claiming no types")
	}
	declared := set.NewStrings()
	for _, t := range types {
		if err := t.Validate(); err != nil {
			return nil, errors.Trace(err)
		}
		declared.Add(string(t))
	}
	return &Base{
		Default: Default{entities: entities, relations: relations},
		types:   declared,
	}, nil
}

// SupportedTypes declares the claimed types, sorted by name.
func (e *Base) SupportedTypes() []entity.Type {
	types := make([]entity.Type, 0, e.types.Size())
	for _, name := range e.types.SortedValues() {
		types = append(types, entity.Type(name))
	}
	return types
}
