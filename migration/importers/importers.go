// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package importers builds migration.Importer implementations from a save
// function plus the optional follow-up hooks of the two-phase protocol.
package importers

import (
	"context"

	"github.com/juju/errors"

	"github.com/canonical/entitymigration/core/entity"
	"github.com/canonical/entitymigration/migration"
)

// Saver persists the snapshot's entity and returns the persisted form.
type Saver func(ctx context.Context, who migration.Principal, data *migration.ExportData, settings migration.ImportSettings) (entity.Entity, error)

// Hook is a follow-up step over the saved entity, run as a deferred action.
type Hook func(ctx context.Context, who migration.Principal, saved entity.Entity) error

// Config holds everything an importer for one entity type needs.
type Config struct {
	// Type is the single entity type the importer claims.
	Type entity.Type

	// Save performs the primary import.
	Save Saver

	// ResolveReferences, when set, becomes the result's
	// reference-resolution action.
	ResolveReferences Hook

	// EmitEvents, when set, becomes the result's event-emission action.
	EmitEvents Hook
}

// Validate returns an error if the config cannot produce an importer.
func (c Config) Validate() error {
	if err := c.Type.Validate(); err != nil {
		return errors.Trace(err)
	}
	if c.Save == nil {
		return errors.NotValidf("nil Save")
	}
	return nil
}

type importer struct {
	config Config
}

// New returns an Importer assembled from the config.
func New(config Config) (migration.Importer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &importer{config: config}, nil
}

// EntityType implements migration.Importer.
func (i *importer) EntityType() entity.Type {
	return i.config.Type
}

// Import implements migration.Importer. The hooks are not run here; they
// are wrapped as deferred actions over the saved entity for the
// orchestrator or batch driver to invoke.
func (i *importer) Import(ctx context.Context, who migration.Principal, data *migration.ExportData, settings migration.ImportSettings) (*migration.ImportResult, error) {
	saved, err := i.config.Save(ctx, who, data, settings)
	if err != nil {
		return nil, errors.Trace(err)
	}
	result := &migration.ImportResult{Entity: saved}
	if hook := i.config.ResolveReferences; hook != nil {
		result.ResolveReferences = migration.NewDeferredAction(
			"resolve references", func(ctx context.Context) error {
				return hook(ctx, who, saved)
			})
	}
	if hook := i.config.EmitEvents; hook != nil {
		result.EmitEvents = migration.NewDeferredAction(
			"emit events", func(ctx context.Context) error {
				return hook(ctx, who, saved)
			})
	}
	return result, nil
}
