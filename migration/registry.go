// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package migration

import (
	"sort"

	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/canonical/entitymigration/core/entity"
)

// ExportRegistry resolves an entity type to its exporter. It is immutable
// once built and safe for unbounded concurrent lookups.
type ExportRegistry struct {
	exporters map[entity.Type]Exporter
}

// NewExportRegistry builds the export-side registry. Exporters are applied
// in descending order of the size of their declared type set, so an
// exporter declaring a narrower, more specific set overwrites a broader one
// for any overlapping type; the outcome does not depend on the order the
// caller lists them in, except that exporters with equal-size sets are
// applied in the given order, later ones winning on overlap. Every type in
// the fixed supported list left unclaimed is mapped to the fallback
// exporter.
func NewExportRegistry(fallback Exporter, exporters ...Exporter) (*ExportRegistry, error) {
	if fallback == nil {
		return nil, errors.NotValidf("nil fallback exporter")
	}

	declared := make([]set.Strings, len(exporters))
	for i, exporter := range exporters {
		types := set.NewStrings()
		for _, t := range exporter.SupportedTypes() {
			if err := t.Validate(); err != nil {
				return nil, errors.Trace(err)
			}
			types.Add(string(t))
		}
		declared[i] = types
	}

	order := make([]int, len(exporters))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return declared[order[i]].Size() > declared[order[j]].Size()
	})

	mapped := make(map[entity.Type]Exporter)
	for _, i := range order {
		for _, t := range declared[i].Values() {
			mapped[entity.Type(t)] = exporters[i]
		}
	}
	for _, t := range entity.SupportedTypes() {
		if _, ok := mapped[t]; !ok {
			mapped[t] = fallback
		}
	}
	return &ExportRegistry{exporters: mapped}, nil
}

// Exporter returns the exporter responsible for the given entity type. A
// missing mapping is a configuration fault, surfaced as NotSupported; it is
// never silently defaulted here.
func (r *ExportRegistry) Exporter(t entity.Type) (Exporter, error) {
	exporter, ok := r.exporters[t]
	if !ok {
		return nil, errors.NotSupportedf("export for entity type %q", t)
	}
	return exporter, nil
}

// Types lists every entity type the registry resolves, sorted by name.
func (r *ExportRegistry) Types() []entity.Type {
	names := set.NewStrings()
	for t := range r.exporters {
		names.Add(string(t))
	}
	types := make([]entity.Type, 0, names.Size())
	for _, name := range names.SortedValues() {
		types = append(types, entity.Type(name))
	}
	return types
}

// ImportRegistry resolves an entity type to its importer. It is immutable
// once built and safe for unbounded concurrent lookups.
type ImportRegistry struct {
	importers map[entity.Type]Importer
}

// NewImportRegistry builds the import-side registry. Each importer claims
// exactly one entity type; when two claim the same type the later
// registration wins. There is no fallback importer: resolving an unclaimed
// type fails.
func NewImportRegistry(importers ...Importer) (*ImportRegistry, error) {
	mapped := make(map[entity.Type]Importer, len(importers))
	for _, importer := range importers {
		t := importer.EntityType()
		if err := t.Validate(); err != nil {
			return nil, errors.Trace(err)
		}
		mapped[t] = importer
	}
	return &ImportRegistry{importers: mapped}, nil
}

// Importer returns the importer responsible for the given entity type,
// or NotSupported when none is registered.
func (r *ImportRegistry) Importer(t entity.Type) (Importer, error) {
	importer, ok := r.importers[t]
	if !ok {
		return nil, errors.NotSupportedf("import for entity type %q", t)
	}
	return importer, nil
}

// Types lists every entity type the registry resolves, sorted by name.
func (r *ImportRegistry) Types() []entity.Type {
	names := set.NewStrings()
	for t := range r.importers {
		names.Add(string(t))
	}
	types := make([]entity.Type, 0, names.Size())
	for _, name := range names.SortedValues() {
		types = append(types, entity.Type(name))
	}
	return types
}
