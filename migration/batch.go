// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package migration

import (
	"context"
	"sort"

	"github.com/juju/errors"

	"github.com/canonical/entitymigration/core/entity"
)

// ImportEntities imports a batch of interdependent snapshots sequentially.
// The batch is first sorted by import order so referenced entities are
// materialized before their referrers, then every entity is imported with
// both deferred phases held back, then every reference-resolution action is
// invoked, then every event-emission action. Each entity's import consumes
// the tenant's import quota as usual.
//
// On failure the results accumulated so far are returned with the error;
// nothing already imported is undone, so the caller can compensate.
func (s *Service) ImportEntities(ctx context.Context, who Principal, batch []*ExportData, settings ImportSettings) ([]*ImportResult, error) {
	ordered := append([]*ExportData(nil), batch...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return CompareSnapshots(ordered[i], ordered[j]) < 0
	})

	results := make([]*ImportResult, 0, len(ordered))
	for _, data := range ordered {
		result, err := s.ImportEntity(ctx, who, data, settings, false, false)
		if err != nil {
			return results, errors.Annotatef(err, "importing entity type %q", data.Type)
		}
		results = append(results, result)
	}
	for _, result := range results {
		if err := result.ResolveReferences.Invoke(ctx); err != nil {
			return results, errors.Annotatef(err, "resolving references of %s", result.Entity.EntityId())
		}
	}
	for _, result := range results {
		if err := result.EmitEvents.Invoke(ctx); err != nil {
			return results, errors.Annotatef(err, "emitting events for %s", result.Entity.EntityId())
		}
	}
	return results, nil
}

// CompareSnapshots ranks two snapshots by the import order of their
// declared entity types. A nil snapshot sorts first, so validation rejects
// it at the earliest point of the batch.
func CompareSnapshots(a, b *ExportData) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return entity.CompareImportOrder(a.Type, b.Type)
}
