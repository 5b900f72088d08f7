// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package migration

import (
	"context"

	"github.com/google/uuid"

	"github.com/canonical/entitymigration/core/entity"
)

// Exporter produces portable snapshots for one or more entity types.
type Exporter interface {
	// SupportedTypes declares the entity types this exporter handles.
	// It is consulted once, while the export registry is built; a
	// narrower declaration wins over a broader one for any overlapping
	// type. The designated fallback exporter declares nothing.
	SupportedTypes() []entity.Type

	// Export snapshots the identified entity on behalf of the principal.
	Export(ctx context.Context, who Principal, id entity.Id, settings ExportSettings) (*ExportData, error)
}

// Importer reconstructs entities of exactly one type from snapshots.
type Importer interface {
	// EntityType declares the single entity type this importer handles.
	EntityType() entity.Type

	// Import persists the snapshot's entity and returns the result with
	// the two deferred follow-up actions. The importer must not resolve
	// references or emit events itself; it hands both back as actions
	// for the orchestrator or the batch driver to invoke later.
	Import(ctx context.Context, who Principal, data *ExportData, settings ImportSettings) (*ImportResult, error)
}

// RateLimiter is the tenant-scoped admission gate consulted before any
// provider is resolved. Implementations must be safe for concurrent use
// across tenants; a false result consumes no further work.
type RateLimiter interface {
	// CheckEntityExportLimit reports whether the tenant may run another
	// entity export now.
	CheckEntityExportLimit(tenant uuid.UUID) bool

	// CheckEntityImportLimit reports whether the tenant may run another
	// entity import now.
	CheckEntityImportLimit(tenant uuid.UUID) bool
}
