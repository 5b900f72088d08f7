// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package migration

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/canonical/entitymigration/core/entity"
)

var logger = loggo.GetLogger("entitymigration.migration")

// Service is the orchestration facade over the export and import
// registries and the admission gate. It holds no mutable state of its own
// and is safe for unbounded concurrent use across tenants and entity
// types; concurrent imports of different entities never block one another
// here.
type Service struct {
	exporters *ExportRegistry
	importers *ImportRegistry
	limiter   RateLimiter
}

// NewService returns a Service over the given registries and admission
// gate.
func NewService(exporters *ExportRegistry, importers *ImportRegistry, limiter RateLimiter) (*Service, error) {
	if exporters == nil {
		return nil, errors.NotValidf("nil export registry")
	}
	if importers == nil {
		return nil, errors.NotValidf("nil import registry")
	}
	if limiter == nil {
		return nil, errors.NotValidf("nil rate limiter")
	}
	return &Service{
		exporters: exporters,
		importers: importers,
		limiter:   limiter,
	}, nil
}

// ExportEntity snapshots the identified entity. The tenant's export quota
// is checked before anything else; the exporter is then resolved from the
// identity's type and delegated to, its output returned unchanged.
func (s *Service) ExportEntity(ctx context.Context, who Principal, id entity.Id, settings ExportSettings) (*ExportData, error) {
	if !s.limiter.CheckEntityExportLimit(who.Tenant) {
		return nil, errors.QuotaLimitExceededf("entity export rate limit exceeded for tenant %q", who.Tenant)
	}
	exporter, err := s.exporters.Exporter(id.Type())
	if err != nil {
		return nil, errors.Trace(err)
	}
	logger.Tracef("exporting %s for tenant %s", id, who.Tenant)
	data, err := exporter.Export(ctx, who, id, settings)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return data, nil
}

// ImportEntity reconstructs an entity from a snapshot using the two-phase
// protocol. The tenant's import quota is checked first, then the snapshot
// is validated, the importer is resolved from the snapshot's declared type
// and delegated the primary import. If resolveReferences is true the
// result's reference-resolution action is invoked once; if emitEvents is
// true the event-emission action is invoked once, after reference
// resolution when both are requested. Leaving either flag false leaves the
// corresponding action uninvoked for the caller to run later, typically
// after a whole batch has landed. The full result is returned whichever
// actions ran.
//
// A failure in the primary import is fatal for the entity; a failure in a
// deferred action is reported without rolling anything back. Batch level
// compensation is the caller's responsibility.
func (s *Service) ImportEntity(
	ctx context.Context,
	who Principal,
	data *ExportData,
	settings ImportSettings,
	resolveReferences, emitEvents bool,
) (*ImportResult, error) {
	if !s.limiter.CheckEntityImportLimit(who.Tenant) {
		return nil, errors.QuotaLimitExceededf("entity import rate limit exceeded for tenant %q", who.Tenant)
	}
	if err := data.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	importer, err := s.importers.Importer(data.Type)
	if err != nil {
		return nil, errors.Trace(err)
	}
	logger.Tracef("importing %s for tenant %s", data.Entity.EntityId(), who.Tenant)
	result, err := importer.Import(ctx, who, data, settings)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if result == nil {
		return nil, errors.Errorf("importer for entity type %q returned no result", data.Type)
	}

	if resolveReferences {
		if err := result.ResolveReferences.Invoke(ctx); err != nil {
			return nil, errors.Trace(err)
		}
	}
	if emitEvents {
		if err := result.EmitEvents.Invoke(ctx); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return result, nil
}

// ImportOrder returns the total ordering over entity types that a batch
// importer must follow so that referenced entities exist before their
// referrers. The ordering is advisory: the service does not serialize or
// reorder calls itself.
func (s *Service) ImportOrder() func(a, b entity.Type) int {
	return entity.CompareImportOrder
}
