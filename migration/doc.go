// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package migration is the orchestration core of the entity export/import
// subsystem. It turns live configuration entities into portable snapshots
// and reconstitutes them elsewhere, delegating all type-specific work to
// registered exporter and importer providers.
//
// The package owns three things and nothing else: resolution of an entity
// type to the single responsible provider, tenant-scoped admission control
// ahead of any delegation, and the two-phase import protocol that defers
// cross-entity reference resolution and event emission until explicitly
// requested. Serialization formats, field mapping, rate limit internals and
// persistence all belong to collaborators.
//
// Failures surface as juju/errors constant errors so callers can
// discriminate with errors.Is:
//
//   - errors.QuotaLimitExceeded: the tenant's export or import rate limit
//     was exceeded. Correctable with backoff; nothing was delegated.
//   - errors.NotValid: the submitted snapshot is malformed (missing entity
//     or entity id). A caller error; no mutation occurred.
//   - errors.NotSupported: no provider is registered for the requested
//     entity type. A configuration fault; a correctly provisioned
//     deployment never sees it for types in the supported list.
//
// Errors raised by a resolved provider propagate to the caller unchanged
// in identity; the service neither translates nor suppresses delegate
// failures, and nothing is retried or rolled back at this layer.
package migration
