// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package ratelimit implements the tenant-scoped admission gate over token
// buckets, one bucket per tenant per operation kind.
package ratelimit

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/ratelimit"
)

// Config holds the bucket parameters for both operation kinds. A tenant's
// bucket starts full at the burst size and refills one token per fill
// interval.
type Config struct {
	Clock clock.Clock

	ExportFillInterval time.Duration
	ExportBurst        int64

	ImportFillInterval time.Duration
	ImportBurst        int64
}

// Validate returns an error if the config cannot produce a limiter.
func (c Config) Validate() error {
	if c.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	if c.ExportFillInterval <= 0 || c.ImportFillInterval <= 0 {
		return errors.NotValidf("non-positive fill interval")
	}
	if c.ExportBurst <= 0 || c.ImportBurst <= 0 {
		return errors.NotValidf("non-positive burst size")
	}
	return nil
}

// TenantRateLimiter gates entity exports and imports per tenant,
// independently for the two operation kinds. It is safe for concurrent use
// from many tenants. Buckets are created lazily on a tenant's first
// operation of each kind and retained for the life of the limiter.
type TenantRateLimiter struct {
	config Config

	mu      sync.Mutex
	exports map[uuid.UUID]*ratelimit.Bucket
	imports map[uuid.UUID]*ratelimit.Bucket
}

// NewTenantRateLimiter returns a limiter for the given bucket parameters.
func NewTenantRateLimiter(config Config) (*TenantRateLimiter, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &TenantRateLimiter{
		config:  config,
		exports: make(map[uuid.UUID]*ratelimit.Bucket),
		imports: make(map[uuid.UUID]*ratelimit.Bucket),
	}, nil
}

// CheckEntityExportLimit implements migration.RateLimiter.
func (l *TenantRateLimiter) CheckEntityExportLimit(tenant uuid.UUID) bool {
	return l.take(l.exports, tenant, l.config.ExportFillInterval, l.config.ExportBurst)
}

// CheckEntityImportLimit implements migration.RateLimiter.
func (l *TenantRateLimiter) CheckEntityImportLimit(tenant uuid.UUID) bool {
	return l.take(l.imports, tenant, l.config.ImportFillInterval, l.config.ImportBurst)
}

func (l *TenantRateLimiter) take(buckets map[uuid.UUID]*ratelimit.Bucket, tenant uuid.UUID, fillInterval time.Duration, burst int64) bool {
	l.mu.Lock()
	bucket, ok := buckets[tenant]
	if !ok {
		bucket = ratelimit.NewBucketWithClock(fillInterval, burst, bucketClock{l.config.Clock})
		buckets[tenant] = bucket
	}
	l.mu.Unlock()
	return bucket.TakeAvailable(1) > 0
}

// bucketClock adapts a juju clock to the token bucket's clock interface.
type bucketClock struct {
	clock.Clock
}

func (c bucketClock) Sleep(d time.Duration) {
	<-c.Clock.After(d)
}
