// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package exporters_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/juju/errors"
	jujutesting "github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/canonical/entitymigration/core/entity"
	"github.com/canonical/entitymigration/migration"
	"github.com/canonical/entitymigration/migration/exporters"
)

type fakeEntity struct {
	id   entity.Id
	name string
}

func (e *fakeEntity) EntityId() entity.Id {
	return e.id
}

func (e *fakeEntity) EntityName() string {
	return e.name
}

type fakeReader struct {
	jujutesting.Stub
	entity    entity.Entity
	relations []migration.Relation
}

func (r *fakeReader) Entity(ctx context.Context, who migration.Principal, id entity.Id) (entity.Entity, error) {
	r.MethodCall(r, "Entity", who, id)
	if err := r.NextErr(); err != nil {
		return nil, err
	}
	return r.entity, nil
}

func (r *fakeReader) Relations(ctx context.Context, who migration.Principal, id entity.Id) ([]migration.Relation, error) {
	r.MethodCall(r, "Relations", who, id)
	if err := r.NextErr(); err != nil {
		return nil, err
	}
	return r.relations, nil
}

type defaultSuite struct {
	reader *fakeReader
	who    migration.Principal
	id     entity.Id
}

var _ = gc.Suite(&defaultSuite{})

func (s *defaultSuite) SetUpTest(c *gc.C) {
	s.id = entity.NewId(entity.Device, uuid.New())
	s.reader = &fakeReader{
		entity: &fakeEntity{id: s.id, name: "thermostat"},
		relations: []migration.Relation{{
			From: s.id,
			To:   entity.NewId(entity.Asset, uuid.New()),
			Kind: "contains",
		}},
	}
	s.who = migration.Principal{User: uuid.New(), Tenant: uuid.New()}
}

func (s *defaultSuite) TestNewDefaultValidation(c *gc.C) {
	_, err := exporters.NewDefault(nil, nil)
	c.Assert(err, jc.ErrorIs, errors.NotValid)
}

func (s *defaultSuite) TestDeclaresNoTypes(c *gc.C) {
	exporter, err := exporters.NewDefault(s.reader, s.reader)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(exporter.SupportedTypes(), gc.HasLen, 0)
}

func (s *defaultSuite) TestExport(c *gc.C) {
	exporter, err := exporters.NewDefault(s.reader, s.reader)
	c.Assert(err, jc.ErrorIsNil)

	data, err := exporter.Export(context.Background(), s.who, s.id, migration.ExportSettings{})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(data.Type, gc.Equals, entity.Device)
	c.Assert(data.Entity, gc.Equals, s.reader.entity)
	c.Assert(data.Relations, gc.HasLen, 0)
	s.reader.CheckCallNames(c, "Entity")
}

func (s *defaultSuite) TestExportWithRelations(c *gc.C) {
	exporter, err := exporters.NewDefault(s.reader, s.reader)
	c.Assert(err, jc.ErrorIsNil)

	data, err := exporter.Export(context.Background(), s.who, s.id, migration.ExportSettings{ExportRelations: true})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(data.Relations, gc.DeepEquals, s.reader.relations)
	s.reader.CheckCallNames(c, "Entity", "Relations")
}

func (s *defaultSuite) TestExportRelationsIgnoredWithoutReader(c *gc.C) {
	exporter, err := exporters.NewDefault(s.reader, nil)
	c.Assert(err, jc.ErrorIsNil)

	data, err := exporter.Export(context.Background(), s.who, s.id, migration.ExportSettings{ExportRelations: true})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(data.Relations, gc.HasLen, 0)
}

func (s *defaultSuite) TestExportReadErrorPropagates(c *gc.C) {
	boom := errors.NotFoundf("entity")
	s.reader.SetErrors(boom)
	exporter, err := exporters.NewDefault(s.reader, nil)
	c.Assert(err, jc.ErrorIsNil)

	_, err = exporter.Export(context.Background(), s.who, s.id, migration.ExportSettings{})
	c.Assert(err, jc.ErrorIs, errors.NotFound)
}

func (s *defaultSuite) TestExportRelationErrorPropagates(c *gc.C) {
	boom := errors.New("relation store down")
	s.reader.SetErrors(nil, boom)
	exporter, err := exporters.NewDefault(s.reader, s.reader)
	c.Assert(err, jc.ErrorIsNil)

	_, err = exporter.Export(context.Background(), s.who, s.id, migration.ExportSettings{ExportRelations: true})
	c.Assert(err, jc.ErrorIs, boom)
}

type baseSuite struct {
	reader *fakeReader
}

var _ = gc.Suite(&baseSuite{})

func (s *baseSuite) SetUpTest(c *gc.C) {
	s.reader = &fakeReader{}
}

func (s *baseSuite) TestSupportedTypesSortedAndDeduplicated(c *gc.C) {
	exporter, err := exporters.NewBase(s.reader, nil,
		entity.Device, entity.Asset, entity.Device)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(exporter.SupportedTypes(), gc.DeepEquals, []entity.Type{
		entity.Asset, entity.Device,
	})
}

func (s *baseSuite) TestValidation(c *gc.C) {
	_, err := exporters.NewBase(nil, nil, entity.Device)
	c.Check(err, jc.ErrorIs, errors.NotValid)
	_, err = exporters.NewBase(s.reader, nil)
	c.Check(err, jc.ErrorIs, errors.NotValid)
	_, err = exporters.NewBase(s.reader, nil, entity.Type(""))
	c.Check(err, jc.ErrorIs, errors.NotValid)
}

func (s *baseSuite) TestSatisfiesExporter(c *gc.C) {
	exporter, err := exporters.NewBase(s.reader, nil, entity.Device)
	c.Assert(err, jc.ErrorIsNil)
	var _ migration.Exporter = exporter
}
