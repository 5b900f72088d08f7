// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package entity holds the discriminants and identity types shared by the
// export and import sides of the migration service.
package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/juju/errors"
)

// Type discriminates the category of a manageable entity. The migration
// service treats it as an opaque tag; providers give it meaning.
type Type string

const (
	Customer       Type = "customer"
	Asset          Type = "asset"
	RuleDefinition Type = "rule-definition"
	Dashboard      Type = "dashboard"
	DeviceTemplate Type = "device-template"
	Device         Type = "device"
	UIBundle       Type = "ui-bundle"
)

// supportedTypes is the fixed list of entity types the platform exports and
// imports, in import precedence order: an entity type appears after every
// type it may hold references to.
var supportedTypes = []Type{
	Customer,
	Asset,
	RuleDefinition,
	Dashboard,
	DeviceTemplate,
	Device,
	UIBundle,
}

// SupportedTypes returns the fixed list of supported entity types in import
// precedence order. The returned slice is a copy and may be modified freely.
func SupportedTypes() []Type {
	return append([]Type(nil), supportedTypes...)
}

// IsSupported reports whether t is in the fixed supported list.
func IsSupported(t Type) bool {
	for _, known := range supportedTypes {
		if known == t {
			return true
		}
	}
	return false
}

// Validate returns an error if the type is empty.
func (t Type) Validate() error {
	if t == "" {
		return errors.NotValidf("empty entity type")
	}
	return nil
}

// String is the type's wire representation.
func (t Type) String() string {
	return string(t)
}

// Id identifies one entity instance and carries its type. The zero Id is
// invalid.
type Id struct {
	kind Type
	uuid uuid.UUID
}

// NewId returns an Id for the given type and UUID.
func NewId(kind Type, id uuid.UUID) Id {
	return Id{kind: kind, uuid: id}
}

// ParseId parses an Id from its "<type>:<uuid>" string form.
func ParseId(s string) (Id, error) {
	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return Id{}, errors.NotValidf("entity id %q", s)
	}
	id, err := uuid.Parse(rest)
	if err != nil || kind == "" {
		return Id{}, errors.NotValidf("entity id %q", s)
	}
	return Id{kind: Type(kind), uuid: id}, nil
}

// Type returns the entity type the id carries.
func (id Id) Type() Type {
	return id.kind
}

// UUID returns the instance part of the id.
func (id Id) UUID() uuid.UUID {
	return id.uuid
}

// IsZero reports whether the id is the zero value.
func (id Id) IsZero() bool {
	return id.kind == "" && id.uuid == uuid.Nil
}

// Validate returns an error if either part of the id is missing.
func (id Id) Validate() error {
	if err := id.kind.Validate(); err != nil {
		return errors.Trace(err)
	}
	if id.uuid == uuid.Nil {
		return errors.NotValidf("entity id with nil uuid")
	}
	return nil
}

// String returns the "<type>:<uuid>" form accepted by ParseId.
func (id Id) String() string {
	return fmt.Sprintf("%s:%s", id.kind, id.uuid)
}

// Entity is implemented by anything the platform can export and re-import.
type Entity interface {
	// EntityId identifies the entity and carries its type.
	EntityId() Id

	// EntityName is the entity's display name, used by providers that
	// locate existing entities by name on import.
	EntityName() string
}
