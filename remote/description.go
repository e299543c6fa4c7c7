// Package remote fetches a service description from the preview URL
// and turns it into the engine's catalog shape. The document is
// validated defensively before the engine ever sees it: a missing or
// malformed section fails with a descriptive error instead of reaching
// the mapping session as partial data.
package remote

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/oestevezr/mapstruct"
)

// Description is the remote service description document.
type Description struct {
	Details        Details        `json:"details" validate:"required"`
	BackendAccess  BackendAccess  `json:"backendAccess" validate:"required"`
	ServiceMapping ServiceMapping `json:"serviceMapping" validate:"required"`
}

// Details identify the described service.
type Details struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// BackendAccess describes the backend side: the DAO field universe.
type BackendAccess struct {
	BackendType  string        `json:"backend_type" validate:"required"`
	Transactions []Transaction `json:"transactions" validate:"required,min=1,dive"`
}

// Transaction is one backend transaction with its mappable fields.
type Transaction struct {
	Name   string         `json:"trx_name" validate:"required"`
	Fields []BackendField `json:"fields" validate:"required,min=1,dive"`
}

// BackendField is a DAO-side field; Format is its owning class name.
type BackendField struct {
	Name   string `json:"name" validate:"required"`
	Type   string `json:"type"`
	Format string `json:"format" validate:"required"`
}

// ServiceMapping describes the service side: the DTO field universe,
// grouped by class.
type ServiceMapping struct {
	Classes []ServiceClass `json:"classes" validate:"required,min=1,dive"`
}

// ServiceClass is one DTO class with its declared fields.
type ServiceClass struct {
	Name   string         `json:"name" validate:"required"`
	Fields []ServiceField `json:"fields" validate:"required,min=1,dive"`
}

// ServiceField is a DTO-side field.
type ServiceField struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type"`
}

var validate = validator.New()

// ParseDescription decodes and validates a raw service description.
func ParseDescription(data []byte) (*Description, error) {
	var desc Description

	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %v", mapstruct.ErrMalformedDocument, err)
	}

	if err := validate.Struct(&desc); err != nil {
		return nil, fmt.Errorf("%w: %v", mapstruct.ErrMalformedDocument, err)
	}

	return &desc, nil
}

// Catalog converts the validated description into the engine's catalog
// shape. The DAO side flattens every transaction's fields, each owned
// by its format class.
func (d *Description) Catalog() *mapstruct.Catalog {
	cat := &mapstruct.Catalog{}

	for _, class := range d.ServiceMapping.Classes {
		fields := make([]mapstruct.Field, 0, len(class.Fields))
		for _, f := range class.Fields {
			fields = append(fields, mapstruct.Field{Name: f.Name, Type: f.Type, Owner: class.Name})
		}

		cat.AddSource(class.Name, fields...)
	}

	for _, trx := range d.BackendAccess.Transactions {
		for _, f := range trx.Fields {
			cat.AddTarget(mapstruct.Field{Name: f.Name, Type: f.Type, Owner: f.Format})
		}
	}

	return cat
}
