// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import "github.com/MKhiriev/go-form-keeper/models"

// ColumnType is the engine-independent storage type of a provisioned column.
type ColumnType int

const (
	// ColumnText is unbounded text.
	ColumnText ColumnType = iota
	// ColumnString is text bounded to [StringColumnLength] characters.
	ColumnString
	// ColumnNumeric is an arbitrary precision number.
	ColumnNumeric
	// ColumnDate is a calendar date without time.
	ColumnDate
	// ColumnBoolean is a true/false flag.
	ColumnBoolean
)

// StringColumnLength bounds ColumnString columns.
const StringColumnLength = 255

func (c ColumnType) String() string {
	switch c {
	case ColumnString:
		return "string"
	case ColumnNumeric:
		return "numeric"
	case ColumnDate:
		return "date"
	case ColumnBoolean:
		return "boolean"
	default:
		return "text"
	}
}

// MapLogicalType maps a field's logical type to its column type.
//
//	text, select, radio, file, email -> ColumnString
//	textarea                         -> ColumnText
//	number                           -> ColumnNumeric
//	date                             -> ColumnDate
//	checkbox                         -> ColumnBoolean
//	anything else                    -> ColumnText
func MapLogicalType(t models.FieldType) ColumnType {
	switch t {
	case models.FieldText, models.FieldSelect, models.FieldRadio, models.FieldFile, models.FieldEmail:
		return ColumnString
	case models.FieldTextarea:
		return ColumnText
	case models.FieldNumber:
		return ColumnNumeric
	case models.FieldDate:
		return ColumnDate
	case models.FieldCheckbox:
		return ColumnBoolean
	default:
		return ColumnText
	}
}
