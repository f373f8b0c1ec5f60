// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/MKhiriev/go-form-keeper/models"
)

// Implicit columns present in every provisioned table.
const (
	IDColumn          = "id"
	SubmittedAtColumn = "submitted_at"
)

// reservedTables are the service's own tables; a form may not claim them.
var reservedTables = []string{"forms", "form_responses", "goose_db_version"}

// reservedTablePrefixes are namespaces owned by the storage engines.
var reservedTablePrefixes = []string{"pg_", "sqlite_"}

// ReservedTableNames returns the names no provisioned table may take.
func ReservedTableNames() []string {
	return append([]string(nil), reservedTables...)
}

// Statement is a compiled DDL statement together with the table it targets.
type Statement struct {
	Table string
	SQL   string
}

func (s Statement) String() string {
	return s.SQL
}

// Compiler turns field descriptors into DDL for one dialect.
type Compiler struct {
	dialect Dialect
}

// NewCompiler returns a Compiler emitting statements for d.
func NewCompiler(d Dialect) *Compiler {
	return &Compiler{dialect: d}
}

// Dialect returns the dialect the compiler renders for.
func (c *Compiler) Dialect() Dialect {
	return c.dialect
}

// CompileCreateTable emits an idempotent CREATE TABLE IF NOT EXISTS for the
// provisioned table of a form. Every identifier is validated before any SQL
// is produced.
func (c *Compiler) CompileCreateTable(tableName string, fields []models.Field) (Statement, error) {
	if err := ValidateTableName(tableName); err != nil {
		return Statement{}, err
	}
	if err := ValidateFields(fields); err != nil {
		return Statement{}, err
	}

	columns := make([]string, 0, len(fields)+2)
	columns = append(columns, c.dialect.IdentityColumn)
	for _, f := range fields {
		sqlType, err := c.dialect.ColumnSQL(MapLogicalType(f.Type))
		if err != nil {
			return Statement{}, err
		}

		nullability := "NULL"
		if f.Required {
			nullability = "NOT NULL"
		}
		columns = append(columns, fmt.Sprintf("%s %s %s", QuoteIdentifier(f.Name), sqlType, nullability))
	}
	columns = append(columns, c.dialect.SubmittedAtColumn)

	return Statement{
		Table: tableName,
		SQL: fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
			QuoteIdentifier(tableName), strings.Join(columns, ",\n  ")),
	}, nil
}

// CompileDropTable emits DROP TABLE IF EXISTS, safe to run against a table
// that was never created or was already dropped.
func (c *Compiler) CompileDropTable(tableName string) (Statement, error) {
	if err := ValidateTableName(tableName); err != nil {
		return Statement{}, err
	}

	return Statement{
		Table: tableName,
		SQL:   fmt.Sprintf("DROP TABLE IF EXISTS %s;", QuoteIdentifier(tableName)),
	}, nil
}

// ValidateTableName applies the identifier rules plus the length limit and
// the reserved-name checks for provisioned tables.
func ValidateTableName(name string) error {
	if _, err := ValidateIdentifier(name); err != nil {
		return &InvalidIdentifierError{Kind: "table", Name: name, Reason: ErrInvalidIdentifier}
	}
	if len(name) > MaxIdentifierLength {
		return &InvalidIdentifierError{Kind: "table", Name: name, Reason: ErrIdentifierTooLong}
	}
	if lo.Contains(reservedTables, name) {
		return &InvalidIdentifierError{Kind: "table", Name: name, Reason: ErrReservedTableName}
	}
	for _, prefix := range reservedTablePrefixes {
		if strings.HasPrefix(name, prefix) {
			return &InvalidIdentifierError{Kind: "table", Name: name, Reason: ErrReservedTableName}
		}
	}
	return nil
}

// ValidateFields checks every field name: identifier syntax, length, no
// collision with the implicit columns and no duplicates.
func ValidateFields(fields []models.Field) error {
	if len(fields) == 0 {
		return ErrNoFields
	}

	for _, f := range fields {
		if _, err := ValidateIdentifier(f.Name); err != nil {
			return &InvalidIdentifierError{Kind: "field", Name: f.Name, Reason: ErrInvalidIdentifier}
		}
		if len(f.Name) > MaxIdentifierLength {
			return &InvalidIdentifierError{Kind: "field", Name: f.Name, Reason: ErrIdentifierTooLong}
		}
		if f.Name == IDColumn || f.Name == SubmittedAtColumn {
			return &InvalidIdentifierError{Kind: "field", Name: f.Name, Reason: ErrReservedFieldName}
		}
	}

	names := lo.Map(fields, func(f models.Field, _ int) string { return f.Name })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return &InvalidIdentifierError{Kind: "field", Name: dups[0], Reason: ErrDuplicateFieldName}
	}

	return nil
}
