// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"fmt"
	"strconv"
)

// Dialect captures the engine-specific parts of provisioned-table DDL.
type Dialect struct {
	// Name is the short engine name used in logs and configuration.
	Name string

	// IdentityColumn is the full clause of the implicit primary key column.
	IdentityColumn string

	// SubmittedAtColumn is the full clause of the implicit insertion
	// timestamp column.
	SubmittedAtColumn string

	columnTypes map[ColumnType]string
}

// Postgres renders DDL for PostgreSQL.
var Postgres = Dialect{
	Name:              "postgres",
	IdentityColumn:    `"id" BIGSERIAL PRIMARY KEY`,
	SubmittedAtColumn: `"submitted_at" TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP`,
	columnTypes: map[ColumnType]string{
		ColumnString:  "VARCHAR(" + strconv.Itoa(StringColumnLength) + ")",
		ColumnText:    "TEXT",
		ColumnNumeric: "NUMERIC",
		ColumnDate:    "DATE",
		ColumnBoolean: "BOOLEAN",
	},
}

// SQLite renders DDL for SQLite. Type names are chosen so that SQLite's
// affinity rules give the same behaviour as their Postgres counterparts.
var SQLite = Dialect{
	Name:              "sqlite",
	IdentityColumn:    `"id" INTEGER PRIMARY KEY AUTOINCREMENT`,
	SubmittedAtColumn: `"submitted_at" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP`,
	columnTypes: map[ColumnType]string{
		ColumnString:  "VARCHAR(" + strconv.Itoa(StringColumnLength) + ")",
		ColumnText:    "TEXT",
		ColumnNumeric: "NUMERIC",
		ColumnDate:    "DATE",
		ColumnBoolean: "BOOLEAN",
	},
}

// DialectFor returns the dialect for a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "pgx", "postgres", "postgresql":
		return Postgres, nil
	case "sqlite3", "sqlite":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("no dialect for driver %q", driver)
	}
}

// ColumnSQL renders a column type for this dialect.
func (d Dialect) ColumnSQL(c ColumnType) (string, error) {
	sqlType, ok := d.columnTypes[c]
	if !ok {
		return "", fmt.Errorf("%w: %s in %s", ErrUnsupportedColumnType, c, d.Name)
	}
	return sqlType, nil
}
