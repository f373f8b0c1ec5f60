// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-form-keeper/models"
)

// ─────────────────────────────────────────────
// ValidateIdentifier
// ─────────────────────────────────────────────

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"snake case", "student_name", true},
		{"single letter", "a", true},
		{"digits after letter", "contact_2024", true},
		{"trailing underscore", "name_", true},
		{"uppercase and hyphen", "Student-Name", false},
		{"leading digit", "1field", false},
		{"empty", "", false},
		{"leading underscore", "_name", false},
		{"space", "first name", false},
		{"uppercase only", "NAME", false},
		{"sql metacharacters", "x; DROP TABLE forms", false},
		{"quote", `a"b`, false},
		{"unicode letter", "naïve", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateIdentifier(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.input, got)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidIdentifier)
			var idErr *InvalidIdentifierError
			require.True(t, errors.As(err, &idErr))
			assert.Equal(t, tt.input, idErr.Name)
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"order"`, QuoteIdentifier("order"))
	assert.Equal(t, `"a""b"`, QuoteIdentifier(`a"b`))
}

// ─────────────────────────────────────────────
// MapLogicalType
// ─────────────────────────────────────────────

func TestMapLogicalType(t *testing.T) {
	want := map[models.FieldType]ColumnType{
		models.FieldText:     ColumnString,
		models.FieldSelect:   ColumnString,
		models.FieldRadio:    ColumnString,
		models.FieldFile:     ColumnString,
		models.FieldEmail:    ColumnString,
		models.FieldTextarea: ColumnText,
		models.FieldNumber:   ColumnNumeric,
		models.FieldDate:     ColumnDate,
		models.FieldCheckbox: ColumnBoolean,
	}

	for _, ft := range models.KnownFieldTypes {
		got, ok := want[ft]
		require.True(t, ok, "missing expectation for %s", ft)
		assert.Equal(t, got, MapLogicalType(ft), ft)
	}

	assert.Equal(t, ColumnText, MapLogicalType("rating"))
	assert.Equal(t, ColumnText, MapLogicalType(""))
}

func TestDialect_ColumnSQL(t *testing.T) {
	for _, d := range []Dialect{Postgres, SQLite} {
		for _, ft := range models.KnownFieldTypes {
			sqlType, err := d.ColumnSQL(MapLogicalType(ft))
			require.NoError(t, err)
			assert.NotEmpty(t, sqlType)
		}
	}

	_, err := Postgres.ColumnSQL(ColumnType(99))
	assert.ErrorIs(t, err, ErrUnsupportedColumnType)
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name)

	d, err = DialectFor("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name)

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

// ─────────────────────────────────────────────
// Compiler
// ─────────────────────────────────────────────

func contactFields() []models.Field {
	return []models.Field{
		{Name: "email", Label: "Email", Type: models.FieldEmail, Required: true},
		{Name: "age", Label: "Age", Type: models.FieldNumber},
		{Name: "bio", Type: models.FieldTextarea},
		{Name: "born", Type: models.FieldDate},
		{Name: "agree", Type: models.FieldCheckbox, Required: true},
		{Name: "order", Type: "rating"},
	}
}

func TestCompileCreateTable_Postgres(t *testing.T) {
	stmt, err := NewCompiler(Postgres).CompileCreateTable("contact_2024", contactFields())
	require.NoError(t, err)

	want := `CREATE TABLE IF NOT EXISTS "contact_2024" (
  "id" BIGSERIAL PRIMARY KEY,
  "email" VARCHAR(255) NOT NULL,
  "age" NUMERIC NULL,
  "bio" TEXT NULL,
  "born" DATE NULL,
  "agree" BOOLEAN NOT NULL,
  "order" TEXT NULL,
  "submitted_at" TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	assert.Equal(t, want, stmt.SQL)
	assert.Equal(t, "contact_2024", stmt.Table)
}

func TestCompileCreateTable_SQLite(t *testing.T) {
	stmt, err := NewCompiler(SQLite).CompileCreateTable("contact", contactFields()[:1])
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stmt.SQL, `CREATE TABLE IF NOT EXISTS "contact" (`))
	assert.Contains(t, stmt.SQL, `"id" INTEGER PRIMARY KEY AUTOINCREMENT`)
	assert.Contains(t, stmt.SQL, `"submitted_at" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP`)
}

func TestCompileCreateTable_Deterministic(t *testing.T) {
	c := NewCompiler(Postgres)
	first, err := c.CompileCreateTable("contact", contactFields())
	require.NoError(t, err)
	second, err := c.CompileCreateTable("contact", contactFields())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompileCreateTable_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		table  string
		fields []models.Field
		reason error
	}{
		{"bad table name", "Contact-Form", contactFields(), ErrInvalidIdentifier},
		{"reserved table", "forms", contactFields(), ErrReservedTableName},
		{"engine prefix", "sqlite_master", contactFields(), ErrReservedTableName},
		{"long table", strings.Repeat("a", 64), contactFields(), ErrIdentifierTooLong},
		{"no fields", "contact", nil, ErrNoFields},
		{"bad field name", "contact", []models.Field{{Name: "first name"}}, ErrInvalidIdentifier},
		{"injection in field", "contact", []models.Field{{Name: `x" TEXT); DROP TABLE forms; --`}}, ErrInvalidIdentifier},
		{"reserved id", "contact", []models.Field{{Name: "id"}}, ErrReservedFieldName},
		{"reserved submitted_at", "contact", []models.Field{{Name: "submitted_at"}}, ErrReservedFieldName},
		{"duplicate", "contact", []models.Field{{Name: "a"}, {Name: "b"}, {Name: "a"}}, ErrDuplicateFieldName},
	}

	c := NewCompiler(SQLite)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := c.CompileCreateTable(tt.table, tt.fields)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.reason)
			assert.Empty(t, stmt.SQL)
		})
	}
}

func TestCompileDropTable(t *testing.T) {
	stmt, err := NewCompiler(Postgres).CompileDropTable("contact_2024")
	require.NoError(t, err)
	assert.Equal(t, `DROP TABLE IF EXISTS "contact_2024";`, stmt.SQL)

	_, err = NewCompiler(Postgres).CompileDropTable("bad-name")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

// ─────────────────────────────────────────────
// Projection values
// ─────────────────────────────────────────────

func TestColumnValue(t *testing.T) {
	tests := []struct {
		name  string
		field models.Field
		in    any
		want  any
	}{
		{"nil", models.Field{Type: models.FieldText}, nil, nil},
		{"text", models.Field{Type: models.FieldText}, "hi", "hi"},
		{"number as json.Number", models.Field{Type: models.FieldNumber}, json.Number("42.5"), "42.5"},
		{"number as float", models.Field{Type: models.FieldNumber}, 7.0, 7.0},
		{"number blank", models.Field{Type: models.FieldNumber}, " ", nil},
		{"number string", models.Field{Type: models.FieldNumber}, "12", "12"},
		{"checkbox bool", models.Field{Type: models.FieldCheckbox}, true, true},
		{"checkbox on", models.Field{Type: models.FieldCheckbox}, "on", true},
		{"checkbox zero", models.Field{Type: models.FieldCheckbox}, json.Number("0"), false},
		{"date", models.Field{Type: models.FieldDate}, "2024-05-01", "2024-05-01"},
		{"date blank", models.Field{Type: models.FieldDate}, "", nil},
		{"array to json", models.Field{Type: models.FieldSelect}, []any{"a", "b"}, `["a","b"]`},
		{"number into text", models.Field{Type: models.FieldText}, json.Number("3"), "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ColumnValue(tt.field, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnValue_Errors(t *testing.T) {
	_, err := ColumnValue(models.Field{Type: models.FieldNumber}, "abc")
	assert.Error(t, err)
	_, err = ColumnValue(models.Field{Type: models.FieldCheckbox}, "maybe")
	assert.Error(t, err)
	_, err = ColumnValue(models.Field{Type: models.FieldDate}, 5.0)
	assert.Error(t, err)
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in      any
		value   bool
		set     bool
		wantErr bool
	}{
		{in: nil},
		{in: "  "},
		{in: true, value: true, set: true},
		{in: false, set: true},
		{in: "ON", value: true, set: true},
		{in: "off", set: true},
		{in: "0", set: true},
		{in: json.Number("2"), value: true, set: true},
		{in: 0.0, set: true},
		{in: "maybe", wantErr: true},
		{in: []any{true}, wantErr: true},
	}
	for _, tt := range tests {
		value, set, err := ParseBool(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.value, value, "%v", tt.in)
		assert.Equal(t, tt.set, set, "%v", tt.in)
	}
}

func TestProjectRow(t *testing.T) {
	fields := []models.Field{
		{Name: "email", Type: models.FieldEmail},
		{Name: "age", Type: models.FieldNumber},
	}
	cols, vals, err := ProjectRow(fields, map[string]any{"email": "a@b.co", "extra": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "age"}, cols)
	assert.Equal(t, []any{"a@b.co", nil}, vals)
}
