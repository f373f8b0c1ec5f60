package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/lo"

	"github.com/MKhiriev/go-form-keeper/internal/schema"
	"github.com/MKhiriev/go-form-keeper/models"
)

const (
	formsTable     = "forms"
	responsesTable = "form_responses"
)

var formColumns = []string{
	"id",
	"title",
	"description",
	"fields",
	"table_name",
	"created_by",
	"created_at",
	"updated_at",
}

var responseColumns = []string{
	"id",
	"form_id",
	"data",
	"submitted_at",
}

func prefixed(prefix string, columns []string) []string {
	return lo.Map(columns, func(c string, _ int) string { return prefix + "." + c })
}

func buildInsertFormQuery(sb sq.StatementBuilderType, form models.Form, fieldsJSON string) (string, []any, error) {
	return sb.Insert(formsTable).
		Columns(formColumns...).
		Values(form.ID, form.Title, form.Description, fieldsJSON, form.TableName, form.CreatedBy, form.CreatedAt, form.UpdatedAt).
		ToSql()
}

func buildTableNameExistsQuery(sb sq.StatementBuilderType, tableName string) (string, []any, error) {
	return sb.Select("1").
		From(formsTable).
		Where(sq.Eq{"table_name": tableName}).
		Limit(1).
		ToSql()
}

func buildSelectFormQuery(sb sq.StatementBuilderType, formID string) (string, []any, error) {
	return sb.Select(formColumns...).
		From(formsTable).
		Where(sq.Eq{"id": formID}).
		ToSql()
}

func buildSelectOwnedFormQuery(sb sq.StatementBuilderType, formID, ownerID string) (string, []any, error) {
	return sb.Select(formColumns...).
		From(formsTable).
		Where(sq.Eq{"id": formID, "created_by": ownerID}).
		ToSql()
}

// buildListFormsByOwnerQuery counts responses per form with a LEFT JOIN so
// forms without responses are listed with zero.
func buildListFormsByOwnerQuery(sb sq.StatementBuilderType, ownerID string) (string, []any, error) {
	columns := append(prefixed("f", formColumns), "COUNT(r.id) AS response_count")

	return sb.Select(columns...).
		From(formsTable+" f").
		LeftJoin(responsesTable+" r ON r.form_id = f.id").
		Where(sq.Eq{"f.created_by": ownerID}).
		GroupBy(prefixed("f", formColumns)...).
		OrderBy("f.created_at DESC", "f.id DESC").
		ToSql()
}

func buildDeleteResponsesQuery(sb sq.StatementBuilderType, formID string) (string, []any, error) {
	return sb.Delete(responsesTable).
		Where(sq.Eq{"form_id": formID}).
		ToSql()
}

func buildDeleteFormQuery(sb sq.StatementBuilderType, formID, ownerID string) (string, []any, error) {
	return sb.Delete(formsTable).
		Where(sq.Eq{"id": formID, "created_by": ownerID}).
		ToSql()
}

func buildInsertResponseQuery(sb sq.StatementBuilderType, response models.FormResponse, dataJSON string) (string, []any, error) {
	return sb.Insert(responsesTable).
		Columns(responseColumns...).
		Values(response.ID, response.FormID, dataJSON, response.SubmittedAt).
		ToSql()
}

func buildListResponsesQuery(sb sq.StatementBuilderType, formID string) (string, []any, error) {
	return sb.Select(responseColumns...).
		From(responsesTable).
		Where(sq.Eq{"form_id": formID}).
		OrderBy("submitted_at DESC", "id DESC").
		ToSql()
}

// buildInsertRowQuery targets a provisioned table. Table and column names
// must have passed schema validation; they are quoted here.
func buildInsertRowQuery(sb sq.StatementBuilderType, tableName string, columns []string, values []any) (string, []any, error) {
	if len(columns) != len(values) {
		return "", nil, fmt.Errorf("%d columns but %d values", len(columns), len(values))
	}
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("no columns to insert into %s", tableName)
	}

	quoted := lo.Map(columns, func(c string, _ int) string { return schema.QuoteIdentifier(c) })
	return sb.Insert(schema.QuoteIdentifier(tableName)).
		Columns(quoted...).
		Values(values...).
		ToSql()
}

// buildTableExistsQuery matches any relation holding the name, not only
// tables: indexes and sequences share the namespace, and CREATE TABLE IF NOT
// EXISTS silently skips over them on Postgres.
func buildTableExistsQuery(sb sq.StatementBuilderType, dialect schema.Dialect, tableName string) (string, []any, error) {
	if dialect.Name == schema.Postgres.Name {
		return sb.Select("1").
			From("pg_catalog.pg_class c").
			Join("pg_catalog.pg_namespace n ON n.oid = c.relnamespace").
			Where("n.nspname = current_schema()").
			Where(sq.Eq{"c.relname": tableName}).
			ToSql()
	}

	return sb.Select("1").
		From("sqlite_master").
		Where(sq.Eq{"name": tableName}).
		ToSql()
}

// buildListOrphanTablesQuery finds tables shaped like provisioned tables
// (they have a submitted_at column) that are neither service tables nor
// referenced by a form.
func buildListOrphanTablesQuery(sb sq.StatementBuilderType, dialect schema.Dialect) (string, []any, error) {
	unreferenced := "NOT EXISTS (SELECT 1 FROM " + formsTable + " f WHERE f.table_name = %s)"

	if dialect.Name == schema.Postgres.Name {
		return sb.Select("c.table_name").
			From("information_schema.columns c").
			Where("c.table_schema = current_schema()").
			Where(sq.Eq{"c.column_name": schema.SubmittedAtColumn}).
			Where(sq.NotEq{"c.table_name": schema.ReservedTableNames()}).
			Where(fmt.Sprintf(unreferenced, "c.table_name")).
			OrderBy("c.table_name").
			ToSql()
	}

	return sb.Select("m.name").
		From("sqlite_master m").
		Where(sq.Eq{"m.type": "table"}).
		Where(sq.Expr("EXISTS (SELECT 1 FROM pragma_table_info(m.name) p WHERE p.name = ?)", schema.SubmittedAtColumn)).
		Where(sq.NotEq{"m.name": schema.ReservedTableNames()}).
		Where(sq.NotLike{"m.name": "sqlite_%"}).
		Where(fmt.Sprintf(unreferenced, "m.name")).
		OrderBy("m.name").
		ToSql()
}
