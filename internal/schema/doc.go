// Package schema compiles form field descriptors into storage DDL.
//
// It contains the identifier sanitizer applied to every user-supplied table
// and field name, the mapping from logical field types to column types, the
// per-engine [Dialect] rendering, and the [Compiler] that emits idempotent
// CREATE TABLE / DROP TABLE statements. Nothing in this package opens a
// database connection; statements are executed by the store package.
package schema
