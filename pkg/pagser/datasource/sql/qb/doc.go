// Package qb prepares hand-written SQL templates for a specific dialect.
//
// Templates are written with `?` placeholders. Use New(...), or FromDB(...) with a datasource
// that exposes Dialect(), to get a Builder that rewrites them to the placeholder style of the
// target database ($1, $2, ... for postgres). Question marks inside quoted literals, quoted
// identifiers, line comments and block comments are left untouched.
package qb
