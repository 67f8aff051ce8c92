package persistence

import _ "embed"

// SchemaSQL creates the employees and departments tables and the trigger
// that NOTIFYs orgchart_employees_changed with "<tenant>:<op>".
//
//go:embed schema/orgchart-schema.sql
var SchemaSQL string
