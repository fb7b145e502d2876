// Package output renders hublink-cli results as a table, JSON or YAML.
//
// Table output is meant for people: structs render as FIELD/VALUE pairs
// and slices of structs as one row per element. JSON and YAML output
// keep the server's field names for scripting.
package output
