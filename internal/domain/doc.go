// Package domain models the disaster-alert workbook and session data.
//
// # Workbook Conventions
//
// The authoritative store is a spreadsheet-shaped workbook with three tabs.
// Rows are positional slices of strings; row 0 of every tab is a header.
//
// "Users Info" (submissions):
//
//	Column A: phone number
//	Column B: area
//	Column C: city
//	Column D: alert type
//	Column E: description
//
// The logical key is (area, city). The key is not unique: historical rows may
// share it, and the reconciler's documented policy is to overwrite the alert
// type and description of every matching row, or append exactly one new row
// when no match exists.
//
// "Sheet1" (generic alerts): free-form header; cells are exposed as records
// keyed by the snake_cased header names.
//
// "Alerts" (AI feed): columns are located by case-insensitive substring match
// on the header: a "pubdate"/"date" column, a "risk"/"percentage" column, and
// a "title"/"name" column. Risk parses as a float, defaulting to 0; severity
// is risk/100; records with blank titles are dropped.
//
// # Acknowledgment Semantics
//
// Every valid submission produces a SubmissionAck regardless of whether the
// workbook write succeeded. The workbook is best-effort storage; failed writes
// degrade to a bounded in-process fallback list.
package domain
