// Package model defines the records owned by the store: products, sales,
// expenses, users, audit log entries and settings, plus the input and
// patch shapes callers use to create and modify them.
//
// Every record carries an opaque ID assigned at creation time. Calendar
// days are ISO "YYYY-MM-DD" strings so lexicographic order is date order.
package model
