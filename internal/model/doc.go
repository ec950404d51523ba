// Package model contains the domain types shared across the server:
// time ranges, the format catalog, download plans, batch results and the
// HTTP request/response shapes.
package model
