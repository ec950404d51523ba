// Package download orchestrates download requests end to end: it registers
// jobs, builds plans, drives the extraction gateway, resolves produced
// files and assembles batch responses with deferred cleanup.
package download
