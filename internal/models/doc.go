// Package models defines the data transfer objects shared by the migration
// pipeline: tracks extracted from the source service, playlist references on
// both sides, and the request/result pair for a single run.
//
// All types are plain data. They are produced once and never mutated after a
// run completes.
package models
