// Package schemas embeds the JSON Schemas shipped with verdict.
package schemas

import _ "embed"

// ScorecardSchemaJSON is the JSON Schema for persisted scorecards.
//
//go:embed scorecard.schema.json
var ScorecardSchemaJSON string
