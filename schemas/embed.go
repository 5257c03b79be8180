package schemas

import "embed"

// SchemasFS содержит все JSON-схемы событий.
//
//go:embed events
var SchemasFS embed.FS
