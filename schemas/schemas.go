// Package schemas хранит JSON-схемы входящих запросов и исходящих событий.
package schemas

import "embed"

//go:embed requests events
var SchemasFS embed.FS
