// Package appfs embeds the files shipped with the binaries: database migrations and email templates.
// Email layouts are prefixed with "_", hence all:.
package appfs

import "embed"

//go:embed migrations all:templates
var FS embed.FS

const (
	MigrationsDir     = "migrations"
	EmailTemplatesDir = "templates/email"
)
