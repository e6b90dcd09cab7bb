// Package colab holds the assets embedded into the colab binaries.
package colab

import "embed"

// TemplateFS contains the HTML page templates and the email templates.
//
//go:embed templates
var TemplateFS embed.FS

// MigrationsFS contains the SQL schema migrations.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
