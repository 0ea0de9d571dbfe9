// Package models provides the shared data models for scaffold.
//
// This package contains the selection axes, the project context, and the
// supported language table used across the engine, the CLI and the wizard.
//
// # Selection Axes
//
// A project is described by three closed enumerations:
//   - [TemplateFamily]: api-service, web-app, cli-tool
//   - [DBEngine]: none, sqlite, mysql, postgres, mssql, mongodb
//   - [DBLibrary]: none, stdlib, sqlx, gorm, mongodb
//
// Each axis type has an IsValid method and an All* function listing its
// values in display order:
//
//	engine := models.EngineSQLite
//	if engine.IsValid() {
//	    fmt.Println("Valid engine:", engine)
//	}
//
// A [Selection] groups one value per axis. Whether the combination makes
// sense is decided by the selection package, not here.
//
// # Project Context
//
// [ProjectContext] carries the caller-owned values substituted into
// templates: project name, locale, and an optional module path.
//
// # Language Support
//
// Supported locales can be queried:
//
//	langs := models.SupportedLanguages() // ["en", "ko", "ja", "zh", ...]
//	name := models.GetLanguageName("ko") // "Korean (한국어)"
package models
