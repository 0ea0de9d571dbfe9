package models

import "fmt"

// TemplateFamily identifies the kind of project skeleton to generate.
type TemplateFamily string

const (
	FamilyAPIService TemplateFamily = "api-service"
	FamilyWebApp     TemplateFamily = "web-app"
	FamilyCLITool    TemplateFamily = "cli-tool"
)

// AllTemplateFamilies returns every template family in display order.
func AllTemplateFamilies() []TemplateFamily {
	return []TemplateFamily{FamilyAPIService, FamilyWebApp, FamilyCLITool}
}

// IsValid reports whether f is a known template family.
func (f TemplateFamily) IsValid() bool {
	switch f {
	case FamilyAPIService, FamilyWebApp, FamilyCLITool:
		return true
	}
	return false
}

// DBEngine identifies the database engine a project talks to.
type DBEngine string

const (
	EngineNone     DBEngine = "none"
	EngineSQLite   DBEngine = "sqlite"
	EngineMySQL    DBEngine = "mysql"
	EnginePostgres DBEngine = "postgres"
	EngineMSSQL    DBEngine = "mssql"
	EngineMongoDB  DBEngine = "mongodb"
)

// AllDBEngines returns every database engine in display order.
func AllDBEngines() []DBEngine {
	return []DBEngine{EngineNone, EngineSQLite, EngineMySQL, EnginePostgres, EngineMSSQL, EngineMongoDB}
}

// IsValid reports whether e is a known database engine.
func (e DBEngine) IsValid() bool {
	switch e {
	case EngineNone, EngineSQLite, EngineMySQL, EnginePostgres, EngineMSSQL, EngineMongoDB:
		return true
	}
	return false
}

// IsRelational reports whether e speaks SQL through database/sql.
func (e DBEngine) IsRelational() bool {
	switch e {
	case EngineSQLite, EngineMySQL, EnginePostgres, EngineMSSQL:
		return true
	}
	return false
}

// DBLibrary identifies the data-access library used by generated code.
type DBLibrary string

const (
	LibraryNone    DBLibrary = "none"
	LibraryStdlib  DBLibrary = "stdlib"
	LibrarySqlx    DBLibrary = "sqlx"
	LibraryGorm    DBLibrary = "gorm"
	LibraryMongoDB DBLibrary = "mongodb"
)

// AllDBLibraries returns every database access library in display order.
func AllDBLibraries() []DBLibrary {
	return []DBLibrary{LibraryNone, LibraryStdlib, LibrarySqlx, LibraryGorm, LibraryMongoDB}
}

// IsValid reports whether l is a known database access library.
func (l DBLibrary) IsValid() bool {
	switch l {
	case LibraryNone, LibraryStdlib, LibrarySqlx, LibraryGorm, LibraryMongoDB:
		return true
	}
	return false
}

// Selection is one value per selection axis. It is a plain value and is
// compared with ==.
type Selection struct {
	TemplateFamily TemplateFamily `yaml:"template" json:"template"`
	DBEngine       DBEngine       `yaml:"db_engine" json:"db_engine"`
	DBLibrary      DBLibrary      `yaml:"db_library" json:"db_library"`
}

// HasDatabase reports whether the selection asks for any database at all.
func (s Selection) HasDatabase() bool {
	return s.DBEngine != EngineNone || s.DBLibrary != LibraryNone
}

// String renders the selection as family/engine/library.
func (s Selection) String() string {
	return fmt.Sprintf("%s/%s/%s", s.TemplateFamily, s.DBEngine, s.DBLibrary)
}

// Slug renders the selection as a filesystem-safe directory name.
func (s Selection) Slug() string {
	return fmt.Sprintf("%s_%s_%s", s.TemplateFamily, s.DBEngine, s.DBLibrary)
}
