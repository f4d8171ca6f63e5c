package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and run tracking.
	DatabaseBackend string

	// DensityLabel represents how crowded a group's lanes are.
	DensityLabel string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All density labels supported.
const (
	PackedDensity  DensityLabel = "Packed"
	CrowdedDensity DensityLabel = "Crowded"
	BusyDensity    DensityLabel = "Busy"
	SparseDensity  DensityLabel = "Sparse"
)

// Grouping defaults.
const (
	// UnknownGroup is the title of the bucket holding items without a value
	// for the grouping field.
	UnknownGroup = "Unknown"

	// DefaultGroupField is the field items are grouped by when none is given.
	DefaultGroupField = "team"

	// DefaultLocale is the collation language for group titles.
	DefaultLocale = "en"

	// DefaultPadYears is the number of trailing years added to an interval.
	DefaultPadYears = 1
)

// DateFormat is the ISO calendar date layout used by every input and output surface.
const DateFormat = "2006-01-02"

// MonthFormat is the layout of a timeline origin (year and month).
const MonthFormat = "2006-01"

// KnownGroupFields lists the item fields that can be used for grouping.
var KnownGroupFields = []string{"id", "name", "team", "status", "priority", "category", "progress"}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
