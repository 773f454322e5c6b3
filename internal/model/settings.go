package model

const (
	MinColumns     = 1
	MaxColumns     = 30
	DefaultColumns = 5
)

// Settings holds the user-adjustable grid configuration.
type Settings struct {
	Columns int `json:"columns"`
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{Columns: DefaultColumns}
}

// ValidColumns reports whether c is an accepted column count.
func ValidColumns(c int) bool {
	return c >= MinColumns && c <= MaxColumns
}
