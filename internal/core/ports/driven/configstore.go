package driven

// ConfigStore persists user settings as dotted key-value pairs,
// e.g. "embedding.model". The file adapter backs it with TOML under
// the ragdex config directory.
type ConfigStore interface {
	// Get returns the raw value for key and whether it exists.
	Get(key string) (any, bool)

	// GetString returns the string at key, or "" for a missing key
	// or a value of another type.
	GetString(key string) string

	// GetInt returns the integer at key, or 0 when absent or mistyped.
	GetInt(key string) int

	// GetBool returns the boolean at key, or false when absent or mistyped.
	GetBool(key string) bool

	// GetStringSlice returns the string list at key, or nil.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save writes the current settings to the backing store.
	Save() error

	// Load replaces in-memory settings with the stored ones.
	Load() error

	// Path identifies the backing store, for display to the user.
	Path() string
}
