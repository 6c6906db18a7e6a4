package driven

// ConfigStore provides persistent key-value configuration.
type ConfigStore interface {
	// Get retrieves a raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, empty when unset.
	GetString(key string) string

	// GetInt retrieves an integer value, zero when unset.
	GetInt(key string) int

	// GetBool retrieves a boolean value, false when unset.
	GetBool(key string) bool

	// Set stores a value and persists it.
	Set(key string, value any) error
}
