package persistence

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/cyclia/internal/models"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// OpenBackend builds the configured persistence adapter. The defaults
// seed the settings of a store with no saved snapshot yet.
func OpenBackend(backend string, path string, defaults models.Settings) (Port, error) {
	switch backend {
	case "json":
		return NewJSONFile(path, defaults), nil
	case "sqlite":
		return OpenSQLite(path, defaults)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
