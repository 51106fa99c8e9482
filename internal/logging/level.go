package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// SetLevel sets the global zerolog level from its textual name
// ("debug", "info", "warn", "error").
func SetLevel(name string) error {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("unknown log level %q: %w", name, err)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}
