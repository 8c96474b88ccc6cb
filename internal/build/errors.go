package build

import (
	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

// ErrConfigRequired is returned when Run is called without a configuration.
var ErrConfigRequired = errors.ConfigError("config required").Build()
