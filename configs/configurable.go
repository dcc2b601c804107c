package configs

import "errors"

// Configurable is a value with a fixed location in the config tree.
type Configurable interface {
	ConfigPath() string
}

// Lookup decodes the first value found at the zero T's ConfigPath.
// ok is false when no config file sets it.
func Lookup[T Configurable](loader Loader) (ret T, ok bool) {
	if err := loader.AssignFirst(ret.ConfigPath(), &ret); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return ret, false
		}
		panic(err)
	}
	return ret, true
}
