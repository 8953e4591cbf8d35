package configs

import "reflect"

// Configurable values are loaded from the path they name.
type Configurable interface {
	ConfigPath() string
}

var configurableType = reflect.TypeFor[Configurable]()
