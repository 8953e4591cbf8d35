package configs

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/reusee/dscope"
)

// Fork redefines every Configurable type in scope with the value loaded from
// its path. Types without a loaded value keep their definition.
func Fork(scope dscope.Scope, loader Loader) (ret dscope.Scope, err error) {
	var defs []any
	for t := range scope.AllTypes() {
		if !t.Implements(configurableType) || t.Kind() == reflect.Interface {
			continue
		}
		path := reflect.Zero(t).Interface().(Configurable).ConfigPath()
		ptr := reflect.New(t)
		if err := loader.AssignFirst(path, ptr.Interface()); err != nil {
			if errors.Is(err, ErrValueNotFound) {
				continue
			}
			return scope, fmt.Errorf("load %s: %w", path, err)
		}
		// a pointer definition provides its element type
		defs = append(defs, ptr.Interface())
	}
	if len(defs) == 0 {
		return scope, nil
	}
	return scope.Fork(defs...), nil
}
