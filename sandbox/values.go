package sandbox

import (
	"fmt"
	"reflect"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// ToValue converts a host value into a script value.
func ToValue(v any) (ret starlark.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(unsupportedType); ok {
				err = e
				return
			}
			panic(p)
		}
	}()
	return toValue(v), nil
}

type unsupportedType struct {
	value any
}

func (u unsupportedType) Error() string {
	return fmt.Sprintf("unsupported type for script: %T", u.value)
}

func toValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v

	case bool:
		return starlark.Bool(v)

	case []byte:
		return starlark.Bytes(v)
	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)
	case int32:
		return starlark.MakeInt(int(v))
	case int64:
		return starlark.MakeInt64(v)
	case uint:
		return starlark.MakeUint(v)
	case uint64:
		return starlark.MakeUint64(v)

	case float32:
		return starlark.Float(v)
	case float64:
		return starlark.Float(v)

	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elems[i] = toValue(e)
		}
		return starlark.NewList(elems)

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			d.SetKey(starlark.String(k), toValue(val))
		}
		return d

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elems[i] = toValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toValue(iter.Key().Interface()),
				toValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Struct:
		n := value.NumField()
		d := starlark.NewDict(n)
		typ := value.Type()
		for i := range n {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			d.SetKey(
				starlark.String(field.Name),
				toValue(value.Field(i).Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(unsupportedType{value: v})
}

// FromValue converts a script value into a host value.
// Lists and tuples become []any, dicts with string keys become map[string]any.
func FromValue(v starlark.Value) (any, error) {
	switch v := v.(type) {

	case nil, starlark.NoneType:
		return nil, nil

	case starlark.Bool:
		return bool(v), nil

	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return i, nil
		}
		return v.BigInt(), nil

	case starlark.Float:
		return float64(v), nil

	case starlark.String:
		return string(v), nil

	case starlark.Bytes:
		return []byte(v), nil

	case *starlark.List:
		ret := make([]any, 0, v.Len())
		for i := range v.Len() {
			elem, err := FromValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			ret = append(ret, elem)
		}
		return ret, nil

	case starlark.Tuple:
		ret := make([]any, 0, len(v))
		for _, e := range v {
			elem, err := FromValue(e)
			if err != nil {
				return nil, err
			}
			ret = append(ret, elem)
		}
		return ret, nil

	case *starlark.Dict:
		ret := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key %s: %w", item[0].Type(), ErrUnsupportedValue)
			}
			elem, err := FromValue(item[1])
			if err != nil {
				return nil, err
			}
			ret[string(key)] = elem
		}
		return ret, nil

	}

	return nil, fmt.Errorf("%s: %w", v.Type(), ErrUnsupportedValue)
}
