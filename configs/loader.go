package configs

import (
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Source is one CUE document. JSON is valid CUE.
type Source struct {
	Name    string
	Content func() ([]byte, error)
}

func FileSource(path string) Source {
	return Source{
		Name: path,
		Content: func() ([]byte, error) {
			return os.ReadFile(path)
		},
	}
}

func BytesSource(name string, content []byte) Source {
	return Source{
		Name: name,
		Content: func() ([]byte, error) {
			return content, nil
		},
	}
}

// Loader looks values up in its sources, earlier sources first. Sources are
// read and validated against the schema once, on first use.
type Loader struct {
	getRoots func() ([]root, error)
}

func NewLoader(filePaths []string, schemaSrc string) Loader {
	sources := make([]Source, 0, len(filePaths))
	for _, path := range filePaths {
		sources = append(sources, FileSource(path))
	}
	return NewSourceLoader(sources, schemaSrc)
}

func NewSourceLoader(sources []Source, schemaSrc string) Loader {
	return Loader{
		getRoots: sync.OnceValues(func() (ret []root, err error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, fmt.Errorf("schema: %w", err)
				}
			}

			for _, source := range sources {
				content, err := source.Content()
				if err != nil {
					return nil, err
				}
				value := ctx.CompileBytes(content, cue.Filename(source.Name))
				if err := value.Err(); err != nil {
					return nil, err
				}
				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, err
					}
				}
				ret = append(ret, root{
					value: value,
					name:  source.Name,
				})
			}

			return
		}),
	}
}

type root struct {
	value cue.Value
	name  string
}

// AssignFirst decodes the value at path in the first source defining it.
func (l Loader) AssignFirst(path string, target any) error {
	roots, err := l.getRoots()
	if err != nil {
		return err
	}

	cuePath := cue.ParsePath(path)
	for _, root := range roots {
		value := root.value.LookupPath(cuePath)
		if !value.Exists() {
			continue
		}
		if err := value.Decode(target); err != nil {
			return fmt.Errorf("%s: %s: %w", root.name, path, err)
		}
		return nil
	}

	return fmt.Errorf("%s: %w", path, ErrValueNotFound)
}
