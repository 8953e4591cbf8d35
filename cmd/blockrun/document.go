package main

import (
	"errors"
	"fmt"

	"github.com/reusee/taiblock/blocks"
	"github.com/reusee/taiblock/configs"
)

// loadDocument reads a serialized workspace, in JSON or CUE.
func loadDocument(source configs.Source) (*blocks.Workspace, error) {
	loader := configs.NewSourceLoader([]configs.Source{source}, "")
	var doc blocks.Document
	if err := loader.AssignFirst("blocks", &doc.Blocks); err != nil {
		return nil, fmt.Errorf("load %s: %w", source.Name, err)
	}
	if err := loader.AssignFirst("variables", &doc.Variables); err != nil && !errors.Is(err, configs.ErrValueNotFound) {
		return nil, fmt.Errorf("load %s: %w", source.Name, err)
	}
	return doc.Workspace(blocks.DefaultRegistry())
}
