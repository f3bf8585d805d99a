package io

import (
	"fmt"
	"os"

	"github.com/matzehuels/ellipsegen/pkg/render/sink"
)

// ImportJSON reads a descriptor set exported in the json format.
func ImportJSON(path string) (sink.Artwork, error) {
	f, err := os.Open(path)
	if err != nil {
		return sink.Artwork{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	a, err := sink.ReadJSON(f)
	if err != nil {
		return sink.Artwork{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
