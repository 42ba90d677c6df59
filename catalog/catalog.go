// Package catalog loads, filters and looks up plant catalogs.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go-plantcare/models"
)

// Decode parses a catalog document. A document without a "plants" key is an
// empty catalog; malformed JSON or duplicate ids are load errors.
func Decode(r io.Reader) (models.Catalog, error) {
	var doc models.CatalogDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogLoad, err)
	}
	if err := validate(doc.Plants); err != nil {
		return nil, err
	}
	if doc.Plants == nil {
		return models.Catalog{}, nil
	}
	return doc.Plants, nil
}

// validate rejects empty and duplicate ids.
func validate(c models.Catalog) error {
	seen := make(map[string]struct{}, len(c))
	for i, p := range c {
		if p.ID == "" {
			return fmt.Errorf("%w: plant #%d has no id", models.ErrCatalogLoad, i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate plant id %q", models.ErrCatalogLoad, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Filter returns the plants whose name or species contains query, ignoring
// case. An empty query returns c itself.
func Filter(c models.Catalog, query string) models.Catalog {
	if query == "" {
		return c
	}

	q := strings.ToLower(query)
	matched := make(models.Catalog, 0, len(c))
	for _, p := range c {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Species), q) {
			matched = append(matched, p)
		}
	}
	return matched
}

// FindByID returns the plant with the given id or ErrNotFound.
func FindByID(c models.Catalog, id string) (models.Plant, error) {
	for _, p := range c {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Plant{}, fmt.Errorf("%w: plant %q", models.ErrNotFound, id)
}
