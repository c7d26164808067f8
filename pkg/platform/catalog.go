package platform

import (
	"fmt"
	"sort"

	"github.com/tobheim/patchbay/pkg/domain"
)

// Catalog is a read-only registry of platform specs keyed by platform id.
type Catalog struct {
	specs map[string]Spec
}

// NewCatalog builds a catalog over the given specs. Specs with duplicate ids
// overwrite earlier entries; callers normally use Builtin().
func NewCatalog(specs ...Spec) *Catalog {
	c := &Catalog{specs: make(map[string]Spec, len(specs))}
	for _, s := range specs {
		c.specs[s.ID] = s
	}
	return c
}

// Builtin returns the catalog of known hardware platforms.
func Builtin() *Catalog {
	return NewCatalog(builtinSpecs...)
}

// Lookup resolves a platform id to its spec.
func (c *Catalog) Lookup(id string) (Spec, error) {
	spec, ok := c.specs[id]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", domain.ErrUnknownPlatform, id)
	}
	return spec, nil
}

// IDs returns the registered platform ids in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.specs))
	for id := range c.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
