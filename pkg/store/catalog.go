package store

import (
	"context"
	"sort"

	"github.com/backtoschool/progcompare/pkg/program"
)

// Catalog serves programs from memory, typically a JSON export loaded with
// [LoadCatalog].
type Catalog struct {
	programs []program.Program
	byID     map[int64]int
}

// NewCatalog indexes programs by id. Later duplicates of an id win.
func NewCatalog(programs []program.Program) *Catalog {
	c := &Catalog{
		programs: make([]program.Program, len(programs)),
		byID:     make(map[int64]int, len(programs)),
	}
	copy(c.programs, programs)
	sort.SliceStable(c.programs, func(i, j int) bool {
		return c.programs[i].Name < c.programs[j].Name
	})
	for i, p := range c.programs {
		c.byID[p.ID] = i
	}
	return c
}

// LoadCatalog reads a JSON array of programs from path.
func LoadCatalog(path string) (*Catalog, error) {
	programs, err := program.ImportCatalog(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(programs), nil
}

// Program returns a copy of the program with the given id.
func (c *Catalog) Program(_ context.Context, id int64) (*program.Program, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, notFound(id)
	}
	p := c.programs[i]
	return &p, nil
}

// Programs lists programs ordered by name.
func (c *Catalog) Programs(_ context.Context, limit int) ([]program.Program, error) {
	n := len(c.programs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]program.Program, n)
	copy(out, c.programs[:n])
	return out, nil
}

// Close does nothing.
func (c *Catalog) Close() error { return nil }

var _ Store = (*Catalog)(nil)
