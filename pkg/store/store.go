// Package store looks up the programs to compare.
//
// Two backends implement [Store]: [Postgres] reads the platform database
// (programs joined with their university), and [Catalog] serves a JSON
// export of programs for offline use. [Cached] puts a [cache.Cache] in front
// of either.
//
// A missing id is always reported as PROGRAM_NOT_FOUND.
//
// [cache.Cache]: github.com/backtoschool/progcompare/pkg/cache.Cache
package store

import (
	"context"

	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/program"
)

// Store resolves programs by id.
type Store interface {
	// Program returns the program with the given id and its university.
	Program(ctx context.Context, id int64) (*program.Program, error)
	// Programs lists up to limit programs ordered by name; limit <= 0
	// lists all of them.
	Programs(ctx context.Context, limit int) ([]program.Program, error)
	Close() error
}

func notFound(id int64) error {
	return errors.New(errors.ErrCodeProgramNotFound, "program %d not found", id)
}
