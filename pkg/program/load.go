package program

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/backtoschool/progcompare/pkg/errors"
)

// ReadJSON decodes a single program from r.
func ReadJSON(r io.Reader) (*Program, error) {
	var p Program
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProgram, err, "decode program")
	}
	return &p, nil
}

// ImportJSON reads a single program from a JSON file at path.
func ImportJSON(path string) (*Program, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ReadRequest decodes a full comparison request from r.
func ReadRequest(r io.Reader) (*Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode comparison request")
	}
	return &req, nil
}

// ReadCatalog decodes a JSON array of programs from r.
func ReadCatalog(r io.Reader) ([]Program, error) {
	var programs []Program
	if err := json.NewDecoder(r).Decode(&programs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode program catalog")
	}
	return programs, nil
}

// ImportCatalog reads a JSON array of programs from the file at path.
func ImportCatalog(path string) ([]Program, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	programs, err := ReadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return programs, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
