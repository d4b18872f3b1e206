package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/martti/tsjetdb/pkg/jet"
	"github.com/martti/tsjetdb/pkg/jetconfig"
	"github.com/martti/tsjetdb/pkg/jetdb"
)

// pathArgs is validated the way the teacher validates its HTTP request
// structs: tags on a plain struct, checked once before the argument is
// used for anything.
type pathArgs struct {
	Path string `validate:"required,filepath" json:"path"`
}

func openDatabase(path string) (*jetdb.Handle, error) {
	args := pathArgs{Path: path}

	if err := validator.New().Struct(args); err != nil {
		return nil, fmt.Errorf("jetdump: invalid file path %q: %w", path, err)
	}

	return jet.Open(path, jetconfig.NewConfig())
}
