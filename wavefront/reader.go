package wavefront

import (
	"fmt"
	"os"

	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/logging"
)

// ReadFile parses the obj file at path.
//
// A file that can not be opened gives an empty solid and an error wrapping
// ErrResourceUnavailable. Malformed records are not errors here, they are
// logged and skipped by Parse.
func ReadFile(path string) (geom.Solid[float64], error) {

	res, err := ReadFileResult(path)
	return res.Solid, err
}

// ReadFileResult is ReadFile but returns the full parse result
func ReadFileResult(path string) (Result, error) {

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open obj file '%s': %w. Err: %w", path, ErrResourceUnavailable, err)
	}
	defer f.Close()

	res, err := Parse(f)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}

	logging.InfoLog.Printf("Loaded obj '%s' with %d vertices, %d faces and %d skipped records\n", path, len(res.Solid.Vertices), len(res.Solid.Faces), len(res.Errs))
	return res, nil
}
