// Package wavefront reads the geometry of Wavefront OBJ files into a geom.Solid.
//
// Only vertex positions (v), vertex normals (vn) and faces (f) are understood;
// every other record is ignored. Malformed records never abort a parse: they are
// logged, collected in Result.Errs and the parse continues with the next line.
package wavefront

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/logging"
)

// Records are classified by their first two characters, so anything shorter
// than this can not hold data.
const minRecordLen = 3

// Only this many numbers are read from a vertex line: x, y, z and the optional w.
const maxVertexFields = 4

var (
	ErrMalformedVertex     = errors.New("malformed vertex data")
	ErrMalformedNormal     = errors.New("malformed vertex normal data")
	ErrMalformedFace       = errors.New("malformed face data")
	ErrResourceUnavailable = errors.New("resource unavailable")
)

// ParseError is a record that was skipped. Line is 1-based.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: '%s'", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Result struct {
	Solid   geom.Solid[float64]
	Normals []geom.Vec3[float64]
	Errs    []*ParseError

	// Lines is the number of lines read
	Lines int
}

// Parse reads r to the end. The returned Result holds everything that parsed, even when
// some records did not. The error is only non-nil when reading r itself failed.
func Parse(r io.Reader) (Result, error) {

	res := Result{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {

		res.Lines++

		line := strings.Trim(sc.Text(), " \t\r")
		if len(line) < minRecordLen {
			continue
		}

		var err error
		switch {
		case line[0] == '#':
		case line[0] == 'v' && line[1] == ' ':
			err = res.parseVertex(line)
		case line[0] == 'v' && line[1] == 'n':
			err = res.parseNormal(line)
		case line[0] == 'f' && line[1] == ' ':
			err = res.parseFace(line)
		}

		if err != nil {
			pErr := &ParseError{Line: res.Lines, Text: line, Err: err}
			res.Errs = append(res.Errs, pErr)
			logging.WarnLog.Printf("Skipping obj record. Err: %v\n", pErr)
		}
	}

	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("failed reading obj data after line %d. Err: %w", res.Lines, err)
	}

	return res, nil
}

func (res *Result) parseVertex(line string) error {

	fields := parseNumbers(line, maxVertexFields)
	if len(fields) < 3 {
		return ErrMalformedVertex
	}

	res.Solid.AddVertex(geom.NewVec3(fields[0], fields[1], fields[2]))
	return nil
}

func (res *Result) parseNormal(line string) error {

	fields := parseNumbers(line[2:], 3)
	if len(fields) < 3 {
		return ErrMalformedNormal
	}

	res.Normals = append(res.Normals, geom.NewVec3(fields[0], fields[1], fields[2]))
	return nil
}

// parseFace reads 'f v1[/vt1][/vn1] v2... v3...'. Only the position index of each
// reference is kept. Negative indices count back from the last vertex read so far.
// A reference that is not an integer rejects the whole face.
func (res *Result) parseFace(line string) error {

	refs := strings.Fields(line[1:])
	indices := make([]int, 0, len(refs))

	for _, ref := range refs {

		posRef, _, _ := strings.Cut(ref, "/")
		index, err := strconv.Atoi(posRef)
		if err != nil {
			return fmt.Errorf("%w: bad vertex reference '%s'", ErrMalformedFace, ref)
		}

		if index < 0 {
			index = len(res.Solid.Vertices) + index + 1
		}

		indices = append(indices, index)
	}

	if err := res.Solid.AddFace(indices...); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedFace, err)
	}

	return nil
}

// parseNumbers skips to the first digit or minus sign and then reads up to
// n whitespace separated floats, stopping at the first one that does not parse.
func parseNumbers(line string, n int) []float64 {

	start := strings.IndexFunc(line, func(r rune) bool {
		return (r >= '0' && r <= '9') || r == '-'
	})
	if start == -1 {
		return nil
	}

	out := make([]float64, 0, n)
	for _, field := range strings.Fields(line[start:]) {

		if len(out) == n {
			break
		}

		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			break
		}

		out = append(out, f)
	}

	return out
}
