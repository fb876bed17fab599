// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/fmsgd/matrix"
)

const (
	opReadFlatJSON = "ReadFlatJSON"
	opLoadFlatJSON = "LoadFlatJSON"
)

// ReadFlatJSON decodes a JSON array of numbers and reshapes it row-major
// into a rows × cols matrix.
//
// Errors:
//   - ErrMalformed: the stream is not a JSON number array.
//   - matrix.ErrShapeMismatch: the array does not hold rows*cols values.
//   - matrix.ErrInvalidDimensions, matrix.ErrNaNInf (with WithValidateNaNInf).
func ReadFlatJSON(r io.Reader, rows, cols int, opts ...matrix.Option) (*matrix.Dense, error) {
	var flat []float64
	if err := json.NewDecoder(r).Decode(&flat); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", opReadFlatJSON, err, ErrMalformed)
	}
	d, err := matrix.FromFlat(flat, rows, cols, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opReadFlatJSON, err)
	}

	return d, nil
}

// LoadFlatJSON is ReadFlatJSON over the file at path.
func LoadFlatJSON(path string, rows, cols int, opts ...matrix.Option) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadFlatJSON, err)
	}
	defer f.Close()

	d, err := ReadFlatJSON(f, rows, cols, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", opLoadFlatJSON, path, err)
	}

	return d, nil
}
