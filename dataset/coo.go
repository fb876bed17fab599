// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/fmsgd/sparse"
)

const (
	opReadCOOJSON = "ReadCOOJSON"
	opLoadCOOJSON = "LoadCOOJSON"
	opCOOToCSR    = "COO.CSR"
)

// COO is a coordinate-format sparse matrix as stored in coo.json.
type COO struct {
	Row   []int     `json:"row"`
	Col   []int     `json:"col"`
	Data  []float64 `json:"data"`
	Shape [2]int    `json:"shape"`
}

// cooWire accepts both spellings of the COO layout.
type cooWire struct {
	Row   []int     `json:"row"`
	Col   []int     `json:"col"`
	Data  []float64 `json:"data"`
	Shape []int     `json:"shape"`

	// alternate spelling: indices = rows, indptr = cols
	Indices []int     `json:"indices"`
	Indptr  []int     `json:"indptr"`
	Values  []float64 `json:"values"`
}

// ReadCOOJSON decodes a COO object.
//
// Errors: ErrMalformed (bad JSON, shape not two positive ints, or
// coordinate arrays of different lengths).
func ReadCOOJSON(r io.Reader) (*COO, error) {
	var w cooWire
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", opReadCOOJSON, err, ErrMalformed)
	}
	if len(w.Shape) != 2 || w.Shape[0] <= 0 || w.Shape[1] <= 0 {
		return nil, fmt.Errorf("%s: shape %v: %w", opReadCOOJSON, w.Shape, ErrMalformed)
	}

	c := &COO{Row: w.Row, Col: w.Col, Data: w.Data, Shape: [2]int{w.Shape[0], w.Shape[1]}}
	if c.Row == nil && c.Col == nil && c.Data == nil {
		c.Row, c.Col, c.Data = w.Indices, w.Indptr, w.Values
	}
	if len(c.Row) != len(c.Col) || len(c.Col) != len(c.Data) {
		return nil, fmt.Errorf("%s: lengths %d/%d/%d: %w", opReadCOOJSON, len(c.Row), len(c.Col), len(c.Data), ErrMalformed)
	}

	return c, nil
}

// LoadCOOJSON is ReadCOOJSON over the file at path.
func LoadCOOJSON(path string) (*COO, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadCOOJSON, err)
	}
	defer f.Close()

	c, err := ReadCOOJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", opLoadCOOJSON, path, err)
	}

	return c, nil
}

// CSR converts the triplets into a compressed-row matrix
// (duplicates summed, explicit zeros kept).
func (c *COO) CSR() (*sparse.CSR, error) {
	m, err := sparse.FromTriplets(c.Shape[0], c.Shape[1], c.Row, c.Col, c.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCOOToCSR, err)
	}

	return m, nil
}
