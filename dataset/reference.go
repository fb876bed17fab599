// SPDX-License-Identifier: MIT

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/katalvlaran/fmsgd/fm"
	"github.com/katalvlaran/fmsgd/internal/logger"
	"github.com/katalvlaran/fmsgd/matrix"
	"github.com/katalvlaran/fmsgd/sparse"
)

const opLoadReference = "LoadReference"

// Reference problem constants.
const (
	DefaultLabelColumn = 11
	DefaultAttributes  = 101856
	DefaultK           = 10

	// ReferenceDeltaV00 is deltaV_out[0,0] for the reference problem with
	// DefaultParams.
	ReferenceDeltaV00 = -0.40268408118112986
)

// Layout names the files of a reference dataset directory.
type Layout struct {
	// Archive is an optional zip holding COO as a member. When the archive
	// carries that member it wins over the loose COO file.
	Archive       string `yaml:"archive"`
	ArchiveMember string `yaml:"archive_member"`
	COO           string `yaml:"coo"`

	CrossFactors string `yaml:"cross_factors"` // V1, used for cross terms X·V1
	V            string `yaml:"v"`
	DeltaV       string `yaml:"delta_v"`

	Label      int `yaml:"label"`
	Attributes int `yaml:"attributes"` // 0 skips the check
	K          int `yaml:"k"`
}

// DefaultLayout matches the benchmark data directory layout.
func DefaultLayout() Layout {
	return Layout{
		Archive:       "df_csr.zip",
		ArchiveMember: "coo.json",
		COO:           "coo.json",
		CrossFactors:  "v1.json",
		V:             "v.json",
		DeltaV:        "dv.json",
		Label:         DefaultLabelColumn,
		Attributes:    DefaultAttributes,
		K:             DefaultK,
	}
}

// Reference is a loaded update problem.
type Reference struct {
	X          *sparse.CSR
	Losses     []float64
	CrossTerms *matrix.Dense
	V          *matrix.Dense
	DeltaV     *matrix.Dense
}

// Inputs returns the problem in the shape CheckDeterminism expects.
func (r *Reference) Inputs() fm.Inputs {
	return fm.Inputs{
		X:          r.X,
		Losses:     r.Losses,
		CrossTerms: r.CrossTerms,
		V:          r.V,
		DeltaV:     r.DeltaV,
	}
}

// LoadReference reads the dataset in dir described by layout.
// Implementation:
//   - Stage 1: read the raw COO (archive member or loose file) into CSR.
//   - Stage 2: SplitLabel into X and the losses y.
//   - Stage 3: load V1 and compute the cross terms X·V1.
//   - Stage 4: load V and ΔV.
//
// Progress is logged through logger.FromContext(ctx); ctx is checked
// between stages.
//
// Errors: ErrMalformed (attribute count differs from layout), plus any
// loader, sparse or matrix error.
func LoadReference(ctx context.Context, dir string, layout Layout, opts ...sparse.Option) (*Reference, error) {
	log := logger.FromContext(ctx).With("dir", dir)
	start := time.Now()

	coo, err := readRawCOO(log, dir, layout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadReference, err)
	}
	raw, err := coo.CSR()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadReference, err)
	}
	log.Info("raw matrix loaded", "rows", raw.Rows(), "cols", raw.Cols(), "nnz", raw.NNZ())

	x, y, err := SplitLabel(raw, layout.Label)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadReference, err)
	}
	if layout.Attributes > 0 && x.Cols() != layout.Attributes {
		return nil, fmt.Errorf("%s: %d attributes, want %d: %w", opLoadReference, x.Cols(), layout.Attributes, ErrMalformed)
	}
	log.Info("design matrix ready", "samples", x.Rows(), "attributes", x.Cols(), "label", layout.Label)
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadReference, err)
	}

	attrs, k := x.Cols(), layout.K
	v1, err := LoadFlatJSON(filepath.Join(dir, layout.CrossFactors), attrs, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadReference, err)
	}
	cross, err := x.MulDense(v1, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadReference, err)
	}
	log.Debug("cross terms computed", "rows", cross.Rows(), "cols", cross.Cols())
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadReference, err)
	}

	v, err := LoadFlatJSON(filepath.Join(dir, layout.V), attrs, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadReference, err)
	}
	dv, err := LoadFlatJSON(filepath.Join(dir, layout.DeltaV), attrs, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLoadReference, err)
	}
	log.Info("factors loaded", "k", k, "elapsed", time.Since(start))

	return &Reference{X: x, Losses: y, CrossTerms: cross, V: v, DeltaV: dv}, nil
}

// readRawCOO prefers the archive member and falls back to the loose file
// when the archive does not exist or does not carry the member (the
// benchmark zip holds only a pickle).
func readRawCOO(log logger.Logger, dir string, layout Layout) (*COO, error) {
	if layout.Archive != "" {
		archive := filepath.Join(dir, layout.Archive)
		rc, err := OpenZipMember(archive, layout.ArchiveMember)
		switch {
		case err == nil:
			defer rc.Close()
			log.Debug("reading archive member", "archive", archive, "member", layout.ArchiveMember)
			return ReadCOOJSON(rc)
		case errors.Is(err, ErrMemberNotFound):
			log.Debug("archive has no COO member, using loose file", "archive", archive, "member", layout.ArchiveMember)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	return LoadCOOJSON(filepath.Join(dir, layout.COO))
}

// Exists reports whether dir looks like a reference dataset directory
// (the cross factors file is present).
func Exists(dir string, layout Layout) bool {
	_, err := os.Stat(filepath.Join(dir, layout.CrossFactors))

	return err == nil
}
