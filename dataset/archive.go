// SPDX-License-Identifier: MIT

package dataset

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

const opOpenZipMember = "OpenZipMember"

// member closes the zip entry and then its archive.
type member struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (m *member) Close() error {
	return errors.Join(m.ReadCloser.Close(), m.archive.Close())
}

// OpenZipMember opens the member called name inside the zip archive at
// path. Closing the returned reader also closes the archive.
//
// Errors: ErrMemberNotFound, or the archive/open error.
func OpenZipMember(path, name string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opOpenZipMember, err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			zr.Close()
			return nil, fmt.Errorf("%s %s!%s: %w", opOpenZipMember, path, name, err)
		}

		return &member{ReadCloser: rc, archive: zr}, nil
	}
	zr.Close()

	return nil, fmt.Errorf("%s %s!%s: %w", opOpenZipMember, path, name, ErrMemberNotFound)
}
