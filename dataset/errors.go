// SPDX-License-Identifier: MIT

package dataset

import "errors"

var (
	// ErrMalformed reports a file whose content does not match its format.
	ErrMalformed = errors.New("dataset: malformed input")

	// ErrMemberNotFound reports a zip archive without the requested member.
	ErrMemberNotFound = errors.New("dataset: archive member not found")
)
