// SPDX-License-Identifier: EPL-2.0

package formats

import "errors"

var (
	// ErrFileRead wraps every failure to open or decode an input file.
	ErrFileRead = errors.New("failed to read audio file")

	// ErrWrite wraps every failure to create or encode an output file.
	ErrWrite = errors.New("failed to write audio file")

	ErrUnknownFormat = errors.New("unknown audio format")
)
