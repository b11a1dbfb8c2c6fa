// SPDX-License-Identifier: EPL-2.0

package processor

import "errors"

var (
	// ErrSilentInput is returned by NormalizeVolume for an all-zero input,
	// which has no peak to scale from.
	ErrSilentInput = errors.New("input is silent")

	ErrInvalidSegmentDuration = errors.New("segment duration must be positive")
	ErrInvalidRepetitions     = errors.New("repetitions must be positive")
	ErrNilOperation           = errors.New("batch operation is nil")
)
