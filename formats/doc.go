// SPDX-License-Identifier: EPL-2.0

// Package formats maps files to decoders and reads or writes whole files as
// pcm.Buffer values.
//
// Inputs are chosen by extension through a Registry; files with an unknown
// or missing extension are sniffed with Detect. Outputs are always WAV.
//
// Every error from ReadFile wraps ErrFileRead and every error from WriteFile
// wraps ErrWrite, so callers can classify failures with errors.Is without
// knowing which codec was involved.
package formats
