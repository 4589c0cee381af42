// Copyright 2026 Docpipe Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package docmerge

import (
	"errors"
	"fmt"
)

// InputValidationError is returned when the collected inputs are unusable.
// It aborts the run before any processing starts.
type InputValidationError struct {
	Field  string
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConversionError is returned when a single input file cannot be turned
// into a PDF. It is non-fatal: the file is recorded and excluded from the
// merge, and processing of the remaining files continues.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// MergeError is returned when PDF concatenation fails, including the case
// of zero successfully converted inputs. It is fatal to the run.
type MergeError struct {
	Err error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge PDFs: %v", e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

// BackConversionError is returned when the merged PDF cannot be turned
// into the final DOCX. It is fatal to the run: there is no fallback final
// document.
type BackConversionError struct {
	Path string
	Err  error
}

func (e *BackConversionError) Error() string {
	return fmt.Sprintf("convert %s to DOCX: %v", e.Path, e.Err)
}

func (e *BackConversionError) Unwrap() error { return e.Err }

// IsConversionError reports whether the error is a per-file ConversionError.
func IsConversionError(err error) bool {
	var target *ConversionError
	return errors.As(err, &target)
}

// IsMergeError reports whether the error is a MergeError.
func IsMergeError(err error) bool {
	var target *MergeError
	return errors.As(err, &target)
}

// IsBackConversionError reports whether the error is a BackConversionError.
func IsBackConversionError(err error) bool {
	var target *BackConversionError
	return errors.As(err, &target)
}

// IsFatal reports whether the error aborts the whole run rather than a
// single file.
func IsFatal(err error) bool {
	var ve *InputValidationError
	var me *MergeError
	var be *BackConversionError
	return errors.As(err, &ve) || errors.As(err, &me) || errors.As(err, &be)
}
