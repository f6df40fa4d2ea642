// Package sanitizer normalizes user input before validation and storage.
//
// All functions are idempotent. Input that cannot be normalized is returned
// trimmed but otherwise untouched so that validation can report it.
//
// Normalization includes:
//   - Free text: collapse whitespace, drop control characters
//   - Clock times: zero-pad "9:05" to "09:05"
//   - Schedule ranges: canonical "HH:MM-HH:MM" without spaces
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
