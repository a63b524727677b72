package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates that the caller lacks permission for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidDate indicates that a record's date could not be parsed as YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// ErrMissingAsset indicates that an optional branding asset could not be fetched.
// Callers omit the asset and continue; the error never aborts an export.
var ErrMissingAsset = errors.New("branding asset unavailable")

// ErrRenderUnavailable indicates that a renderer backend could not produce its
// artifact at all (e.g. the print document could not be assembled). The export
// aborts without partial output.
var ErrRenderUnavailable = errors.New("render backend unavailable")
