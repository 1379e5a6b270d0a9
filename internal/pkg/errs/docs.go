// Package errs holds the typed errors shared by the marketplace domain and
// application layers.
//
// Every error type pairs a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...)
// with a struct carrying the parameter name and an optional cause. Unwrap returns
// the sentinel so callers match with errors.Is, and the HTTP adapter maps the
// sentinels to status codes.
package errs
