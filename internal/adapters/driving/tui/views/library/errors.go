package library

import "errors"

// ErrNoLibraryService is returned when the view has no library service to
// load manuals from.
var ErrNoLibraryService = errors.New("library service is required")
