package orgdir

import "errors"

// ErrStoreRequired is returned when a directory is built without a store.
var ErrStoreRequired = errors.New("company store required")
