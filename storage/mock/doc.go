// Package mock provides a test double for storage.CompanyStore.
//
// Store keeps records in memory and behaves like a real ordered store by
// default. Individual operations can be overridden through function fields
// to inject failures:
//
//	store := mock.NewStore()
//	store.RangeQueryFunc = func(ctx context.Context, lower, upper string) ([]*core.CompanyRecord, error) {
//	    return nil, storage.ErrUnavailable
//	}
//
// Call counters let tests assert that an operation was or was not invoked.
package mock
