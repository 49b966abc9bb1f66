package types

import "context"

/*
Loader is how the host application fetches a value the cache does not have.

The cache never performs I/O on its own. Remember calls the Loader only after
a miss, outside the cache lock, and stores whatever it returns.
 1. Cache checks memory → key not found
 2. Cache calls the Loader
 3. Loader fetches from DB/API
 4. Cache stores the result in memory
 5. Cache returns the value
*/
type Loader func(ctx context.Context) (any, error)

// Sizer lets a value report its own size for the memory budget instead of
// being encoded for estimation.
type Sizer interface {
	CacheSize() int64
}
