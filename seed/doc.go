// Package seed loads the static company dataset into a CompanyStore.
//
// Seeding runs once: when the store already holds any company the Seeder
// reports the existing count and writes nothing. Writes fan out on a worker
// pool. A failed write is logged and reported in Result.Failed but does not
// abort the batch.
//
// Guard wraps a Seeder for callers that may race on startup. Concurrent calls
// in one process share a single run, and an optional lock file serializes
// runs across processes.
package seed
