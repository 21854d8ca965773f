// Package album persists named collection manifests: one JSON array file per
// collection listing the media files attributed to it.
//
// Merges are append-only and idempotent. Because each merge rewrites the
// whole array, a per-collection filesystem lock (gofrs/flock) with bounded
// exponential-backoff retry serializes concurrent writers; distinct
// collections merge independently and in parallel.
package album
