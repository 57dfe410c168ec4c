// Package cache provides the distributed key-value cache that backs session
// state.
//
// Memory keeps entries in process and removes expired ones lazily on read
// and periodically through Run. Redis stores entries on a Redis server using
// native key expiry. Both report absent or expired keys as ErrMiss.
package cache
