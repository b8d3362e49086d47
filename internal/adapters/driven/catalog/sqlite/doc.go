// Package sqlite implements the document catalog on SQLite using the
// pure-Go modernc.org/sqlite driver. The database records which
// documents exist, their indexed state and content hash, and whether
// they participate in retrieval.
package sqlite
