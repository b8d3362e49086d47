// Package file persists ragdex configuration on the local filesystem.
// It holds the TOML-backed ConfigStore that settings commands and the
// indexing services read from.
package file
