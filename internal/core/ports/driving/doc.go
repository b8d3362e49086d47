// Package driving provides interfaces for application entry points
// (primary/inbound ports): bulk indexing, ad-hoc injection, lifecycle
// control, and retrieval.
package driving
