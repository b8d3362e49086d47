// Package readers provides implementations of the Reader interface
// for various document formats. Each reader knows how to extract text
// content from a specific set of file extensions.
//
// Readers are registered with the ReaderRegistry at startup.
package readers
