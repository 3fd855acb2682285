// Package file provides a Source which reads Rows from files on disk, and a Sink which
// writes them. Files ending in .lz4 or .zst are transparently (de)compressed.
package file
