// Package file provides a DataSource which reads data from a set of files on disk.
// Files are parsed concurrently and in their entirety, and their rows are
// concatenated in lexical filename order.
package file
