// Package reshape contains the core components of Reshape, a toolkit for reshaping nested
// tabular data and assembling featuresets on top of pluggable dataframe engines.
// This root package defines the engine-neutral pieces (column types, schemas, rows,
// expressions, field specifications and the path resolver) along with the Frame
// capability interface that every engine implements, and is an excellent overview of
// Reshape's key concepts.
package reshape
