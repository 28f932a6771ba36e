// Package featureset assembles named, flattened projections of nested fields
// ("featuresets") from data sources, and joins them on shared index columns.
//
// Every feature column is named
//
//	feature.<featureset name>@<dotted.path>
//
// where dotted.path is the "."-joined path of the selected field.
package featureset
