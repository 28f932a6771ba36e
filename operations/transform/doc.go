// Package transform provides reshaping FrameOperations, which can be chained with
// reshape.To against any Frame engine
package transform
