package reshape

// JoinType selects the semantics of Frame.Join
type JoinType int

const (
	// InnerJoin keeps only rows whose keys appear on both sides
	InnerJoin JoinType = iota
	// LeftJoin keeps every left row, with nulls for unmatched right columns
	LeftJoin
	// OuterJoin keeps every key appearing on either side
	OuterJoin
	// CrossJoin pairs every left row with every right row, and takes no keys
	CrossJoin
)

// String returns the name of a JoinType
func (j JoinType) String() string {
	switch j {
	case InnerJoin:
		return "inner"
	case LeftJoin:
		return "left"
	case OuterJoin:
		return "outer"
	case CrossJoin:
		return "cross"
	default:
		return "unknown"
	}
}

// A Frame is an engine-native table of rows and typed (possibly nested)
// columns. Frames are immutable: every operation returns a new Frame.
// Reshape's helpers are written purely in terms of these capabilities,
// so that any engine implementing them can be reshaped.
type Frame interface {
	Schema() Schema                                             // Schema returns the Schema of a Frame
	NumRows() (int, error)                                      // NumRows returns the number of rows in a Frame
	Select(exprs ...Expr) (Frame, error)                        // Select projects the Frame onto the given expressions, named by Expr.Name()
	WithColumns(exprs ...Expr) (Frame, error)                   // WithColumns replaces same-named columns in place and appends the rest
	Drop(colNames ...string) (Frame, error)                     // Drop removes columns
	Rename(oldName string, newName string) (Frame, error)       // Rename renames a single column
	Explode(colNames ...string) (Frame, error)                  // Explode expands the given list columns together, one row per zipped element
	Join(other Frame, on []string, how JoinType) (Frame, error) // Join combines two Frames on equal key columns
	FillNull(values map[string]any) (Frame, error)              // FillNull replaces nulls in the named columns
	Limit(n int) (Frame, error)                                 // Limit keeps the first n rows
	Collect() ([]Row, error)                                    // Collect materializes the rows of this Frame, in order
}
