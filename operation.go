package reshape

// FrameOperation is a generic Frame transform, producing a new Frame from an existing one.
// Reshape helpers are FrameOperations, and can be chained with To.
type FrameOperation func(f Frame) (Frame, error)

// Releaser is implemented by Frames which hold resources that must be given up
// explicitly, such as Arrow buffers
type Releaser interface {
	Release()
}

// Release gives up the resources held by a Frame, if any
func Release(f Frame) {
	if r, ok := f.(Releaser); ok {
		r.Release()
	}
}

// To is a "functional operations" factory method for Frames, chaining operations onto the current one.
// Frames produced part-way through the chain are released once the next operation has run;
// the input Frame is left to the caller.
func To(f Frame, ops ...FrameOperation) (Frame, error) {
	current := f
	for _, op := range ops {
		next, err := op(current)
		if current != f && next != current {
			Release(current)
		}
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}
