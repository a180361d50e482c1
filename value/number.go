package value

// Number is a scalar floating-point Value.
type Number float64

func (n Number) Category() Category { return CategoryNumber }

func (n Number) Shape() [MaxDim]int { return [MaxDim]int{} }

// GetField always fails: a scalar has no fields.
func (n Number) GetField(name string) (Value, error) {
	return nil, &OpError{Kind: InvalidField, Type: CategoryNumber, Field: name}
}

// Index always fails: a scalar cannot be indexed.
func (n Number) Index(i int) (Value, error) {
	return nil, &OpError{Kind: InvalidArguments, Function: "index", Details: "cannot index a Number"}
}

// Slice always fails: a scalar cannot be sliced.
func (n Number) Slice(start, end int) (Value, error) {
	return nil, &OpError{Kind: InvalidArguments, Function: "slice", Details: "cannot slice a Number"}
}

// Min, Max, Avg, Sum, Range, Std treat a lone scalar as a one-element
// dataset, so the single-argument reduction path works uniformly
// whether the argument was an Array or a bare Number.

func (n Number) Min() (Value, error)   { return n, nil }
func (n Number) Max() (Value, error)   { return n, nil }
func (n Number) Sum() (Value, error)   { return n, nil }
func (n Number) Avg() (Value, error)   { return n, nil }
func (n Number) Range() (Value, error) { return Number(0), nil }
func (n Number) Std() (Value, error)   { return Number(0), nil }
