package value

import "math"

// Array is a rank-1 sequence of floats. The shape contract reserves
// room for higher ranks up to MaxDim but the core only implements
// rank 1.
type Array []float64

func (a Array) Category() Category { return CategoryArray }

func (a Array) Shape() [MaxDim]int {
	var s [MaxDim]int
	s[0] = len(a)
	return s
}

// resolveIndex turns a possibly-negative index into an in-range offset,
// counting from the end when i < 0, per spec.md §8's boundary
// behaviors.
func resolveIndex(i, length int) (int, bool) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

// Index picks a single element, with negative indices counting from
// the end.
func (a Array) Index(i int) (Value, error) {
	idx, ok := resolveIndex(i, len(a))
	if !ok {
		return nil, &OpError{Kind: InvalidArguments, Function: "index", Details: "index out of range"}
	}
	return Number(a[idx]), nil
}

// Slice returns the half-open subrange [start, end), negative bounds
// counting from the end, matching the Open Question decision recorded
// in DESIGN.md.
func (a Array) Slice(start, end int) (Value, error) {
	n := len(a)
	s, ok := resolveSliceBound(start, n)
	if !ok {
		return nil, &OpError{Kind: InvalidArguments, Function: "slice", Details: "start out of range"}
	}
	e, ok := resolveSliceBound(end, n)
	if !ok {
		return nil, &OpError{Kind: InvalidArguments, Function: "slice", Details: "end out of range"}
	}
	if s > e {
		return Array{}, nil
	}
	out := make(Array, e-s)
	copy(out, a[s:e])
	return out, nil
}

// resolveSliceBound resolves a possibly-negative slice bound (counting
// from the end) and reports false when the result falls outside
// [0, length]; out-of-range bounds are not clamped.
func resolveSliceBound(i, length int) (int, bool) {
	if i < 0 {
		i += length
	}
	if i < 0 || i > length {
		return 0, false
	}
	return i, true
}

// GetField exposes the two norm reductions as fields (v.l1_norm,
// v.l2_norm), since spec.md's built-in function tokens don't reserve
// dedicated names for them, plus the element count (v.len). Any other
// field name is InvalidField.
func (a Array) GetField(name string) (Value, error) {
	switch name {
	case "l1_norm":
		var sum float64
		for _, x := range a {
			sum += math.Abs(x)
		}
		return Number(sum), nil
	case "l2_norm":
		var sum float64
		for _, x := range a {
			sum += x * x
		}
		return Number(math.Sqrt(sum)), nil
	case "len":
		return Number(len(a)), nil
	default:
		return nil, &OpError{Kind: InvalidField, Type: CategoryArray, Field: name}
	}
}

// Min, Max, Avg, Sum, Range, Std implement the single-argument
// reduction path: "1 argument → delegate to the Value's own
// min/max/avg/std/sum/range (arrays define these natively)."

func (a Array) Min() (Value, error) {
	if len(a) == 0 {
		return nil, &OpError{Kind: InvalidArguments, Function: "min", Details: "empty array"}
	}
	m := math.Inf(1)
	for _, x := range a {
		m = math.Min(m, x)
	}
	return Number(m), nil
}

func (a Array) Max() (Value, error) {
	if len(a) == 0 {
		return nil, &OpError{Kind: InvalidArguments, Function: "max", Details: "empty array"}
	}
	m := math.Inf(-1)
	for _, x := range a {
		m = math.Max(m, x)
	}
	return Number(m), nil
}

func (a Array) Sum() (Value, error) {
	var sum float64
	for _, x := range a {
		sum += x
	}
	return Number(sum), nil
}

func (a Array) Avg() (Value, error) {
	if len(a) == 0 {
		return nil, &OpError{Kind: InvalidArguments, Function: "avg", Details: "empty array"}
	}
	sum, _ := a.Sum()
	return Number(float64(sum.(Number)) / float64(len(a))), nil
}

func (a Array) Range() (Value, error) {
	lo, err := a.Min()
	if err != nil {
		return nil, err
	}
	hi, err := a.Max()
	if err != nil {
		return nil, err
	}
	return Number(float64(hi.(Number)) - float64(lo.(Number))), nil
}

func (a Array) Std() (Value, error) {
	if len(a) == 0 {
		return nil, &OpError{Kind: InvalidArguments, Function: "std", Details: "empty array"}
	}
	avg, err := a.Avg()
	if err != nil {
		return nil, err
	}
	mean := float64(avg.(Number))
	var sumSq float64
	for _, x := range a {
		d := x - mean
		sumSq += d * d
	}
	return Number(math.Sqrt(sumSq / float64(len(a)))), nil
}
