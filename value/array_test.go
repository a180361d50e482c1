package value

import "testing"

func TestArrayIndexNegativeFromEnd(t *testing.T) {
	a := Array{1, 2, 3, 4, 5}
	got, err := a.Index(-2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(Number) != 4 {
		t.Fatalf("got %v, want 4", got)
	}
}

func TestArrayIndexOutOfRange(t *testing.T) {
	a := Array{1, 2, 3}
	if _, err := a.Index(5); err == nil {
		t.Fatal("expected an out-of-range error")
	}
	if _, err := a.Index(-4); err == nil {
		t.Fatal("expected an out-of-range error for a too-negative index")
	}
}

func TestArraySliceHalfOpenRange(t *testing.T) {
	a := Array{0, 1, 2, 3, 4}
	got, err := a.Slice(1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Array{1, 2, 3}
	out := got.(Array)
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v, want %v", out, want)
		}
	}
}

func TestArraySliceNegativeBounds(t *testing.T) {
	a := Array{0, 1, 2, 3, 4}
	got, err := a.Slice(-3, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Array{2, 3}
	out := got.(Array)
	if len(out) != len(want) || out[0] != want[0] || out[1] != want[1] {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestArraySliceEmptyWhenStartAfterEnd(t *testing.T) {
	a := Array{0, 1, 2}
	got, err := a.Slice(2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.(Array)) != 0 {
		t.Fatalf("got %v, want an empty array", got)
	}
}

func TestArrayGetFieldLen(t *testing.T) {
	got, err := Array{1, 2, 3}.GetField("len")
	if err != nil || got.(Number) != 3 {
		t.Fatalf("GetField(len) = %v, %v, want 3, nil", got, err)
	}
}

func TestArrayGetFieldUnknown(t *testing.T) {
	if _, err := (Array{1}).GetField("nope"); err == nil {
		t.Fatal("expected InvalidField for an unknown field name")
	}
}

func TestArrayMinMaxOnEmptyIsError(t *testing.T) {
	var a Array
	if _, err := a.Min(); err == nil {
		t.Fatal("expected an error for Min on an empty array")
	}
	if _, err := a.Max(); err == nil {
		t.Fatal("expected an error for Max on an empty array")
	}
	if _, err := a.Avg(); err == nil {
		t.Fatal("expected an error for Avg on an empty array")
	}
}

func TestArrayRange(t *testing.T) {
	got, err := Array{3, -1, 7, 2}.Range()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(Number) != 8 {
		t.Fatalf("got %v, want 8", got)
	}
}
