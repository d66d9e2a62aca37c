package variant

import (
	"errors"
	"reflect"
	"testing"
)

func TestTupleReturnsMemberOrder(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(Fields{"y": 2, "x": 1})
	if !reflect.DeepEqual([]any{1, 2}, v.Tuple()) {
		t.Fatalf("unexpected tuple %v", v.Tuple())
	}
	tuple := v.Tuple()
	tuple[0] = 99
	if v.MustGet("x") != 1 {
		t.Fatal("Tuple must return a copy")
	}
}

func TestDeconstructAllFields(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	got, err := v.Deconstruct(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(Fields{"x": 1, "y": 2}, got) {
		t.Fatalf("unexpected fields %v", got)
	}
}

func TestDeconstructSelectedKeys(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	got, err := v.Deconstruct([]string{"y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(Fields{"y": 2}, got) {
		t.Fatalf("unexpected fields %v", got)
	}
}

func TestDeconstructStopsAtFirstUnknownKey(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	got, err := v.Deconstruct([]string{"x", "nope"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(Fields{"x": 1}, got) {
		t.Fatalf("expected strict prefix up to unknown key, got %v", got)
	}
}

func TestDeconstructOverLongSelectorYieldsEmpty(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	got, err := v.Deconstruct([]string{"x", "y", "z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map when selector is longer than member list, got %v", got)
	}
}

func TestDeconstructAnySelector(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	got, err := v.Deconstruct([]any{"x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(Fields{"x": 1}, got) {
		t.Fatalf("unexpected fields %v", got)
	}
}

func TestDeconstructRejectsMalformedSelector(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	if _, err := v.Deconstruct(42); !errors.Is(err, ErrInvalidKeySelector) {
		t.Fatalf("expected ErrInvalidKeySelector, got %v", err)
	}
	if _, err := v.Deconstruct([]any{"x", 7}); !errors.Is(err, ErrInvalidKeySelector) {
		t.Fatalf("expected ErrInvalidKeySelector for non-string element, got %v", err)
	}
}
