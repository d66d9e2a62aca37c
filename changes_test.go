package variant

import (
	"errors"
	"testing"
)

func TestWithChangesProducesNewValue(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	changed, err := v.WithChanges(Fields{"x": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := changed.MustGet("x"); got != 5 {
		t.Fatalf("expected x=5 on the copy, got %v", got)
	}
	if got := changed.MustGet("y"); got != 2 {
		t.Fatalf("expected y carried over, got %v", got)
	}
	if got := v.MustGet("x"); got != 1 {
		t.Fatalf("receiver must stay untouched, got x=%v", got)
	}
	if changed == v {
		t.Fatal("non-empty change-set must allocate a new value")
	}
	if changed.Type() != v.Type() {
		t.Fatal("copy must keep the runtime type")
	}
}

func TestWithChangesEmptyReturnsReceiver(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	same, err := v.WithChanges(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if same != v {
		t.Fatal("empty change-set must return the identical value")
	}
	same, err = v.WithChanges(Fields{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if same != v {
		t.Fatal("empty change-set must return the identical value")
	}
}

func TestWithChangesRejectsUnknownMembers(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	_, err := v.WithChanges(Fields{"z": 3})
	if !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
}
