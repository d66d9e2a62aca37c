package variant

import "testing"

func TestEqualReflexive(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	if !Equal(v, v) {
		t.Fatal("a value must equal itself")
	}
}

func TestEqualComparesFieldsInOrder(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	a := point.MustNew(1, 2)
	b := point.MustNew(1, 2)
	c := point.MustNew(2, 1)
	if !Equal(a, b) {
		t.Fatal("values with identical fields must be equal")
	}
	if Equal(a, c) {
		t.Fatal("values with different fields must not be equal")
	}
}

func TestEqualDistinctTypesNeverEqual(t *testing.T) {
	a := MustDefine("Point", []string{"x", "y"}).MustNew(1, 2)
	b := MustDefine("Vector", []string{"x", "y"}).MustNew(1, 2)
	if Equal(a, b) {
		t.Fatal("values of different types must never be equal, even with identical fields")
	}
}

func TestEqualNestedValues(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	segment := MustDefine("Segment", []string{"from", "to"})
	a := segment.MustNew(point.MustNew(0, 0), point.MustNew(1, 1))
	b := segment.MustNew(point.MustNew(0, 0), point.MustNew(1, 1))
	c := segment.MustNew(point.MustNew(0, 0), point.MustNew(2, 2))
	if !Equal(a, b) {
		t.Fatal("structurally identical nested values must be equal")
	}
	if Equal(a, c) {
		t.Fatal("nested field difference must break equality")
	}
}

func TestEqualContainers(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	batch := MustDefine("Batch", []string{"items", "labels"})
	a := batch.MustNew([]any{point.MustNew(1, 2), 3}, Fields{"k": point.MustNew(0, 0)})
	b := batch.MustNew([]any{point.MustNew(1, 2), 3}, Fields{"k": point.MustNew(0, 0)})
	c := batch.MustNew([]any{point.MustNew(1, 2), 4}, Fields{"k": point.MustNew(0, 0)})
	if !Equal(a, b) {
		t.Fatal("values nested inside slices and maps must compare structurally")
	}
	if Equal(a, c) {
		t.Fatal("container element difference must break equality")
	}
}

func TestEqualSelfCycleResolvesTrue(t *testing.T) {
	node := MustDefine("Node", []string{"value", "next"})
	a := node.MustNew(1, nil)
	if err := a.Set("next", a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(a, a) {
		t.Fatal("self-referential value must equal itself without overflowing")
	}

	b := node.MustNew(1, nil)
	if err := b.Set("next", b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(a, b) {
		t.Fatal("two equivalent self-cycles must be equal")
	}
}

// Pins the conservative cycle-breaking rule: a two-node cycle and a one-node
// cycle carrying the same payload compare equal because the in-progress pair
// short-circuits to true. This is weaker than graph isomorphism.
func TestEqualConservativeCycleRule(t *testing.T) {
	node := MustDefine("Cell", []string{"value", "next"})
	a1 := node.MustNew(1, nil)
	a2 := node.MustNew(1, nil)
	if err := a1.Set("next", a2); err != nil {
		t.Fatal(err)
	}
	if err := a2.Set("next", a1); err != nil {
		t.Fatal(err)
	}

	b := node.MustNew(1, nil)
	if err := b.Set("next", b); err != nil {
		t.Fatal(err)
	}

	if !Equal(a1, b) {
		t.Fatal("conservative rule: two-cycle and one-cycle with equal payloads must compare equal")
	}
}

func TestEqualCycleWithDivergingPayload(t *testing.T) {
	node := MustDefine("Ring", []string{"value", "next"})
	a := node.MustNew(1, nil)
	b := node.MustNew(2, nil)
	if err := a.Set("next", a); err != nil {
		t.Fatal(err)
	}
	if err := b.Set("next", b); err != nil {
		t.Fatal(err)
	}
	if Equal(a, b) {
		t.Fatal("cycles with differing payloads must not be equal")
	}
}

// A container can reach itself without an intervening value; the walk must
// terminate through the same in-progress bookkeeping values use.
func TestEqualContainerSelfCycle(t *testing.T) {
	bag := MustDefine("Bag", []string{"items"})

	s := []any{nil, 2}
	s[0] = s
	a := bag.MustNew(s)

	u := []any{nil, 2}
	u[0] = u
	b := bag.MustNew(u)

	if !Equal(a, b) {
		t.Fatal("equivalent self-containing slices must compare equal")
	}

	w := []any{nil, 3}
	w[0] = w
	c := bag.MustNew(w)
	if Equal(a, c) {
		t.Fatal("self-containing slices with different payloads must not be equal")
	}
}

func TestEqualMapSelfCycle(t *testing.T) {
	bag := MustDefine("Bag", []string{"items"})

	m := map[string]any{"v": 1}
	m["self"] = m
	a := bag.MustNew(m)

	n := map[string]any{"v": 1}
	n["self"] = n
	b := bag.MustNew(n)

	if !Equal(a, b) {
		t.Fatal("equivalent self-containing maps must compare equal")
	}
}

func TestEqualNilHandling(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	v := point.MustNew(1, 2)
	if Equal(v, nil) || Equal(nil, v) {
		t.Fatal("nil never equals a value")
	}
	if !Equal(nil, nil) {
		t.Fatal("nil equals nil by identity")
	}
}
