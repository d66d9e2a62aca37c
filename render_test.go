package variant

import (
	"strings"
	"testing"
)

func TestRenderEnumOwnedValue(t *testing.T) {
	message := NewEnum("Message")
	move := message.MustVariant("Move", []string{"x", "y"})
	v := move.MustNew(1, 2)
	if got := v.String(); got != "<enum Message x=1,y=2>" {
		t.Fatalf("unexpected render: %s", got)
	}
}

func TestRenderStandaloneValue(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	if got := point.MustNew(1, 2).String(); got != "<variant Point x=1,y=2>" {
		t.Fatalf("unexpected render: %s", got)
	}
}

func TestRenderNoFields(t *testing.T) {
	message := NewEnum("Message")
	quit := message.MustVariant("Quit", nil)
	if got := quit.MustNew().String(); got != "<enum Message>" {
		t.Fatalf("unexpected render: %s", got)
	}
}

func TestRenderNested(t *testing.T) {
	point := MustDefine("Point", []string{"x", "y"})
	segment := MustDefine("Segment", []string{"from", "to"})
	v := segment.MustNew(point.MustNew(0, 0), point.MustNew(1, 1))
	want := "<variant Segment from=<variant Point x=0,y=0>,to=<variant Point x=1,y=1>>"
	if got := v.String(); got != want {
		t.Fatalf("unexpected render:\nwant: %s\n got: %s", want, got)
	}
}

func TestRenderSelfCycleSubstitutesEllipsis(t *testing.T) {
	node := MustDefine("Node", []string{"value", "next"})
	v := node.MustNew(1, nil)
	if err := v.Set("next", v); err != nil {
		t.Fatal(err)
	}
	if got := v.String(); got != "<variant Node value=1,next=...>" {
		t.Fatalf("unexpected render: %s", got)
	}
}

func TestRenderCycleThroughContainer(t *testing.T) {
	node := MustDefine("Node", []string{"value", "items"})
	v := node.MustNew(1, nil)
	if err := v.Set("items", []any{v, 2}); err != nil {
		t.Fatal(err)
	}
	got := v.String()
	if !strings.Contains(got, "...") {
		t.Fatalf("expected ellipsis for cycle through slice, got: %s", got)
	}
	if got != "<variant Node value=1,items=[... 2]>" {
		t.Fatalf("unexpected render: %s", got)
	}
}

func TestRenderContainerSelfCycle(t *testing.T) {
	bag := MustDefine("Bag", []string{"items"})
	s := []any{nil, 2}
	s[0] = s
	if got := bag.MustNew(s).String(); got != "<variant Bag items=[... 2]>" {
		t.Fatalf("unexpected render: %s", got)
	}
}

func TestRenderNil(t *testing.T) {
	if got := Render(nil); got != "<nil>" {
		t.Fatalf("unexpected render: %s", got)
	}
}
