package observe

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNormalizeEventTrimsClonesAndDefaults(t *testing.T) {
	meta := map[string]any{"k": "v"}
	members := []string{"x", "y"}
	evt := Event{
		Kind:      " variant.defined ",
		Enum:      " Message ",
		EnumID:    " id-1 ",
		Variant:   " Move ",
		VariantID: " id-2 ",
		Contract:  " Camel ",
		Target:    " Animal ",
		Members:   members,
		Metadata:  meta,
	}

	got := NormalizeEvent(evt)

	if got.Kind != "variant.defined" || got.Enum != "Message" || got.Variant != "Move" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.EnumID != "id-1" || got.VariantID != "id-2" || got.Contract != "Camel" || got.Target != "Animal" {
		t.Fatalf("unexpected trimming: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	got.Metadata["k"] = "changed"
	if evt.Metadata["k"] != "v" {
		t.Fatalf("expected original metadata untouched: %+v", evt.Metadata)
	}
	got.Members[0] = "changed"
	if members[0] != "x" {
		t.Fatalf("expected original members untouched: %+v", members)
	}
}

func TestHooksNotifyShortCircuitsMissingKind(t *testing.T) {
	hooks := Hooks{&CaptureHook{}}
	if err := hooks.Notify(context.Background(), Event{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	capture := hooks[0].(*CaptureHook)
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured, got %d", len(capture.Events))
	}
}

func TestHooksNotifyFansOutAndJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	capture := &CaptureHook{}
	hooks := Hooks{
		capture,
		nil,
		HookFunc(func(context.Context, Event) error { return boom }),
	}

	err := hooks.Notify(nil, Event{Kind: KindEnumDeclared, Enum: "Message", OccurredAt: time.Now()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error containing boom, got %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected capture despite sibling failure, got %d", len(capture.Events))
	}
	if capture.Events[0].Enum != "Message" {
		t.Fatalf("unexpected event: %+v", capture.Events[0])
	}
}

func TestHooksEnabled(t *testing.T) {
	if (Hooks{}).Enabled() {
		t.Fatal("empty hooks must report disabled")
	}
	if !(Hooks{&CaptureHook{}}).Enabled() {
		t.Fatal("non-empty hooks must report enabled")
	}
}
