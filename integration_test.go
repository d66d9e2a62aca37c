package variant

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-variant/pkg/observe"
	"github.com/goliatone/go-variant/pkg/trait"
)

func TestEnumDefinitionHooks(t *testing.T) {
	capture := &observe.CaptureHook{}
	message := NewEnum("Message", WithHooks(observe.Hooks{capture}))
	message.MustVariant("Move", []string{"x", "y"})

	if len(capture.Events) != 2 {
		t.Fatalf("expected declaration and definition events, got %d", len(capture.Events))
	}
	if capture.Events[0].Kind != observe.KindEnumDeclared || capture.Events[0].Enum != "Message" {
		t.Fatalf("unexpected first event: %+v", capture.Events[0])
	}
	defined := capture.Events[1]
	if defined.Kind != observe.KindVariantDefined || defined.Variant != "Move" {
		t.Fatalf("unexpected second event: %+v", defined)
	}
	if defined.EnumID != message.ID() || defined.VariantID == "" {
		t.Fatalf("expected definition identities on event: %+v", defined)
	}
	if len(defined.Members) != 2 {
		t.Fatalf("expected member list on event: %+v", defined)
	}
}

func TestDefineHookFailureAbortsDefinition(t *testing.T) {
	failing := observe.HookFunc(func(context.Context, observe.Event) error {
		return context.Canceled
	})
	message := NewEnum("Message", WithHooks(observe.Hooks{failing}))
	if _, err := message.Variant("Move", []string{"x", "y"}); err == nil {
		t.Fatal("expected hook failure to surface")
	}
	if len(message.Variants()) != 0 {
		t.Fatal("failed definition must not register the variant")
	}
}

// Verifies that *Type satisfies trait.Target and that verified methods
// dispatch through Value.Call.
func TestTraitComposesOntoVariantType(t *testing.T) {
	_, _, move, _ := declareMessage(t)

	display := trait.New("Display", []string{"describe"})
	impl := trait.NewImplementation(map[string]trait.Method{
		"describe": func(recv any, _ ...any) (any, error) {
			return recv.(*Value).String(), nil
		},
	})
	if err := display.Implement(move, impl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !display.SatisfiedBy(move) {
		t.Fatal("type must be recorded as satisfying the contract")
	}

	got, err := move.MustNew(1, 2).Call("describe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<enum Message x=1,y=2>" {
		t.Fatalf("unexpected describe output: %v", got)
	}
	if !strings.Contains(strings.Join(move.Methods(), ","), "describe") {
		t.Fatalf("expected describe attached, got %v", move.Methods())
	}
}

func TestTraitCompositionHook(t *testing.T) {
	capture := &observe.CaptureHook{}
	_, _, move, _ := declareMessage(t)
	display := trait.New("Display", []string{"describe"}, trait.WithHooks(observe.Hooks{capture}))
	impl := trait.NewImplementation(map[string]trait.Method{
		"describe": func(any, ...any) (any, error) { return nil, nil },
	})
	if err := display.Implement(move, impl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected composition event, got %d", len(capture.Events))
	}
	event := capture.Events[0]
	if event.Kind != observe.KindTraitComposed || event.Contract != "Display" || event.Target != "Move" {
		t.Fatalf("unexpected event: %+v", event)
	}
}
