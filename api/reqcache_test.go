package api

import (
	"context"
	"testing"
)

func TestFacade(t *testing.T) {
	store, err := New(WithName("api"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Write([]string{"a", "b"}, "value1"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.SimpleWrite("nil", nil); !IsInvalidValue(err) {
		t.Errorf("Expected invalid value error, got %v", err)
	}

	ctx := NewContext(context.Background(), store)
	got, ok := FromContext(ctx)
	if !ok || got != store {
		t.Fatal("Expected store from context")
	}

	v, found := got.Read("a")
	if !found {
		t.Fatal("Expected branch at 'a'")
	}
	if _, ok := v.(Branch); !ok {
		t.Errorf("Expected Branch, got %T", v)
	}
	if m, ok := Plain(v).(map[string]any); !ok || m["b"] != "value1" {
		t.Errorf("Unexpected plain value: %v", Plain(v))
	}

	var stats Stats = store.Stats()
	if stats.Writes != 1 || stats.Reads != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}
