package dialog

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	it, err := m.Get(ctx, 42)
	if err != nil || it.State != StateIdle || len(it.Payload) != 0 {
		t.Fatalf("fresh chat = %+v, %v", it, err)
	}

	if err := m.Set(ctx, 42, StateSaleConfirm, Payload{"good": "Dhoop", "qty": 3}); err != nil {
		t.Fatal(err)
	}
	it, err = m.Get(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if it.State != StateSaleConfirm {
		t.Fatalf("state = %s", it.State)
	}
	if g, _ := GetString(it.Payload, "good"); g != "Dhoop" {
		t.Fatalf("good = %q", g)
	}
	if n, ok := GetInt(it.Payload, "qty"); !ok || n != 3 {
		t.Fatalf("qty = %d %v", n, ok)
	}

	if err := m.Reset(ctx, 42); err != nil {
		t.Fatal(err)
	}
	if it, _ := m.Get(ctx, 42); it.State != StateIdle {
		t.Fatalf("after reset = %s", it.State)
	}
}

func TestGetHelpersMissing(t *testing.T) {
	p := Payload{"qty": "x"}
	if _, ok := GetString(p, "good"); ok {
		t.Fatal("missing key reported present")
	}
	if _, ok := GetInt(p, "qty"); ok {
		t.Fatal("non-numeric qty parsed")
	}
}
