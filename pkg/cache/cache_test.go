package cache

import (
	"context"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := NewCache(0)
	defer c.Close()
	ctx := context.Background()

	if err := c.SetJSON(ctx, "rental:category:1", map[string]string{"name": "Sarees"}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var got map[string]string
	hit, err := c.GetJSON(ctx, "rental:category:1", &got)
	if err != nil || !hit {
		t.Fatalf("Expected hit, got hit=%v err=%v", hit, err)
	}
	if got["name"] != "Sarees" {
		t.Errorf("Expected Sarees, got %q", got["name"])
	}
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(0)
	defer c.Close()
	ctx := context.Background()

	_ = c.SetJSON(ctx, "k", 1, -time.Second)

	var v int
	if hit, _ := c.GetJSON(ctx, "k", &v); hit {
		t.Error("Expected expired item to miss")
	}
}

func TestCache_DeleteByPattern(t *testing.T) {
	c := NewCache(0)
	defer c.Close()
	ctx := context.Background()

	for _, k := range []string{"rental:product:1", "rental:product:slug:red-saree", "rental:category:1"} {
		_ = c.SetJSON(ctx, k, true, time.Minute)
	}

	n, err := c.DeleteByPattern(ctx, "rental:product:*")
	if err != nil {
		t.Fatalf("DeleteByPattern: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 deletions, got %d", n)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 remaining item, got %d", c.Len())
	}
}

func TestCache_JanitorEvicts(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	defer c.Close()

	_ = c.SetJSON(context.Background(), "k", 1, time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for c.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Error("Expected janitor to evict the expired item")
	}
}
