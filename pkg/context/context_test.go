package ctxutil

import (
	"context"
	"testing"
)

func TestNewContextWithRequest(t *testing.T) {
	ctx := NewContextWithRequest(context.Background(), RequestInfo{
		RequestID: "req-1",
		ClientIP:  "10.0.0.1",
		UserID:    42,
		UserRole:  "admin",
	}, "product_handler", "List")

	if got := GetRequestID(ctx); got != "req-1" {
		t.Errorf("Expected request id req-1, got %q", got)
	}
	if got, ok := GetUserIDUint(ctx); !ok || got != 42 {
		t.Errorf("Expected user id 42, got %d (%v)", got, ok)
	}
	if got := GetUserRole(ctx); got != "admin" {
		t.Errorf("Expected role admin, got %q", got)
	}
	if got := GetModule(ctx); got != "product_handler" {
		t.Errorf("Expected module product_handler, got %q", got)
	}
	if GetStartTime(ctx).IsZero() {
		t.Error("Expected start time to be set")
	}
}

func TestNewContextWithRequest_KeepsStartTime(t *testing.T) {
	first := NewContextWithRequest(context.Background(), RequestInfo{}, "a", "b")
	second := NewContextWithRequest(first, RequestInfo{}, "c", "d")

	if !GetStartTime(first).Equal(GetStartTime(second)) {
		t.Error("Expected start time to be preserved")
	}
	if got := GetFunction(second); got != "d" {
		t.Errorf("Expected function d, got %q", got)
	}
}

func TestGetters_EmptyContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := GetUserIDUint(ctx); ok {
		t.Error("Expected no user id")
	}
	if GetDuration(ctx) != 0 {
		t.Error("Expected zero duration without start time")
	}
}
