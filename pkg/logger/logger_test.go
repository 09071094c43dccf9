package logger

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	ctxutil "github.com/rentmoment/rental-api/pkg/context"
)

func TestGetLogger_NopBeforeInit(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	if GetLogger() == nil {
		t.Fatal("Expected a usable logger before InitLogger")
	}
	InfoWithContext(context.Background(), "ignored").String("k", "v").Log()
}

func TestContextLogBuilder_ExtractsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	saved := Logger
	SetLogger(zap.New(core))
	defer func() { Logger = saved }()

	ctx := ctxutil.NewContextWithRequest(context.Background(), ctxutil.RequestInfo{
		RequestID: "req-9",
		UserAgent: "rental-app/2.1",
		UserID:    7,
	}, "order_service", "Cancel")

	ErrorWithContext(ctx, "Failed to cancel order").Uint("order_id", 3).Err(errors.New("boom")).Log()
	DebugWithContext(ctx, "below level").Log()

	if logs.Len() != 1 {
		t.Fatalf("Expected 1 entry, got %d", logs.Len())
	}

	fields := logs.All()[0].ContextMap()
	if fields["request_id"] != "req-9" {
		t.Errorf("Expected request_id req-9, got %v", fields["request_id"])
	}
	if fields["user_agent"] != "rental-app/2.1" {
		t.Errorf("Expected user_agent rental-app/2.1, got %v", fields["user_agent"])
	}
	if fields["function"] != "Cancel" {
		t.Errorf("Expected function Cancel, got %v", fields["function"])
	}
	if fields["order_id"] != uint64(3) {
		t.Errorf("Expected order_id 3, got %v", fields["order_id"])
	}
	if fields["error"] != "boom" {
		t.Errorf("Expected error boom, got %v", fields["error"])
	}
}
