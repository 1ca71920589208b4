package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/logger"
)

func opts(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:           addr,
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		DialTimeout:    50 * time.Millisecond,
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), opts(mr.Addr()), logger.Nop())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()
}

func TestConnectTimesOut(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	if _, err := Connect(context.Background(), opts(addr), logger.Nop()); err == nil {
		t.Fatal("Connect() to a closed server succeeded")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Connect() took %v, want about the connect timeout", elapsed)
	}
}

func TestConnectRejectsBadOptions(t *testing.T) {
	o := opts("localhost:6379")
	o.RetryInterval = 0
	if _, err := Connect(context.Background(), o, logger.Nop()); err == nil {
		t.Error("Connect() with zero RetryInterval succeeded")
	}
}
