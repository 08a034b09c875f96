package redis

import (
	"context"
	"testing"
	"time"

	"vidhub-go/internal/config"

	"github.com/redis/go-redis/v9"
)

// unreachable 指向无人监听的端口
var unreachable = &config.RedisConfig{Host: "127.0.0.1", Port: 1, DB: 2, PoolSize: 4}

func TestOptionsFromConfig(t *testing.T) {
	opt := options(&config.RedisConfig{Host: "cache", Port: 6380, Password: "pw", DB: 3, PoolSize: 8})
	if opt.Addr != "cache:6380" || opt.Password != "pw" || opt.DB != 3 || opt.PoolSize != 8 {
		t.Errorf("options = %+v", opt)
	}
}

func TestOpen_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Open(ctx, unreachable)
	if err == nil {
		t.Fatal("expected ping error")
	}
	if client != nil {
		t.Errorf("client = %v, want nil on failure", client)
	}
	if err := Close(nil); err != nil {
		t.Errorf("Close(nil) = %v", err)
	}
}

func TestTokenDenylist_SkipsServerForTrivialCases(t *testing.T) {
	client := redis.NewClient(options(unreachable))
	defer client.Close()
	d := NewTokenDenylist(client)
	ctx := context.Background()

	if err := d.Revoke(ctx, "", time.Minute); err == nil {
		t.Error("empty token id should be rejected")
	}
	if err := d.Revoke(ctx, "jti-1", 0); err != nil {
		t.Errorf("expired token revoke = %v, want nil", err)
	}
	if revoked, err := d.IsRevoked(ctx, ""); err != nil || revoked {
		t.Errorf("IsRevoked(\"\") = %v, %v", revoked, err)
	}
}
