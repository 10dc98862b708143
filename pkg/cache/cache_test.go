package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(2)
	c.now = func() time.Time { return now }
	defer c.Close()

	data := []byte("<svg/>")
	if err := c.Set(ctx, "a", data, time.Hour); err != nil {
		t.Fatal(err)
	}
	data[0] = 'X'
	got, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(got) != "<svg/>" {
		t.Fatalf("Get(a) = %q, %v, %v; want a copy of the stored bytes", got, hit, err)
	}

	t.Run("expiry", func(t *testing.T) {
		if err := c.Set(ctx, "short", []byte("x"), time.Minute); err != nil {
			t.Fatal(err)
		}
		now = now.Add(2 * time.Minute)
		if _, hit, _ := c.Get(ctx, "short"); hit {
			t.Error("expired entry returned")
		}
		if _, hit, _ := c.Get(ctx, "a"); !hit {
			t.Error("live entry missing")
		}
	})

	t.Run("eviction", func(t *testing.T) {
		c.Set(ctx, "b", []byte("b"), 0)
		c.Set(ctx, "c", []byte("c"), 0)
		if c.Len() != 2 {
			t.Errorf("Len() = %d, want 2", c.Len())
		}
		if _, hit, _ := c.Get(ctx, "a"); hit {
			t.Error("entry with the soonest expiry should be evicted first")
		}
	})

	t.Run("delete", func(t *testing.T) {
		c.Delete(ctx, "b")
		if _, hit, _ := c.Get(ctx, "b"); hit {
			t.Error("deleted entry returned")
		}
	})
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	t.Run("miss", func(t *testing.T) {
		if _, hit, err := c.Get(ctx, "absent"); hit || err != nil {
			t.Errorf("Get(absent) = %v, %v", hit, err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		if err := c.Set(ctx, "k", []byte("<svg/>"), time.Hour); err != nil {
			t.Fatalf("Set: %v", err)
		}
		data, hit, err := c.Get(ctx, "k")
		if err != nil || !hit || string(data) != "<svg/>" {
			t.Errorf("Get = %q, %v, %v", data, hit, err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
			t.Fatalf("Set: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
		if _, hit, _ := c.Get(ctx, "old"); hit {
			t.Error("expired entry returned")
		}
		if _, err := os.Stat(c.path("old")); !os.IsNotExist(err) {
			t.Error("expired entry not removed")
		}
	})

	t.Run("no ttl", func(t *testing.T) {
		if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if _, hit, _ := c.Get(ctx, "forever"); !hit {
			t.Error("entry without ttl missing")
		}
	})

	t.Run("corrupt", func(t *testing.T) {
		if err := c.Set(ctx, "bad", []byte("x"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := os.WriteFile(c.path("bad"), []byte("trunc"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
			t.Errorf("corrupt entry = %v, %v; want miss", hit, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		_ = c.Set(ctx, "gone", []byte("x"), 0)
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Errorf("second Delete: %v", err)
		}
		if _, hit, _ := c.Get(ctx, "gone"); hit {
			t.Error("deleted entry returned")
		}
	})

	t.Run("prune", func(t *testing.T) {
		now := time.Now()
		c.now = func() time.Time { return now }
		defer func() { c.now = time.Now }()

		_ = c.Set(ctx, "stale", []byte("1"), time.Minute)
		_ = c.Set(ctx, "fresh", []byte("2"), time.Hour)
		now = now.Add(10 * time.Minute)

		n, err := c.Prune()
		if err != nil {
			t.Fatalf("Prune: %v", err)
		}
		if n < 1 {
			t.Errorf("Prune removed %d entries, want at least the stale one", n)
		}
		if _, err := os.Stat(c.path("stale")); !os.IsNotExist(err) {
			t.Error("stale entry survived Prune")
		}
		if _, hit, _ := c.Get(ctx, "fresh"); !hit {
			t.Error("Prune removed a live entry")
		}
	})

	t.Run("clear", func(t *testing.T) {
		_ = c.Set(ctx, "a", []byte("1"), 0)
		_ = c.Set(ctx, "b", []byte("2"), 0)
		n, err := c.Clear()
		if err != nil {
			t.Fatalf("Clear: %v", err)
		}
		if n < 2 {
			t.Errorf("Clear removed %d entries, want at least 2", n)
		}
		entries, _ := os.ReadDir(c.Dir())
		if len(entries) != 0 {
			t.Errorf("%d items left after Clear", len(entries))
		}
	})
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
	if Hash([]byte("ab"), []byte("c")) == Hash([]byte("a"), []byte("bc")) {
		t.Error("part boundaries should change the hash")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	dk1 := k.DatasetKey("hash123", DatasetKeyOpts{Format: "xlsx", Sheet: "A"})
	dk2 := k.DatasetKey("hash123", DatasetKeyOpts{Format: "xlsx", Sheet: "B"})
	if dk1 == dk2 {
		t.Error("Different sheets should produce different keys")
	}
	if !strings.HasPrefix(dk1, "dataset:") {
		t.Errorf("DatasetKey prefix: %s", dk1)
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Scale: 2})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Scale: 3})
	if ak1 == ak2 || ak2 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if ak1 != k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ArtifactKey should be deterministic")
	}
	if !strings.HasPrefix(ak1, "artifact:") || len(ak1) != len("artifact:")+64 {
		t.Errorf("ArtifactKey shape: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "client:123:")

	opts := ArtifactKeyOpts{Format: "svg"}
	if got, want := scoped.ArtifactKey("h", opts), "client:123:"+inner.ArtifactKey("h", opts); got != want {
		t.Errorf("ArtifactKey = %s, want %s", got, want)
	}
	dk := scoped.DatasetKey("h", DatasetKeyOpts{Format: "csv"})
	if !strings.HasPrefix(dk, "client:123:dataset:") {
		t.Errorf("DatasetKey should be prefixed: %s", dk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "json"})
	if key != "prefix:"+NewDefaultKeyer().ArtifactKey("h", ArtifactKeyOpts{Format: "json"}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrBackend) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryPolicy(t *testing.T) {
	ctx := context.Background()
	policy := RetryPolicy{Attempts: 3, Delay: time.Millisecond}

	tests := []struct {
		name      string
		fail      func(call int) error
		wantErr   error
		wantCalls int
	}{
		{"success", func(int) error { return nil }, nil, 1},
		{"non-retryable", func(int) error { return ErrBackend }, ErrBackend, 1},
		{"retry once", func(call int) error {
			if call < 2 {
				return Retryable(ErrNetwork)
			}
			return nil
		}, nil, 2},
		{"exhausted", func(int) error { return Retryable(ErrNetwork) }, ErrNetwork, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := policy.Do(ctx, func() error {
				calls++
				return tt.fail(calls)
			})
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryPolicyContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultRetry.Do(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestTransient(t *testing.T) {
	if transient(nil) != nil {
		t.Error("transient(nil) != nil")
	}
	opErr := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	if err := transient(opErr); !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("net error not retryable: %v", err)
	}
	if err := transient(errors.New("WRONGTYPE")); IsRetryable(err) {
		t.Errorf("command error marked retryable: %v", err)
	}
}

func TestRedisKeys(t *testing.T) {
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "stackchart:")
	defer c.Close()
	if got := c.key("artifact:abc"); got != "stackchart:artifact:abc" {
		t.Errorf("key = %s", got)
	}
	tests := []struct{ in, want time.Duration }{
		{time.Hour, time.Hour},
		{0, 0},
		{-time.Second, 0},
	}
	for _, tt := range tests {
		if got := redisTTL(tt.in); got != tt.want {
			t.Errorf("redisTTL(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMongoEntry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	e := newMongoEntry("k", []byte("v"), time.Hour, now)
	if e.Key != "k" || string(e.Data) != "v" {
		t.Errorf("entry = %+v", e)
	}
	if e.ExpiresAt == nil || !e.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("ExpiresAt = %v", e.ExpiresAt)
	}
	if e.expired(now.Add(30 * time.Minute)) {
		t.Error("expired before ttl")
	}
	if !e.expired(now.Add(2 * time.Hour)) {
		t.Error("not expired after ttl")
	}

	forever := newMongoEntry("k", nil, 0, now)
	if forever.ExpiresAt != nil || forever.expired(now.Add(1e6*time.Hour)) {
		t.Error("entry without ttl expires")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Config{})
	if err != nil {
		t.Fatalf("Open(none): %v", err)
	}
	if _, ok := c.(NullCache); !ok {
		t.Errorf("Open(none) = %T", c)
	}

	c, err = Open(ctx, Config{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("Open(memory): %v", err)
	}
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("Open(memory) = %T", c)
	}

	c, err = Open(ctx, Config{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("Open(file) = %T", c)
	}

	for _, cfg := range []Config{
		{Backend: "memcached"},
		{Backend: BackendFile},
		{Backend: BackendRedis, URL: "http://not-redis"},
		{Backend: BackendMongo, URL: "mongodb://localhost"},
	} {
		if _, err := Open(ctx, cfg); !errors.Is(err, ErrBackend) {
			t.Errorf("Open(%+v) error = %v, want ErrBackend", cfg, err)
		}
	}
}
