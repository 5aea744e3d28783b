package cache

import (
	"errors"
	"strconv"
	"testing"
)

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) missing")
	}
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) present, want evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("Get(%s) missing", k)
		}
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestCachePutReplaces(t *testing.T) {
	c := New[string, int](0)
	c.Put("k", 1)
	c.Put("k", 2)
	if v, _ := c.Get("k"); v != 2 {
		t.Errorf("Get(k) = %d, want 2", v)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestCacheGetOrCompute(t *testing.T) {
	c := New[int, string](4)
	calls := 0
	compute := func() (string, error) {
		calls++
		return "v" + strconv.Itoa(calls), nil
	}
	for range 3 {
		v, err := c.GetOrCompute(1, compute)
		if err != nil || v != "v1" {
			t.Fatalf("GetOrCompute = %q, %v; want v1, nil", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrCompute(2, func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrCompute error = %v, want boom", err)
	}
	if _, ok := c.Get(2); ok {
		t.Error("failed result was cached")
	}

	s := c.Stats()
	if s.Hits != 2 || s.Len != 1 || s.Limit != 4 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string, int](4)
	c.Put("a", 1)
	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New[string, int](1000)
	for i := 0; i < 100; i++ {
		c.Put(strconv.Itoa(i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("50")
	}
}
