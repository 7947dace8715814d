package msgtree

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestTreeCache(t *testing.T) {
	cache := NewTreeCache(4)

	first, err := cache.Get("^a^bc")
	if err != nil {
		t.Fatal(err)
	}
	second, err := cache.Get("^a^bc")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the cached tree to be reused")
	}
	if hits, misses := cache.Stats(); hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}
}

func TestTreeCacheErrors(t *testing.T) {
	cache := NewTreeCache(4)
	for i := 0; i < 2; i++ {
		if _, err := cache.Get("^a"); !errors.Is(err, ErrMalformedTreeSpec) {
			t.Fatalf("expected ErrMalformedTreeSpec, got %v", err)
		}
	}
	if hits, _ := cache.Stats(); hits != 0 {
		t.Errorf("failed shapes must not be cached, got %d hits", hits)
	}
}

func TestTreeCacheConcurrent(t *testing.T) {
	cache := NewTreeCache(2)
	shapes := []string{"^ab", "^a^bc", "^^abc", "^^ab^cd"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			shape := shapes[i%len(shapes)]
			root, err := cache.Get(shape)
			if err != nil {
				t.Error(err)
				return
			}
			if root.PreOrder() != shape {
				t.Errorf("expected %q, got %q", shape, root.PreOrder())
			}
		}(i)
	}
	wg.Wait()
}

func TestTreeCacheSmallSizes(t *testing.T) {
	shapes := []string{"^ab", "^a^bc", "^ab", "^^abc", "^a^bc", "^ab", "^^ab^cd", "^ab"}

	for size := 0; size <= 3; size++ {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			cache := NewTreeCache(size)
			for i, shape := range shapes {
				root, err := cache.Get(shape)
				if err != nil {
					t.Fatalf("get %d: %v", i, err)
				}
				if root.PreOrder() != shape {
					t.Errorf("get %d: expected %q, got %q", i, shape, root.PreOrder())
				}
			}
			if hits, misses := cache.Stats(); hits+misses != len(shapes) {
				t.Errorf("expected %d lookups, got %d hits and %d misses", len(shapes), hits, misses)
			}
		})
	}
}
