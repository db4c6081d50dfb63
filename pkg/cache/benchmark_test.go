package cache

import (
	"fmt"
	"testing"
)

func BenchmarkStoreOperations(b *testing.B) {
	for _, size := range []int{100, 10000} {
		b.Run(fmt.Sprintf("Size=%d", size), func(b *testing.B) {
			runStoreBenchmarks(b, size)
		})
	}
}

func runStoreBenchmarks(b *testing.B, size int) {
	store, err := New(WithName("benchmark"))
	if err != nil {
		b.Fatalf("Failed to create store: %v", err)
	}

	keys := make([]string, size)
	for i := 0; i < size; i++ {
		keys[i] = fmt.Sprintf("key:%d", i)
		if err := store.SimpleWrite(keys[i], i); err != nil {
			b.Fatalf("SimpleWrite failed: %v", err)
		}
		if err := store.Write([]string{"nested", keys[i], "value"}, i); err != nil {
			b.Fatalf("Write failed: %v", err)
		}
	}

	b.Run("SimpleRead/Hit", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			store.SimpleRead(keys[i%size])
		}
	})

	b.Run("SimpleRead/Miss", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			store.SimpleRead("missing")
		}
	})

	b.Run("SimpleWrite", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = store.SimpleWrite(keys[i%size], i)
		}
	})

	b.Run("Read/Nested", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			store.Read("nested", keys[i%size], "value")
		}
	})

	b.Run("Write/Nested", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = store.Write([]string{"nested", keys[i%size], "value"}, i)
		}
	})
}
