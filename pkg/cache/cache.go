// Package cache provides a request-scoped, in-memory key/value store.
// A Store lives for the duration of one request, supports nested key paths,
// and counts misses, reads, writes and deletes for request-level diagnostics.
// There is no eviction, expiration or persistence: the hosting request boundary
// creates a Store, uses it, and flushes it when the request ends.
//
// Package cache 提供请求级的内存键值存储。
// Store 的生命周期为一次请求，支持嵌套键路径，
// 并统计未命中、读取、写入和删除次数，用于请求级诊断。
// 没有淘汰、过期或持久化：请求边界负责创建、使用并在请求结束时清空 Store。
package cache

// ICache defines the interface for a request cache.
// All methods are safe to call from goroutines spawned by the owning request.
//
// ICache 定义请求级缓存的接口。
type ICache interface {
	// Read follows path through nested branches.
	// It returns (nil, false) and counts a miss if any segment is absent.
	//
	// Read 按路径遍历嵌套分支。任一键段不存在时返回 (nil, false) 并记录一次未命中。
	Read(path ...string) (Value, bool)

	// Write stores value at path, creating intermediate branches as needed.
	// Writing nil returns an error wrapping ErrInvalidValue and leaves the store untouched.
	//
	// Write 将值写入路径，必要时创建中间分支。
	// 写入 nil 会返回包装 ErrInvalidValue 的错误，且不修改存储。
	Write(path []string, value any) error

	// SimpleRead is the single-level form of Read.
	SimpleRead(key string) (Value, bool)

	// SimpleWrite is the single-level form of Write.
	SimpleWrite(key string, value any) error

	// SimpleDelete removes a top-level key. Deleting an absent key is a no-op.
	SimpleDelete(key string)

	// Flush empties the store.
	Flush()

	// Misses returns the number of failed reads.
	Misses() int64

	// Reads returns the number of successful reads.
	Reads() int64

	// Writes returns the number of successful writes.
	Writes() int64

	// Deletes returns the number of keys actually removed.
	Deletes() int64

	// Stats returns a snapshot of all counters.
	Stats() Stats
}

// Stats represents request cache counters.
//
// Stats 表示请求级缓存的计数器。
type Stats struct {
	// Misses is the number of reads where the key path was not found
	Misses int64 `json:"misses"`

	// Reads is the number of successful reads
	Reads int64 `json:"reads"`

	// Writes is the number of successful writes
	Writes int64 `json:"writes"`

	// Deletes is the number of keys removed by SimpleDelete
	Deletes int64 `json:"deletes"`
}
