package cache

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/yourusername/reqcache/pkg/errors"
)

// Store is the request-scoped key/value store.
// The zero value is not usable; create one with New or a Factory.
//
// Store 是请求级键值存储。零值不可用，请使用 New 或 Factory 创建。
type Store struct {
	name              string
	root              Branch
	stats             Stats
	resetStatsOnFlush bool
	logger            *slog.Logger
	mu                sync.Mutex
}

var _ ICache = (*Store)(nil)

// New creates a Store with the given options.
//
// New 使用给定选项创建 Store。
//
// Parameters:
//   - options: Functional options applied over NewDefaultConfig
//
// Returns:
//   - *Store: A new, empty store
//   - error: An error if the resulting configuration is invalid
func New(options ...Option) (*Store, error) {
	config := NewDefaultConfig()
	for _, option := range options {
		option(config)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store configuration: %w", err)
	}

	return newStore(config), nil
}

func newStore(config *Config) *Store {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		name:              config.Name,
		root:              make(Branch),
		resetStatsOnFlush: config.ResetStatsOnFlush,
		logger:            logger.With("store", config.Name),
	}
}

// Name returns the store name.
func (s *Store) Name() string {
	return s.name
}

// Read follows path through nested branches and returns the value found.
// Branches are returned as copies.
//
// Read 按路径遍历嵌套分支并返回找到的值。分支以副本形式返回。
func (s *Store) Read(path ...string) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := lookup(s.root, path)
	if !found {
		s.stats.Misses++
		return nil, false
	}

	s.stats.Reads++
	return clone(v), true
}

// Write stores value at path. Every segment but the last is walked or
// created as a Branch; a Leaf found on the way is replaced by an empty Branch.
//
// Write 将值写入路径。除最后一段外的每一段都会被遍历或创建为分支；
// 途中遇到的叶子会被替换为空分支。
func (s *Store) Write(path []string, value any) error {
	if len(path) == 0 {
		return errors.NewKeyError("write", path, errors.ErrEmptyKeyPath, "")
	}

	v, ok := toValue(value)
	if !ok {
		s.logger.Debug("Rejected nil write", "key", errors.JoinPath(path))
		return errors.NewKeyError("write", path, errors.ErrInvalidValue, "attempted to store nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.root
	for _, key := range path[:len(path)-1] {
		child, isBranch := node[key].(Branch)
		if !isBranch {
			child = make(Branch)
			node[key] = child
		}
		node = child
	}
	node[path[len(path)-1]] = v

	s.stats.Writes++
	return nil
}

// SimpleRead looks up a single top-level key.
//
// SimpleRead 查找单个顶层键。
func (s *Store) SimpleRead(key string) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := s.root[key]
	if !found {
		s.stats.Misses++
		return nil, false
	}

	s.stats.Reads++
	return clone(v), true
}

// SimpleWrite stores value under a single top-level key.
//
// SimpleWrite 将值存储在单个顶层键下。
func (s *Store) SimpleWrite(key string, value any) error {
	v, ok := toValue(value)
	if !ok {
		s.logger.Debug("Rejected nil write", "key", key)
		return errors.NewKeyError("write", []string{key}, errors.ErrInvalidValue, "attempted to store nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.root[key] = v
	s.stats.Writes++
	return nil
}

// SimpleDelete removes a top-level key. Deletes is only counted when a key
// was actually removed.
//
// SimpleDelete 删除顶层键。仅在确实删除了键时才计数。
func (s *Store) SimpleDelete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.root[key]; !found {
		return
	}
	delete(s.root, key)
	s.stats.Deletes++
}

// Flush empties the store. Counters are kept unless the store was created
// with WithResetStatsOnFlush(true).
//
// Flush 清空存储。除非创建时设置了 WithResetStatsOnFlush(true)，否则计数器保留。
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("Flushing store", "keys", len(s.root))
	s.root = make(Branch)
	if s.resetStatsOnFlush {
		s.stats = Stats{}
	}
}

// Len returns the number of top-level keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.root)
}

// Misses returns the number of failed reads.
func (s *Store) Misses() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Misses
}

// Reads returns the number of successful reads.
func (s *Store) Reads() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Reads
}

// Writes returns the number of successful writes.
func (s *Store) Writes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Writes
}

// Deletes returns the number of keys removed.
func (s *Store) Deletes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Deletes
}

// Stats returns a snapshot of the counters.
//
// Stats 返回计数器的快照。
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// lookup walks root along path. An empty path, a missing segment, or a leaf
// reached before the last segment all report false.
func lookup(root Branch, path []string) (Value, bool) {
	if len(path) == 0 {
		return nil, false
	}

	var cur Value = root
	for _, key := range path {
		b, isBranch := cur.(Branch)
		if !isBranch {
			return nil, false
		}
		next, found := b[key]
		if !found {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
