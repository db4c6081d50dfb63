package cache

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/mitchellh/mapstructure"

	"github.com/yourusername/reqcache/pkg/errors"
)

// Decode reads the value at path and decodes it into out, which must be a
// pointer. It counts a read or a miss exactly like Read.
//
// Decode 读取路径处的值并解码到 out（必须为指针）。计数方式与 Read 相同。
//
// Parameters:
//   - out: Pointer to the destination, e.g. *struct or *map
//   - path: The key path to read
//
// Returns:
//   - error: A KeyError wrapping ErrNotFound or ErrDecodeFailed
func (s *Store) Decode(out any, path ...string) error {
	v, found := s.Read(path...)
	if !found {
		return errors.NewKeyError("decode", path, errors.ErrNotFound, "")
	}

	if err := mapstructure.Decode(Plain(v), out); err != nil {
		return errors.NewKeyError("decode", path, errors.ErrDecodeFailed, err.Error())
	}
	return nil
}

// Query evaluates a JSONPath expression against the whole store, for
// example "$.user.name" or "$.orders[*].id". Counters are not changed.
//
// Query 对整个存储执行 JSONPath 表达式。不修改计数器。
func (s *Store) Query(expr string) (any, error) {
	s.mu.Lock()
	data := Plain(s.root)
	s.mu.Unlock()

	result, err := jsonpath.Get(expr, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrQueryFailed, expr, err)
	}
	return result, nil
}
