package redis

import "fmt"

// valueKey returns the Redis key for a stored value
func (s *Storage) valueKey(key string) string {
	return fmt.Sprintf("%s:kv:%s", s.cfg.KeyPrefix, key)
}
