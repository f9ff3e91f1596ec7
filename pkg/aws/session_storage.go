package aws

import (
	"encoding/binary"
	"time"

	"github.com/gofiber/fiber/v2"
)

const deadlineSize = 8

// expiringStorage keeps a deadline in front of every value, for stores that
// ignore the expiration passed to Set. Expired entries read as missing and are removed.
type expiringStorage struct {
	fiber.Storage
	now func() time.Time
}

func newExpiringStorage(storage fiber.Storage) *expiringStorage {
	return &expiringStorage{
		Storage: storage,
		now:     time.Now,
	}
}

func (s *expiringStorage) Get(key string) ([]byte, error) {
	raw, err := s.Storage.Get(key)
	if err != nil || raw == nil {
		return nil, err
	}
	if len(raw) < deadlineSize {
		return nil, nil
	}

	deadline := int64(binary.BigEndian.Uint64(raw[:deadlineSize]))
	if deadline != 0 && s.now().UnixNano() >= deadline {
		_ = s.Storage.Delete(key)
		return nil, nil
	}
	return raw[deadlineSize:], nil
}

// Set stores val until exp has passed; zero exp never expires.
func (s *expiringStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	var deadline int64
	if exp > 0 {
		deadline = s.now().Add(exp).UnixNano()
	}

	raw := make([]byte, deadlineSize+len(val))
	binary.BigEndian.PutUint64(raw[:deadlineSize], uint64(deadline))
	copy(raw[deadlineSize:], val)
	return s.Storage.Set(key, raw, exp)
}
