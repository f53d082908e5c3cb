package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisStoreNamespacesKeys(t *testing.T) {
	s := NewRedisStore(nil)

	assert.Equal(t, "khana:cart", s.key(KeyCart))
	assert.Equal(t, "khana:token", s.key(KeyToken))
	assert.Equal(t, "khana:user", s.key(KeyUser))
	assert.Equal(t, "khana:orders", s.key(KeyOrders))
}
