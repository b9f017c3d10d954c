package redisx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdemKey(t *testing.T) {
	assert.Equal(t, "idem:http:u-1:POST:/api/stock/adjust:abc", IdemKey("u-1:POST:/api/stock/adjust:abc"))
}
