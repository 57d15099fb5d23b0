// internal/domain/wave/service_test.go
package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaveListRequestNormalize(t *testing.T) {
	req := &WaveListRequest{Page: 0, Limit: 0}
	req.normalize()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	req = &WaveListRequest{Page: -2, Limit: -5}
	req.normalize()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	req = &WaveListRequest{Page: 3, Limit: 50}
	req.normalize()
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 50, req.Limit)
}
