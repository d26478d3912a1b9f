package revizto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse(t *testing.T) {
	var r Response
	require.NoError(t, json.Unmarshal([]byte(`{
		"result": 0,
		"message": "ok",
		"data": {"uuid": "abc", "title": "Tower A", "id": 7, "archived": false}
	}`), &r))

	code, ok := r.Result()
	assert.True(t, ok)
	assert.Equal(t, 0, code)
	assert.Equal(t, "ok", r.Message())

	var project struct {
		UUID     string `json:"uuid"`
		Title    string `json:"title"`
		ID       int    `json:"id"`
		Archived bool   `json:"archived"`
	}
	require.NoError(t, r.Decode(&project))
	assert.Equal(t, "abc", project.UUID)
	assert.Equal(t, "Tower A", project.Title)
	assert.Equal(t, 7, project.ID)

	t.Run("vendor error code is reported, not interpreted", func(t *testing.T) {
		r := Response{"result": float64(-206), "message": "token expired"}
		code, ok := r.Result()
		assert.True(t, ok)
		assert.Equal(t, -206, code)
		assert.Nil(t, r.Data())
	})

	t.Run("no envelope", func(t *testing.T) {
		r := Response{"id": float64(1)}
		_, ok := r.Result()
		assert.False(t, ok)
		assert.Empty(t, r.Message())
	})
}
