package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/ledtween/stream"
)

type fixedStatus stream.Status

func (f fixedStatus) Status() stream.Status { return stream.Status(f) }

func TestStatus(t *testing.T) {
	a := NewApi(fixedStatus{Scene: "embers", Frames: 42, ActiveTweens: 2})

	t.Run("get", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got stream.Status
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "embers", got.Scene)
		assert.Equal(t, int64(42), got.Frames)
		assert.Equal(t, 2, got.ActiveTweens)
	})

	t.Run("post", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
