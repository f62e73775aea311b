package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhrases_Empty(t *testing.T) {
	h := NewPhrasesHandler(nil)

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/Phrases", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPhrases_DailyRotation(t *testing.T) {
	phrases := []string{"one", "two", "three"}
	h := NewPhrasesHandler(phrases)

	get := func(day int) string {
		h.now = func() time.Time {
			return time.Date(2026, 8, day, 12, 0, 0, 0, time.UTC)
		}
		rec := httptest.NewRecorder()
		h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/Phrases", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body["phrase"]
	}

	assert.Equal(t, "one", get(1))
	assert.Equal(t, "two", get(2))
	assert.Equal(t, "three", get(3))
	// Wraps modulo the list length.
	assert.Equal(t, "one", get(4))

	// Same day, same phrase.
	assert.Equal(t, get(15), get(15))
}
