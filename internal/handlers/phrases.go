package handlers

import (
	"net/http"
	"time"
)

// PhrasesHandler returns the motivational phrase of the day. The phrase
// rotates with the day of month, wrapping over the configured list.
type PhrasesHandler struct {
	phrases []string
	now     func() time.Time
}

func NewPhrasesHandler(phrases []string) *PhrasesHandler {
	return &PhrasesHandler{phrases: phrases, now: time.Now}
}

func (h *PhrasesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if len(h.phrases) == 0 {
		writeMessage(w, http.StatusInternalServerError, "No phrases configured")
		return
	}

	index := (h.now().Day() - 1) % len(h.phrases)
	writeJSON(w, http.StatusOK, map[string]string{"phrase": h.phrases[index]})
}
