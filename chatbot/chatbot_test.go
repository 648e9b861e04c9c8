package chatbot

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecommendRejectsEmptyMessage(t *testing.T) {
	handler := Recommend(&Engine{Fallback: KeywordStrategy{}})

	for _, body := range []string{"", "{}", `{"message":""}`, "not json"} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat/recommend", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler(rec, req, nil)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want %d", body, rec.Code, http.StatusBadRequest)
		}
	}
}
