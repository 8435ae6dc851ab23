package respond

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, 201, map[string]string{"message": "ok"})

	require.Equal(t, 201, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok"}`, rr.Body.String())
}

func TestErrorEnvelopeShape(t *testing.T) {
	cases := []struct {
		name  string
		write func(rr *httptest.ResponseRecorder)
		code  int
	}{
		{"bad request", func(rr *httptest.ResponseRecorder) { WriteBadRequest(rr, "Missing field: user_ip") }, 400},
		{"not found", func(rr *httptest.ResponseRecorder) { WriteNotFound(rr, "Missing field: user_ip") }, 404},
		{"internal", func(rr *httptest.ResponseRecorder) { WriteInternalError(rr, "Missing field: user_ip") }, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tc.write(rr)
			require.Equal(t, tc.code, rr.Code)
			assert.JSONEq(t, `{"error":"Missing field: user_ip"}`, rr.Body.String())
		})
	}
}
