package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbalien/textrank/keywords"
)

func newTestServer(logs io.Writer) *Server {
	if logs == nil {
		logs = io.Discard
	}
	return New(keywords.New(), 10, slog.New(slog.NewTextHandler(logs, nil)))
}

type response struct {
	Message  string `json:"message"`
	Keywords []struct {
		Surface string   `json:"surface"`
		Score   *float64 `json:"score"`
	} `json:"keywords"`
}

func post(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/keywords", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestKeywordsFromTokens(t *testing.T) {
	s := newTestServer(nil)
	rec, resp := post(t, s, `{"tokens":[
		{"surface":"나무","tag":"NNG"},
		{"surface":"심","tag":"VV"},
		{"surface":"꽃","tag":"NNG"}
	],"top":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Keywords, 2)
	assert.Equal(t, "심", resp.Keywords[0].Surface)
	require.NotNil(t, resp.Keywords[0].Score)
	assert.Equal(t, 1.0, *resp.Keywords[0].Score)
	assert.Equal(t, "나무", resp.Keywords[1].Surface)
}

func TestKeywordsFromText(t *testing.T) {
	s := newTestServer(nil)
	rec, resp := post(t, s, `{"text":"나무/NNG 를/JKO 심/VV+고/EC 꽃/NNG 있/VV"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Keywords, 3)
	for _, kw := range resp.Keywords {
		assert.NotEqual(t, "있", kw.Surface)
	}
}

func TestKeywordsDefaultTop(t *testing.T) {
	s := New(keywords.New(), 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec, resp := post(t, s, `{"text":"나무/NNG 심/VV 꽃/NNG"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Keywords, 1)
}

func TestKeywordsEmptyResult(t *testing.T) {
	s := newTestServer(nil)

	rec, resp := post(t, s, `{"text":"나무/NNG"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, resp.Keywords)
	assert.Empty(t, resp.Keywords)

	for _, top := range []string{"0", "-1"} {
		rec, resp = post(t, s, `{"text":"나무/NNG 꽃/NNG","top":`+top+`}`)
		require.Equal(t, http.StatusOK, rec.Code, "top %s", top)
		assert.NotNil(t, resp.Keywords, "top %s", top)
		assert.Empty(t, resp.Keywords, "top %s", top)
	}
}

func TestKeywordsNonFiniteScore(t *testing.T) {
	// Requests cannot produce a zero-weight graph, so go through the encoder.
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	nan := 0.0
	nan /= nan
	require.NoError(t, c.JSON(http.StatusOK, keywordsResponse{
		Keywords: []keywords.Keyword{{Surface: "나무", Score: nan}},
	}))
	assert.JSONEq(t, `{"keywords":[{"surface":"나무","score":null}]}`, rec.Body.String())
}

func TestKeywordsBadRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed json", `{"tokens":`, "Invalid request body"},
		{"neither tokens nor text", `{}`, "Either tokens or text is required"},
		{"both tokens and text", `{"text":"나무/NNG","tokens":[{"surface":"꽃","tag":"NNG"}]}`, "not both"},
		{"token without tag", `{"tokens":[{"surface":"꽃"}]}`, "Invalid request body"},
		{"malformed tagged text", `{"text":"나무/NNG 꽃"}`, "Invalid tagged text"},
	}

	s := newTestServer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := post(t, s, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, resp.Message, tt.wantMsg)
		})
	}
}

func TestRequestLogging(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(&logs)
	post(t, s, `{"text":"나무/NNG 꽃/NNG"}`)

	out := logs.String()
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "uri=/v1/keywords")
	assert.Contains(t, out, "status=200")
}

func TestRunShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s := newTestServer(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
