package education

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verdictServer(t *testing.T, replyText string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))

		var req map[string]any
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		assert.NotEmpty(t, req["model"])
		assert.NotEmpty(t, req["messages"])

		w.WriteHeader(status)
		resp := map[string]any{
			"content": []map[string]string{{"type": "text", "text": replyText}},
		}
		if status != http.StatusOK {
			resp = map[string]any{"error": map[string]string{"message": "boom"}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testRemoteGrader(url string) *RemoteGrader {
	logger := log.New(io.Discard)
	return NewRemoteGrader(RemoteGraderOptions{
		APIKey: "test-key",
		APIURL: url,
		Logger: logger,
	})
}

func TestRemoteGraderGrade(t *testing.T) {
	reply := `Here is my evaluation:
{"is_correct": true, "feedback": "Spot on.", "reasoning": "2.0:1 matches the pot."}`
	srv := verdictServer(t, reply, http.StatusOK)
	defer srv.Close()

	g := testRemoteGrader(srv.URL)
	v, err := g.Grade(context.Background(), PotOddsQuestion("Flop", 100, 50), "2:1")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, "Spot on.", v.Feedback)
	assert.NotEmpty(t, v.Reasoning)
}

func TestRemoteGraderFallsBackOnServerError(t *testing.T) {
	srv := verdictServer(t, "", http.StatusInternalServerError)
	defer srv.Close()

	g := testRemoteGrader(srv.URL)
	v, err := g.Grade(context.Background(), PotOddsQuestion("Flop", 100, 50), "2:1")
	require.NoError(t, err, "grading degrades, it never fails")
	assert.True(t, v.Correct, "numeric fallback still grades the answer")
	assert.Contains(t, v.Feedback, "graded numerically")
}

func TestRemoteGraderFallsBackOnTimeout(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect and
		// cancels the request context; otherwise srv.Close deadlocks.
		_, _ = io.ReadAll(r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	mockClock := quartz.NewMock(t)
	g := NewRemoteGrader(RemoteGraderOptions{
		APIKey:  "test-key",
		APIURL:  srv.URL,
		Timeout: 15 * time.Second,
		Clock:   mockClock,
		Logger:  log.New(io.Discard),
	})

	ctx := context.Background()
	done := make(chan Verdict, 1)
	go func() {
		v, err := g.Grade(ctx, PotOddsQuestion("Flop", 100, 50), "2:1")
		assert.NoError(t, err)
		done <- v
	}()

	// The timeout timer is armed before the request is sent, so once the
	// server has the request it is safe to advance past the deadline.
	<-started
	mockClock.Advance(15 * time.Second).MustWait(ctx)

	v := <-done
	assert.True(t, v.Correct, "numeric fallback still grades the answer")
	assert.Contains(t, v.Feedback, "graded numerically")
}

func TestRemoteGraderFallsBackWhenUnreachable(t *testing.T) {
	g := testRemoteGrader("http://127.0.0.1:1/unreachable")

	v, err := g.Grade(context.Background(), PotOddsQuestion("Flop", 100, 50), "9:1")
	require.NoError(t, err)
	assert.False(t, v.Correct)
}

func TestRemoteGraderChat(t *testing.T) {
	srv := verdictServer(t, "Aces are strong.", http.StatusOK)
	defer srv.Close()

	g := testRemoteGrader(srv.URL)
	reply, err := g.Chat(context.Background(), PotOddsQuestion("Flop", 100, 50),
		[]ChatTurn{{Role: "user", Content: "are aces good?"}})
	require.NoError(t, err)
	assert.Equal(t, "Aces are strong.", reply)
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		ok      bool
		correct bool
	}{
		{
			name:    "bare json",
			text:    `{"is_correct": true, "feedback": "yes", "reasoning": "r"}`,
			ok:      true,
			correct: true,
		},
		{
			name:    "fenced json",
			text:    fmt.Sprintf("```json\n%s\n```", `{"is_correct": false, "feedback": "no", "reasoning": "r"}`),
			ok:      true,
			correct: false,
		},
		{
			name: "json with prose around it",
			text: `Let me think. {"is_correct": true, "feedback": "ok", "reasoning": "r"} Hope that helps!`,
			ok:   true, correct: true,
		},
		{name: "no json at all", text: "I cannot answer that.", ok: false},
		{name: "broken json", text: `{"is_correct": tru`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := parseVerdict(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.correct, v.Correct)
			}
		})
	}
}
