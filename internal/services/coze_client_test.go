package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/config"
	"github.com/yungbote/flowfactory-backend/internal/logger"
)

func cozeTestClient(t *testing.T, baseURL string, stream bool, maxPolls int) GenerationClient {
	t.Helper()
	client, err := NewCozeGenerationClient(&config.Config{
		CozeAPIKey:          "key",
		CozeBotID:           "bot",
		CozeBaseURL:         baseURL,
		CozeStream:          stream,
		CozePollIntervalMS:  1,
		CozeMaxPollAttempts: maxPolls,
	}, logger.NewNop())
	require.NoError(t, err)
	return client
}

func TestCozePollHappyPath(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/chat":
			require.Equal(t, "Bearer key", r.Header.Get("Authorization"))
			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			require.Equal(t, false, payload["stream"])
			json.NewEncoder(w).Encode(map[string]interface{}{
				"code": 0,
				"data": map[string]string{"id": "chat1", "conversation_id": "conv1", "status": "in_progress"},
			})
		case "/v3/chat/retrieve":
			status := "in_progress"
			if polls.Add(1) >= 2 {
				status = "completed"
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"code": 0,
				"data": map[string]string{"id": "chat1", "conversation_id": "conv1", "status": status},
			})
		case "/v3/chat/message/list":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"code": 0,
				"data": []map[string]string{
					{"role": "assistant", "type": "verbose", "content": "meta"},
					{"role": "assistant", "type": "answer", "content": "最终回答"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	out, err := cozeTestClient(t, srv.URL, false, 60).Generate(context.Background(), GenerateRequest{
		System: "系统", User: "用户",
	})
	require.NoError(t, err)
	require.Equal(t, "最终回答", out)
}

func TestCozePollTimesOutOnStuckChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Never leaves in_progress.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 0,
			"data": map[string]string{"id": "chat1", "conversation_id": "conv1", "status": "in_progress"},
		})
	}))
	defer srv.Close()

	_, err := cozeTestClient(t, srv.URL, false, 3).Generate(context.Background(), GenerateRequest{User: "用户"})
	require.Error(t, err)
	require.Equal(t, "generation_failed", apierr.From(err).Code)
}

func TestCozePollSurfacesFailedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := "in_progress"
		if r.URL.Path == "/v3/chat/retrieve" {
			status = "failed"
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 0,
			"data": map[string]string{"id": "chat1", "conversation_id": "conv1", "status": status},
		})
	}))
	defer srv.Close()

	_, err := cozeTestClient(t, srv.URL, false, 10).Generate(context.Background(), GenerateRequest{User: "用户"})
	require.Error(t, err)
	require.Equal(t, "generation_failed", apierr.From(err).Code)
}

func TestCozeStreamCapturesAnswerFrame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, true, payload["stream"])

		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("event: conversation.message.delta\n"))
		w.Write([]byte(`data: {"role":"assistant","type":"answer","content":"部分"}` + "\n\n"))
		w.Write([]byte("event: conversation.message.completed\n"))
		w.Write([]byte(`data: {"role":"assistant","type":"verbose","content":"meta"}` + "\n\n"))
		w.Write([]byte("event: conversation.message.completed\n"))
		w.Write([]byte(`data: {"role":"assistant","type":"answer","content":"完整回答"}` + "\n\n"))
		w.Write([]byte("event: conversation.chat.completed\n"))
		w.Write([]byte("data: {}\n\n"))
	}))
	defer srv.Close()

	out, err := cozeTestClient(t, srv.URL, true, 60).Generate(context.Background(), GenerateRequest{User: "用户"})
	require.NoError(t, err)
	require.Equal(t, "完整回答", out)
}

func TestCozeStreamSurfacesFailureEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("event: conversation.chat.failed\n"))
		w.Write([]byte(`data: {"msg":"bot error"}` + "\n\n"))
	}))
	defer srv.Close()

	_, err := cozeTestClient(t, srv.URL, true, 60).Generate(context.Background(), GenerateRequest{User: "用户"})
	require.Error(t, err)
	require.Equal(t, "generation_failed", apierr.From(err).Code)
}
