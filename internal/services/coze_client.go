package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/config"
	"github.com/yungbote/flowfactory-backend/internal/logger"
)

// cozeGenerationClient talks to a Coze bot. The bot API is asynchronous: a
// chat is created, then either polled until it reaches a terminal status or
// consumed as an SSE stream, and finally the assistant answer is fetched.
type cozeGenerationClient struct {
	log             *logger.Logger
	httpClient      *http.Client
	baseURL         string
	apiKey          string
	botID           string
	stream          bool
	pollInterval    time.Duration
	maxPollAttempts int
}

func NewCozeGenerationClient(cfg *config.Config, log *logger.Logger) (GenerationClient, error) {
	if cfg.CozeAPIKey == "" || cfg.CozeBotID == "" {
		return nil, fmt.Errorf("COZE_API_KEY and COZE_BOT_ID are required")
	}
	return &cozeGenerationClient{
		log:             log.With("service", "CozeGenerationClient"),
		httpClient:      &http.Client{Timeout: 120 * time.Second},
		baseURL:         strings.TrimRight(cfg.CozeBaseURL, "/"),
		apiKey:          cfg.CozeAPIKey,
		botID:           cfg.CozeBotID,
		stream:          cfg.CozeStream,
		pollInterval:    time.Duration(cfg.CozePollIntervalMS) * time.Millisecond,
		maxPollAttempts: cfg.CozeMaxPollAttempts,
	}, nil
}

type cozeChatData struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	Status         string `json:"status"`
	LastError      *struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	} `json:"last_error,omitempty"`
}

type cozeChatResponse struct {
	Code int           `json:"code"`
	Msg  string        `json:"msg"`
	Data *cozeChatData `json:"data"`
}

type cozeMessage struct {
	Role    string `json:"role"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type cozeMessageListResponse struct {
	Code int           `json:"code"`
	Msg  string        `json:"msg"`
	Data []cozeMessage `json:"data"`
}

func (c *cozeGenerationClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	// The bot holds its own persona; system and user text travel as one
	// message. JSON strictness is enforced by the prompt itself.
	prompt := req.User
	if req.System != "" {
		prompt = req.System + "\n\n" + req.User
	}
	if c.stream {
		return c.generateStream(ctx, prompt)
	}
	return c.generatePoll(ctx, prompt)
}

func (c *cozeGenerationClient) generatePoll(ctx context.Context, prompt string) (string, error) {
	created, err := c.createChat(ctx, prompt, false)
	if err != nil {
		return "", apierr.GenerationFailed(err)
	}

	status := created.Status
	attempts := 0
	for status != "completed" && status != "failed" && attempts < c.maxPollAttempts {
		select {
		case <-ctx.Done():
			return "", apierr.GenerationFailed(ctx.Err())
		case <-time.After(c.pollInterval):
		}
		current, err := c.retrieveChat(ctx, created.ConversationID, created.ID)
		if err != nil {
			return "", apierr.GenerationFailed(err)
		}
		status = current.Status
		attempts++
	}

	if status == "failed" {
		return "", apierr.GenerationFailed(errors.New("coze chat failed"))
	}
	if status != "completed" {
		return "", apierr.GenerationFailed(fmt.Errorf("coze chat not completed after %d polls", attempts))
	}

	answer, err := c.fetchAnswer(ctx, created.ConversationID, created.ID)
	if err != nil {
		return "", apierr.GenerationFailed(err)
	}
	return answer, nil
}

// generateStream consumes the chat as an SSE stream, keeping the last
// completed assistant answer frame.
func (c *cozeGenerationClient) generateStream(ctx context.Context, prompt string) (string, error) {
	body := c.chatRequestBody(prompt, true)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/chat", bytes.NewReader(body))
	if err != nil {
		return "", apierr.GenerationFailed(err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", apierr.GenerationFailed(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apierr.GenerationFailed(fmt.Errorf("coze chat stream: http %d", resp.StatusCode))
	}

	var answer string
	err = scanSSE(resp.Body, func(event, data string) error {
		switch event {
		case "conversation.message.completed":
			var msg cozeMessage
			if err := json.Unmarshal([]byte(data), &msg); err != nil {
				return nil // tolerate frames we don't understand
			}
			if msg.Role == "assistant" && msg.Type == "answer" {
				answer = msg.Content
			}
		case "conversation.chat.failed", "error":
			return fmt.Errorf("coze chat failed: %s", data)
		}
		return nil
	})
	if err != nil {
		return "", apierr.GenerationFailed(err)
	}
	if answer == "" {
		return "", apierr.GenerationFailed(errors.New("no assistant response found in stream"))
	}
	return answer, nil
}

func (c *cozeGenerationClient) chatRequestBody(prompt string, stream bool) []byte {
	payload := map[string]interface{}{
		"bot_id":            c.botID,
		"user_id":           "flowfactory",
		"stream":            stream,
		"auto_save_history": true,
		"additional_messages": []map[string]string{
			{"role": "user", "content": prompt, "content_type": "text"},
		},
	}
	body, _ := json.Marshal(payload)
	return body
}

func (c *cozeGenerationClient) createChat(ctx context.Context, prompt string, stream bool) (*cozeChatData, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/chat", bytes.NewReader(c.chatRequestBody(prompt, stream)))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	var parsed cozeChatResponse
	if err := c.doJSON(httpReq, &parsed); err != nil {
		return nil, err
	}
	if parsed.Code != 0 || parsed.Data == nil {
		return nil, fmt.Errorf("coze chat failed: %s", parsed.Msg)
	}
	return parsed.Data, nil
}

func (c *cozeGenerationClient) retrieveChat(ctx context.Context, conversationID, chatID string) (*cozeChatData, error) {
	endpoint := fmt.Sprintf("%s/v3/chat/retrieve?conversation_id=%s&chat_id=%s",
		c.baseURL, url.QueryEscape(conversationID), url.QueryEscape(chatID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	var parsed cozeChatResponse
	if err := c.doJSON(httpReq, &parsed); err != nil {
		return nil, err
	}
	if parsed.Data == nil {
		return nil, fmt.Errorf("coze chat retrieve: %s", parsed.Msg)
	}
	return parsed.Data, nil
}

func (c *cozeGenerationClient) fetchAnswer(ctx context.Context, conversationID, chatID string) (string, error) {
	endpoint := fmt.Sprintf("%s/v3/chat/message/list?conversation_id=%s&chat_id=%s",
		c.baseURL, url.QueryEscape(conversationID), url.QueryEscape(chatID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	var parsed cozeMessageListResponse
	if err := c.doJSON(httpReq, &parsed); err != nil {
		return "", err
	}
	if parsed.Code != 0 {
		return "", fmt.Errorf("coze message list: %s", parsed.Msg)
	}
	for _, msg := range parsed.Data {
		if msg.Role == "assistant" && msg.Type == "answer" {
			return msg.Content, nil
		}
	}
	return "", errors.New("no assistant response found")
}

func (c *cozeGenerationClient) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("coze api: http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// scanSSE reads server-sent events, invoking onEvent once per complete frame.
func scanSSE(r io.Reader, onEvent func(event, data string) error) error {
	br := bufio.NewReader(r)
	var (
		eventName string
		dataLines []string
	)

	flush := func() error {
		if len(dataLines) == 0 {
			eventName = ""
			return nil
		}
		data := strings.Join(dataLines, "\n")
		ev := eventName
		dataLines = nil
		eventName = ""
		return onEvent(ev, data)
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return flush()
			}
			return err
		}
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		if strings.HasPrefix(line, "event:") {
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			continue
		}
		if strings.HasPrefix(line, "data:") {
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
}
