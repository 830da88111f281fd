package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill_roadmap_backend/internal/config"
	"skill_roadmap_backend/internal/util"
)

func TestChatRequiresAPIKey(t *testing.T) {
	svc := NewAIService(config.AIConfig{Model: "gemini-2.5-flash"})

	assert.False(t, svc.Configured())
	_, err := svc.Chat("hello", "", nil)
	assert.ErrorIs(t, err, util.ErrAINotConfigured)
}

func TestChatParsesCompletion(t *testing.T) {
	var gotReq ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "two roadmaps fit"}},
			},
		})
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
	})

	reply, err := svc.Chat("recommend roadmaps", "be terse", []AIChatMessage{
		{Role: "user", Content: "earlier question"},
	})
	require.NoError(t, err)
	assert.Equal(t, "two roadmaps fit", reply)

	// system + history + 当前消息的顺序
	require.Len(t, gotReq.Messages, 3)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "earlier question", gotReq.Messages[1].Content)
	assert.Equal(t, "recommend roadmaps", gotReq.Messages[2].Content)
	assert.Equal(t, "gemini-2.5-flash", gotReq.Model)
}

func TestChatSurfacesAPIErrors(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
		errPart string
	}{
		{
			name: "非200状态",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
			},
			errPart: "status 429",
		},
		{
			name: "空choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[]}`)
			},
			errPart: "no choices",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			svc := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})
			_, err := svc.Chat("hi", "", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func TestChatStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	stream, errChan := svc.ChatStream("hi", "", nil)
	var chunks []string
	for chunk := range stream {
		chunks = append(chunks, chunk)
	}
	require.NoError(t, <-errChan)
	assert.Equal(t, []string{"Hel", "lo"}, chunks)
}

func TestChatStreamWithoutKey(t *testing.T) {
	svc := NewAIService(config.AIConfig{Model: "m"})

	stream, errChan := svc.ChatStream("hi", "", nil)
	for range stream {
	}
	assert.ErrorIs(t, <-errChan, util.ErrAINotConfigured)
}
