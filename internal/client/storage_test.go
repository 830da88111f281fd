package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill_roadmap_backend/internal/model"
	"skill_roadmap_backend/pkg/localstore"
)

func newTestLocal(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.Open(filepath.Join(t.TempDir(), "local.json"))
	require.NoError(t, err)
	return s
}

// unreachableClient 指向无人监听的端口，模拟后端不可用
func unreachableClient() *Client {
	return NewClient("http://127.0.0.1:1/api")
}

func newBackendStub(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()

	var messages []model.ChatMessage
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		var user model.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		user.ID = 7
		json.NewEncoder(w).Encode(user)
	})
	mux.HandleFunc("/api/chat-messages", func(w http.ResponseWriter, r *http.Request) {
		var msg model.ChatMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		msg.ID = uint(len(messages) + 1)
		messages = append(messages, msg)
		json.NewEncoder(w).Encode(msg)
	})
	mux.HandleFunc("/api/chat-messages/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(messages)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL + "/api")
}

func TestSaveProfileEstablishesSession(t *testing.T) {
	_, remote := newBackendStub(t)
	local := newTestLocal(t)
	store := NewStore(local, remote)

	profile := &model.UserProfile{Name: "Asha", Status: model.StatusStudent}
	require.NoError(t, store.SaveProfile(context.Background(), profile))

	assert.Equal(t, uint(7), store.UserID())
	id, ok := local.GetItem("skillroadmap_user_id")
	assert.True(t, ok)
	assert.Equal(t, "7", id)
	assert.Equal(t, "Asha", store.Profile().Name)
}

func TestSaveProfileFallsBackToLocalOnly(t *testing.T) {
	local := newTestLocal(t)
	store := NewStore(local, unreachableClient())

	profile := &model.UserProfile{Name: "Asha", Status: model.StatusStudent}
	require.NoError(t, store.SaveProfile(context.Background(), profile))

	// 远端失败不报错，会话停留在纯本地模式
	assert.Equal(t, uint(0), store.UserID())
	assert.Equal(t, "Asha", store.Profile().Name)
	_, ok := local.GetItem("skillroadmap_user_id")
	assert.False(t, ok)
}

func TestProfileBackwardCompatibleBackground(t *testing.T) {
	local := newTestLocal(t)
	// 老版本的本地数据没有background字段
	require.NoError(t, local.SetItem("skillroadmap_user_profile", `{"name":"Ravi","status":"Student"}`))

	store := NewStore(local, unreachableClient())
	profile := store.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, model.BackgroundCS, profile.Background)
}

func TestChatHistoryRemoteThenLocalFallback(t *testing.T) {
	t.Run("有会话用户时走远端", func(t *testing.T) {
		_, remote := newBackendStub(t)
		store := NewStore(newTestLocal(t), remote)
		require.NoError(t, store.SaveProfile(context.Background(), &model.UserProfile{Name: "Asha"}))

		require.NoError(t, store.AddChatMessage(context.Background(), "user", "hello"))
		history := store.ChatHistory(context.Background())
		require.Len(t, history, 1)
		assert.Equal(t, "hello", history[0].Content)
	})

	t.Run("远端失败回退本地", func(t *testing.T) {
		local := newTestLocal(t)
		// 上一会话留下的用户ID，但后端已不可达
		require.NoError(t, local.SetItem("skillroadmap_user_id", "7"))
		store := NewStore(local, unreachableClient())
		require.Equal(t, uint(7), store.UserID())

		require.NoError(t, store.AddChatMessage(context.Background(), "user", "offline note"))
		history := store.ChatHistory(context.Background())
		require.Len(t, history, 1)
		assert.Equal(t, "offline note", history[0].Content)
	})

	t.Run("无会话用户时纯本地", func(t *testing.T) {
		store := NewStore(newTestLocal(t), unreachableClient())
		assert.Empty(t, store.ChatHistory(context.Background()))

		require.NoError(t, store.AddChatMessage(context.Background(), "assistant", "hi"))
		history := store.ChatHistory(context.Background())
		require.Len(t, history, 1)
		assert.Equal(t, "assistant", history[0].Role)
	})
}

func TestRoadmapLocalRoundTrip(t *testing.T) {
	store := NewStore(newTestLocal(t), unreachableClient())

	assert.Nil(t, store.Roadmap(context.Background()))

	roadmap := &model.PersonalizedRoadmap{
		Role:       "Web Frontend Developer",
		TotalWeeks: 4,
		Weeks:      []model.RoadmapWeek{{WeekNumber: 1}},
	}
	require.NoError(t, store.SaveRoadmap(context.Background(), roadmap))

	loaded := store.Roadmap(context.Background())
	require.NotNil(t, loaded)
	assert.Equal(t, "Web Frontend Developer", loaded.Role)
	assert.Equal(t, 4, loaded.TotalWeeks)
}

func TestRecommendationsRoundTrip(t *testing.T) {
	store := NewStore(newTestLocal(t), unreachableClient())

	assert.Nil(t, store.Recommendations())

	recs := []model.CareerRecommendation{
		{Name: "Data Analyst", Justification: "analytical profile"},
	}
	require.NoError(t, store.SaveRecommendations(recs))
	assert.Equal(t, recs, store.Recommendations())
}

func TestFirstVisit(t *testing.T) {
	store := NewStore(newTestLocal(t), unreachableClient())

	assert.True(t, store.IsFirstVisit())
	require.NoError(t, store.SetVisited())
	assert.False(t, store.IsFirstVisit())
}

func TestClearAll(t *testing.T) {
	local := newTestLocal(t)
	store := NewStore(local, unreachableClient())

	require.NoError(t, store.SaveProfile(context.Background(), &model.UserProfile{Name: "Asha"}))
	require.NoError(t, store.SetVisited())
	require.NoError(t, store.SetItem("roadmap-progress", `{"web-frontend":{"1":true}}`))

	store.ClearAll()

	assert.Nil(t, store.Profile())
	assert.Equal(t, uint(0), store.UserID())
	assert.True(t, store.IsFirstVisit())
	_, ok, _ := store.Item("roadmap-progress")
	assert.False(t, ok)
	assert.Empty(t, local.Keys())

	// 幂等
	store.ClearAll()
}

func TestProgressPersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()
	open := func() *Store {
		s, err := localstore.Open(filepath.Join(dir, "local.json"))
		require.NoError(t, err)
		return NewStore(s, unreachableClient())
	}

	first := open()
	require.NoError(t, first.Progress().ToggleWeekCompletion("web-frontend", 1))
	require.NoError(t, first.Progress().ToggleWeekCompletion("web-frontend", 2))

	second := open()
	assert.True(t, second.Progress().IsWeekCompleted("web-frontend", 1))
	assert.Equal(t, 50, second.Progress().CompletionPercentage("web-frontend", 4))

	second.ClearAll()
	assert.False(t, second.Progress().IsWeekCompleted("web-frontend", 1))
}

func TestNextStep(t *testing.T) {
	t.Run("无资料先引导建档", func(t *testing.T) {
		store := NewStore(newTestLocal(t), unreachableClient())
		assert.Equal(t, StepOnboarding, store.NextStep())
	})

	t.Run("有资料无问卷先做问卷", func(t *testing.T) {
		store := NewStore(newTestLocal(t), unreachableClient())
		require.NoError(t, store.SaveProfile(context.Background(), &model.UserProfile{Name: "Asha"}))
		assert.Equal(t, StepSurvey, store.NextStep())
	})

	t.Run("问卷完成后看推荐", func(t *testing.T) {
		store := NewStore(newTestLocal(t), unreachableClient())
		profile := &model.UserProfile{
			Name:       "Asha",
			SurveyData: &model.SurveyData{EducationLevel: "Undergraduate"},
		}
		require.NoError(t, store.SaveProfile(context.Background(), profile))
		assert.Equal(t, StepRecommendations, store.NextStep())
	})
}
