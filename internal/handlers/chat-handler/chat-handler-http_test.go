package chat_handler

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Abedalrahmansd/SSociety-API/internal/entity"
	"github.com/Abedalrahmansd/SSociety-API/internal/handlers"
	"github.com/Abedalrahmansd/SSociety-API/internal/middleware"
	"github.com/Abedalrahmansd/SSociety-API/internal/utils"
	"github.com/Abedalrahmansd/SSociety-API/state"
)

type historyEnvelope struct {
	Message string `json:"message"`
	Data    struct {
		Messages []entity.Message `json:"messages"`
	} `json:"data"`
}

func newHistoryServer(t *testing.T) (*httptest.Server, *gorm.DB, *rsa.PrivateKey) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Message{}, &entity.Grade{}))
	require.NoError(t, db.Create(&entity.Grade{GradeName: "Grade 1", ChatGroupID: "g1"}).Error)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	appState := &state.AppState{DB: db}
	handler := NewChatHandler(appState)

	r := chi.NewRouter()
	r.With(middleware.JWTAuth(&key.PublicKey)).Get("/api/v1/messages", handlers.WrapHandler(handler.GetMessages))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, db, key
}

func bearerToken(t *testing.T, key *rsa.PrivateKey, userID int64) string {
	t.Helper()
	token, err := utils.IssueToken(userID, fmt.Sprintf("u%d@school.test", userID), time.Hour, key)
	require.NoError(t, err)
	return "Bearer " + token
}

func getHistory(t *testing.T, server *httptest.Server, auth, query string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/v1/messages"+query, nil)
	require.NoError(t, err)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestGetMessages_RequiresToken(t *testing.T) {
	server, _, _ := newHistoryServer(t)

	resp := getHistory(t, server, "", "?chat_group_id=g1")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetMessages_RejectsBadToken(t *testing.T) {
	server, _, _ := newHistoryServer(t)

	resp := getHistory(t, server, "Bearer garbage", "?chat_group_id=g1")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetMessages_ReturnsHistoryNewestFirst(t *testing.T) {
	server, db, key := newHistoryServer(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&entity.Message{
			ChatGroupID: "g1",
			Sender:      1,
			Msg:         fmt.Sprintf("m%d", i),
			SentAt:      base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	resp := getHistory(t, server, bearerToken(t, key, 1), "?chat_group_id=g1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body historyEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data.Messages, 3)
	assert.Equal(t, "m2", body.Data.Messages[0].Msg)
	assert.Equal(t, "m0", body.Data.Messages[2].Msg)
}

func TestGetMessages_HiddenRowsOmittedForCaller(t *testing.T) {
	server, db, key := newHistoryServer(t)
	require.NoError(t, db.Create(&entity.Message{
		ChatGroupID: "g1", Sender: 1, Msg: "public", SentAt: time.Now().UTC(),
	}).Error)
	require.NoError(t, db.Create(&entity.Message{
		ChatGroupID: "g1", Sender: 1, Msg: "hidden", HideFrom: entity.Int64List{2}, SentAt: time.Now().UTC(),
	}).Error)

	resp := getHistory(t, server, bearerToken(t, key, 2), "?chat_group_id=g1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body historyEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data.Messages, 1)
	assert.Equal(t, "public", body.Data.Messages[0].Msg)
}

func TestGetMessages_ValidatesQueryParams(t *testing.T) {
	server, _, key := newHistoryServer(t)
	auth := bearerToken(t, key, 1)

	tests := []struct {
		name  string
		query string
	}{
		{"missing chat_group_id", ""},
		{"bad limit", "?chat_group_id=g1&limit=abc"},
		{"bad before", "?chat_group_id=g1&before=yesterday"},
		{"unknown room", "?chat_group_id=nope"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := getHistory(t, server, auth, tc.query)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetMessages_BeforeCursor(t *testing.T) {
	server, db, key := newHistoryServer(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&entity.Message{ChatGroupID: "g1", Sender: 1, Msg: "old", SentAt: base}).Error)
	require.NoError(t, db.Create(&entity.Message{ChatGroupID: "g1", Sender: 1, Msg: "new", SentAt: base.Add(time.Hour)}).Error)

	cursor := base.Add(time.Minute).Format(time.RFC3339)
	resp := getHistory(t, server, bearerToken(t, key, 1), "?chat_group_id=g1&before="+cursor)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body historyEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data.Messages, 1)
	assert.Equal(t, "old", body.Data.Messages[0].Msg)
}
