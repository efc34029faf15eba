package chat_service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Abedalrahmansd/SSociety-API/internal/dtos/chat_dto"
	"github.com/Abedalrahmansd/SSociety-API/internal/entity"
	"github.com/Abedalrahmansd/SSociety-API/state"
)

func newTestService(t *testing.T) (ChatServiceContract, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Message{}, &entity.Grade{}))
	require.NoError(t, db.Create(&entity.Grade{GradeName: "Grade 1", ChatGroupID: "g1"}).Error)
	return NewChatService(&state.AppState{DB: db}), db
}

func seedMessage(t *testing.T, db *gorm.DB, msg *entity.Message) *entity.Message {
	t.Helper()
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}
	require.NoError(t, db.Create(msg).Error)
	return msg
}

func TestChatService_SendMessageDefaultsSenderName(t *testing.T) {
	svc, _ := newTestService(t)

	msg, appErr := svc.SendMessage(context.Background(), chat_dto.SendMessageRequest{
		ChatGroupID: "g1",
		Msg:         "hi",
	}, 7, "teacher@school.test")
	require.Nil(t, appErr)
	assert.Equal(t, "teacher@school.test", msg.SenderName)
	assert.Equal(t, int64(7), msg.Sender)
	assert.NotZero(t, msg.ID)
}

func TestChatService_SendMessageKeepsExplicitSenderName(t *testing.T) {
	svc, _ := newTestService(t)

	msg, appErr := svc.SendMessage(context.Background(), chat_dto.SendMessageRequest{
		ChatGroupID: "g1",
		Msg:         "hi",
		SenderName:  "Ms. Alzahra",
	}, 7, "teacher@school.test")
	require.Nil(t, appErr)
	assert.Equal(t, "Ms. Alzahra", msg.SenderName)
}

func TestChatService_SendMessageUnknownRoom(t *testing.T) {
	svc, _ := newTestService(t)

	_, appErr := svc.SendMessage(context.Background(), chat_dto.SendMessageRequest{
		ChatGroupID: "nope",
		Msg:         "hi",
	}, 7, "teacher@school.test")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Invalid chat group.", appErr.Message)
}

func TestChatService_EditMessageNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, appErr := svc.EditMessage(context.Background(), chat_dto.EditMessageRequest{ID: 999, Msg: "x"}, 1)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestChatService_DeleteMessageNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, appErr := svc.DeleteMessage(context.Background(), chat_dto.DeleteMessageRequest{ID: 999}, 1)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestChatService_MarkReadSkipsForeignIDs(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	inRoom := seedMessage(t, db, &entity.Message{ChatGroupID: "g1", Sender: 1, Msg: "a"})
	elsewhere := seedMessage(t, db, &entity.Message{ChatGroupID: "g2", Sender: 1, Msg: "b"})

	appErr := svc.MarkMessagesRead(ctx, chat_dto.MarkReadRequest{
		IDs:         []int64{inRoom.ID, elsewhere.ID, 424242},
		ChatGroupID: "g1",
	}, 9)
	require.Nil(t, appErr)

	var got entity.Message
	require.NoError(t, db.First(&got, inRoom.ID).Error)
	assert.Equal(t, entity.Int64List{9}, got.ReadList)

	got = entity.Message{}
	require.NoError(t, db.First(&got, elsewhere.ID).Error)
	assert.Empty(t, got.ReadList, "messages outside the room are untouched")
}

func TestChatService_HideMessageIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	msg := seedMessage(t, db, &entity.Message{ChatGroupID: "g1", Sender: 1, Msg: "a"})

	_, appErr := svc.HideMessage(ctx, chat_dto.HideMessageRequest{ID: msg.ID}, 4)
	require.Nil(t, appErr)
	_, appErr = svc.HideMessage(ctx, chat_dto.HideMessageRequest{ID: msg.ID}, 4)
	require.Nil(t, appErr)

	var got entity.Message
	require.NoError(t, db.First(&got, msg.ID).Error)
	assert.Equal(t, entity.Int64List{4}, got.HideFrom)
}

func TestChatService_GetMessagesFiltersHiddenForViewer(t *testing.T) {
	svc, db := newTestService(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	visible := seedMessage(t, db, &entity.Message{ChatGroupID: "g1", Sender: 1, Msg: "visible", SentAt: base})
	seedMessage(t, db, &entity.Message{ChatGroupID: "g1", Sender: 1, Msg: "hidden", HideFrom: entity.Int64List{9}, SentAt: base.Add(time.Minute)})
	deleted := seedMessage(t, db, &entity.Message{ChatGroupID: "g1", Sender: 1, Msg: "gone", IsDeleted: true, SentAt: base.Add(2 * time.Minute)})

	msgs, appErr := svc.GetMessages(context.Background(), chat_dto.GetMessagesRequest{ChatGroupID: "g1"}, 9)
	require.Nil(t, appErr)
	require.Len(t, msgs, 2, "hidden-for-viewer rows are dropped, deleted ones stay as tombstones")
	assert.Equal(t, deleted.ID, msgs[0].ID)
	assert.Equal(t, visible.ID, msgs[1].ID)

	// The same history for another viewer includes the hidden row.
	msgs, appErr = svc.GetMessages(context.Background(), chat_dto.GetMessagesRequest{ChatGroupID: "g1"}, 3)
	require.Nil(t, appErr)
	assert.Len(t, msgs, 3)
}

func TestChatService_GetMessagesLimitDefaultsAndClamps(t *testing.T) {
	svc, db := newTestService(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		seedMessage(t, db, &entity.Message{ChatGroupID: "g1", Sender: 1, Msg: fmt.Sprintf("m%d", i), SentAt: base.Add(time.Duration(i) * time.Second)})
	}

	msgs, appErr := svc.GetMessages(context.Background(), chat_dto.GetMessagesRequest{ChatGroupID: "g1"}, 1)
	require.Nil(t, appErr)
	assert.Len(t, msgs, defaultHistoryLimit)

	msgs, appErr = svc.GetMessages(context.Background(), chat_dto.GetMessagesRequest{ChatGroupID: "g1", Limit: 1000}, 1)
	require.Nil(t, appErr)
	assert.Len(t, msgs, maxHistoryLimit)
}

func TestChatService_GetMessagesBeforeCursor(t *testing.T) {
	svc, db := newTestService(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	old := seedMessage(t, db, &entity.Message{ChatGroupID: "g1", Sender: 1, Msg: "old", SentAt: base})
	seedMessage(t, db, &entity.Message{ChatGroupID: "g1", Sender: 1, Msg: "new", SentAt: base.Add(time.Hour)})

	cursor := base.Add(time.Minute)
	msgs, appErr := svc.GetMessages(context.Background(), chat_dto.GetMessagesRequest{ChatGroupID: "g1", Before: &cursor}, 1)
	require.Nil(t, appErr)
	require.Len(t, msgs, 1)
	assert.Equal(t, old.ID, msgs[0].ID)
}

func TestChatService_GetMessagesUnknownRoom(t *testing.T) {
	svc, _ := newTestService(t)

	_, appErr := svc.GetMessages(context.Background(), chat_dto.GetMessagesRequest{ChatGroupID: "nope"}, 1)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Invalid chat group.", appErr.Message)
}

func TestChatService_GetMessagesMissingRoomID(t *testing.T) {
	svc, _ := newTestService(t)

	_, appErr := svc.GetMessages(context.Background(), chat_dto.GetMessagesRequest{}, 1)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}
