package entity

import (
	"time"
)

// Int64List is stored as a JSON array column. Entries are only ever
// appended by the chat protocol, never removed.
type Int64List []int64

func (l Int64List) Contains(id int64) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

type Message struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatGroupID string    `gorm:"column:chat_group_id;not null;index:idx_messages_group_sent" json:"chat_group_id"`
	Sender      int64     `gorm:"not null;index" json:"sender"`
	SenderName  string    `gorm:"not null" json:"senderName"`
	Msg         string    `gorm:"type:text;not null" json:"msg"`
	IsDeleted   bool      `gorm:"not null;default:false;index" json:"isDeleted"`
	IsEdited    bool      `gorm:"not null;default:false" json:"isEdited"`
	HideFrom    Int64List `gorm:"column:hidefrom;serializer:json" json:"hidefrom"`
	ReadList    Int64List `gorm:"column:read_list;serializer:json" json:"readList"`
	SentAt      time.Time `gorm:"not null;index:idx_messages_group_sent" json:"sentAt"`
}

func (Message) TableName() string {
	return "messages"
}

// VisibleTo reports whether the message may be shown to the given user.
// Hiding is per-viewer and independent of soft deletion.
func (m *Message) VisibleTo(userID int64) bool {
	return !m.HideFrom.Contains(userID)
}
