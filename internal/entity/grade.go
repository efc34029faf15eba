package entity

// Grade is the school-side group entity. The chat layer only cares about
// ChatGroupID: a room id is valid iff some grade carries it.
type Grade struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	GradeName   string `gorm:"not null" json:"grade_name"`
	Description string `json:"description"`
	ChatGroupID string `gorm:"column:chat_group_id;index" json:"chat_group_id"`
}

func (Grade) TableName() string {
	return "grades"
}
