package domain

import "time"

// TodoList groups todo items. Column names match the TodoLists table exactly,
// and the JSON keys mirror them.
type TodoList struct {
	ListID      int64     `gorm:"column:ListId;primaryKey;autoIncrement" json:"ListId"`
	Name        string    `gorm:"column:Name;not null" json:"Name"`
	Description *string   `gorm:"column:Description" json:"Description"`
	CreatedDate time.Time `gorm:"column:CreatedDate;not null;default:CURRENT_TIMESTAMP" json:"CreatedDate"`
	UserID      *int64    `gorm:"column:UserId" json:"UserId"`
}

func (TodoList) TableName() string {
	return "TodoLists"
}

type TodoItem struct {
	ID          int64      `gorm:"column:Id;primaryKey;autoIncrement" json:"Id"`
	Title       string     `gorm:"column:Title;not null" json:"Title"`
	Description *string    `gorm:"column:Description" json:"Description"`
	IsCompleted bool       `gorm:"column:IsCompleted;not null;default:false" json:"IsCompleted"`
	Priority    int        `gorm:"column:Priority;not null;default:0" json:"Priority"`
	DueDate     *time.Time `gorm:"column:DueDate" json:"DueDate"`
	CreatedDate time.Time  `gorm:"column:CreatedDate;not null;default:CURRENT_TIMESTAMP" json:"CreatedDate"`
	ListID      *int64     `gorm:"column:ListId;index" json:"ListId"`
}

func (TodoItem) TableName() string {
	return "TodoItems"
}

// Models lists every table AutoMigrate should manage.
func Models() []any {
	return []any{&TodoList{}, &TodoItem{}}
}
