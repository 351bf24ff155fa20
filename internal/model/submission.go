// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// Submission 定义了 submissions 表的 ORM 模型。
// 每一行对应一次投稿：投稿人元数据加上两个已存储文件的引用。
// 文件引用是软引用（仅存储文件名），数据库侧没有外键约束；
// 文件被外部删除后引用会悬空，系统不检测也不修复。
type Submission struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);not null" json:"email"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Category    string    `gorm:"type:varchar(100);not null" json:"category"`
	ArticleFile string    `gorm:"type:varchar(255);not null" json:"articleFile"`
	ConsentFile string    `gorm:"type:varchar(255);not null" json:"consentFile"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Submission) TableName() string {
	return "submissions"
}
