package model

import "time"

// FormDataBlob 表单数据 blob，一个键一行。Value 是完整记录的 JSON。
type FormDataBlob struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (FormDataBlob) TableName() string {
	return "form_data_blobs"
}
