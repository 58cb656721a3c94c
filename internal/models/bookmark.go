package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type Bookmark struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	URL        string    `json:"url" gorm:"size:2048;uniqueIndex;not null"`
	Title      string    `json:"title" gorm:"size:500;not null"`
	Image      *string   `json:"image" gorm:"type:text"`
	CategoryID *string   `json:"category_id" gorm:"size:36;index"`
	Read       bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`

	Category *Category `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Tags     []Tag     `json:"tags" gorm:"many2many:bookmark_tags"`

	// 读取时由链接推导，不入库
	Host string `json:"host" gorm:"-"`
}

// BookmarkTag 显式声明连接表，为的是复合主键和级联删除
type BookmarkTag struct {
	BookmarkID string `gorm:"primaryKey;size:36"`
	TagID      string `gorm:"primaryKey;size:36"`

	Bookmark Bookmark `gorm:"constraint:OnDelete:CASCADE"`
	Tag      Tag      `gorm:"constraint:OnDelete:CASCADE"`
}

func (BookmarkTag) TableName() string {
	return "bookmark_tags"
}

type BookmarkCreateRequest struct {
	URL        string  `json:"url" validate:"required,url,max=2048"`
	Title      string  `json:"title" validate:"omitempty,max=500"`
	CategoryID *string `json:"category_id" validate:"omitempty,uuid4"`
}

type BookmarkUpdateRequest struct {
	Title      *string        `json:"title" validate:"omitempty,max=500"`
	CategoryID NullableString `json:"category_id"`
	TagIDs     []string       `json:"tag_ids" validate:"omitempty,dive,uuid4"`
	Read       *bool          `json:"read"`
}

type BookmarkTagRequest struct {
	TagID string `json:"tag_id" validate:"required,uuid4"`
}

// NullableString 区分字段缺省和显式 null：
// 缺省时 Set 为 false，显式 null 时 Set 为 true 且 Value 为 nil
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
