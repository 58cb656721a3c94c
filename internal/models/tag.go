package models

import "time"

type Tag struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type TagCreateRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}
