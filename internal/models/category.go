package models

type Category struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	Name      string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug      string `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	SortOrder int    `json:"order" gorm:"not null;default:0;index"`
}

type CategoryCreateRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CategoryRenameRequest struct {
	NewName string `json:"new_name" validate:"required,max=100"`
}

type CategoryReorderRequest struct {
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1,dive,uuid4"`
}
