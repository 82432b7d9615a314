package model

import (
	"time"

	"github.com/google/uuid"
)

// Meta - 모든 소유 리소스(note, todo, contact, custom note)가 공유하는 필드.
// UserID는 생성 시점에 principal로 고정되고 이후 변경되지 않는다.
type Meta struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
