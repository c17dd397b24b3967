package model

import "time"

const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	HTML      string    `json:"html,omitempty"`
	HasImage  bool      `json:"has_image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
