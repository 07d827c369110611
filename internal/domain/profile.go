package domain

import "time"

// Profile guarda el avatar con el que un usuario se describe a sí mismo.
type Profile struct {
	UserID      string        `json:"user_id"`
	DisplayName string        `json:"display_name,omitempty"`
	OwnAvatar   *AvatarConfig `json:"own_avatar,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
