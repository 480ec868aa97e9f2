package domain

import (
	"encoding/json"
	"time"
)

// Session — запись активной сессии, хранится в кэше под ключом токена.
// В JSON время пишется в Unix-миллисекундах: формат общий с другими развёртываниями.
type Session struct {
	UserID       string
	Email        string
	Role         Role
	CreatedAt    time.Time
	LastActivity time.Time
}

type sessionJSON struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	CreatedAt    int64  `json:"createdAt"`
	LastActivity int64  `json:"lastActivity"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionJSON{
		UserID:       s.UserID,
		Email:        s.Email,
		Role:         s.Role,
		CreatedAt:    s.CreatedAt.UnixMilli(),
		LastActivity: s.LastActivity.UnixMilli(),
	})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var raw sessionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Session{
		UserID:       raw.UserID,
		Email:        raw.Email,
		Role:         raw.Role,
		CreatedAt:    time.UnixMilli(raw.CreatedAt).UTC(),
		LastActivity: time.UnixMilli(raw.LastActivity).UTC(),
	}
	return nil
}

// SessionsSummary — активные сессии пользователя.
type SessionsSummary struct {
	Count    int64     `json:"count"`
	Sessions []Session `json:"sessions"`
}
