// Package cachekeys — детерминированные ключи кэша и классы TTL.
// Формат ключей совместим с существующими развёртываниями, делящими тот же Redis:
// менять его нельзя.
package cachekeys

import (
	"strconv"
	"strings"
	"time"
)

// Классы TTL общего кэша.
const (
	TTLShort  = 60 * time.Second
	TTLMedium = 300 * time.Second
	TTLLong   = 3600 * time.Second
	TTLDay    = 86400 * time.Second
)

// SessionTTL — фиксированное скользящее окно сессии, не зависит от классов выше.
const SessionTTL = 24 * time.Hour

const (
	sessionPrefix      = "session:"
	userSessionsPrefix = "user_sessions:"
	blacklistPrefix    = "blacklist:"
	orderTrackingPref  = "order:tracking:"
)

// OrderByTracking — заказ по трек-номеру.
func OrderByTracking(trackingNumber string) string { return orderTrackingPref + trackingNumber }

// Session — запись сессии по токену.
func Session(token string) string { return sessionPrefix + token }

// UserSessions — множество активных токенов пользователя.
func UserSessions(userID string) string { return userSessionsPrefix + userID }

// Blacklist — метка отозванного токена.
func Blacklist(token string) string { return blacklistPrefix + token }

// UserByID — пользователь по id.
func UserByID(id string) string { return Join("user", id) }

// UsersList — список пользователей.
func UsersList() string { return "users:list" }

// TrackingPattern — glob по всем закэшированным трек-номерам.
func TrackingPattern() string { return orderTrackingPref + "*" }

// Join — склеивает части ключа через ':'.
func Join(parts ...any) string {
	ss := make([]string, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			ss = append(ss, v)
		case int:
			ss = append(ss, strconv.Itoa(v))
		case int64:
			ss = append(ss, strconv.FormatInt(v, 10))
		}
	}
	return strings.Join(ss, ":")
}
