// Package generator — генерация трек-номеров отправлений.
package generator

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	trackingPrefix = "TRK-"
	randomLen      = 6
	base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// TrackingNumber — "TRK-<время в мс, base36>-<6 случайных base36>", верхний регистр.
// Уникальность не проверяется по хранилищу: коллизия возможна, но крайне маловероятна.
type TrackingNumber struct {
	now func() time.Time
}

func NewTrackingNumber() *TrackingNumber {
	return &TrackingNumber{now: time.Now}
}

// NewTrackingNumberAt — генератор с фиксированными часами (тесты).
func NewTrackingNumberAt(now func() time.Time) *TrackingNumber {
	return &TrackingNumber{now: now}
}

func (g *TrackingNumber) Next() (string, error) {
	ts := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))

	var b strings.Builder
	b.Grow(len(trackingPrefix) + len(ts) + 1 + randomLen)
	b.WriteString(trackingPrefix)
	b.WriteString(ts)
	b.WriteByte('-')

	limit := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < randomLen; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(base36Alphabet[n.Int64()])
	}
	return b.String(), nil
}
