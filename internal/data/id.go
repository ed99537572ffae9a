package data

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/google/uuid"
)

// NewSessionID 实现 DataRepo：会话ID 直接用 uuid，无需可读性
func (r *dataRepo) NewSessionID(ctx context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Newf(500, "SESSION_ID_FAILED", "session id: %v", err)
	}
	return id.String(), nil
}

// NextRoundID 实现 DataRepo：内存计数 YYYYMMDD-<game>-<seq>，跨天清零
func (r *dataRepo) NextRoundID(ctx context.Context, game string) (string, error) {
	date := time.Now().Format("20060102")

	r.data.mu.Lock()
	if r.data.countDay != date {
		r.data.countDay = date
		r.data.counters = make(map[string]int64)
	}
	r.data.counters[game]++
	count := r.data.counters[game]
	r.data.mu.Unlock()

	return fmt.Sprintf("%s-%s-%d", date, game, count), nil
}
