package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/ericfrick132/beauty-salon-sub003/internal/config"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
)

func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

const (
	lockTTL       = 10 * time.Second
	lockRetryWait = 50 * time.Millisecond
	lockAttempts  = 40
)

// script de liberação: só apaga se o token ainda for nosso
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`

// StaffLock serializa escritores concorrentes sobre a agenda do mesmo
// profissional via SETNX com TTL. O TTL evita lock órfão se o processo cair
// no meio da chamada.
type StaffLock struct {
	client *redis.Client
}

func NewStaffLock(client *redis.Client) *StaffLock {
	return &StaffLock{client: client}
}

func (l *StaffLock) LockStaff(
	ctx context.Context,
	staffID uint,
) (func(), error) {

	key := fmt.Sprintf("schedule:lock:staff:%d", staffID)
	token := uuid.NewString()

	for i := 0; i < lockAttempts; i++ {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				l.client.Eval(context.Background(), releaseScript, []string{key}, token)
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryWait):
		}
	}

	return nil, httperr.ErrBusiness("schedule_busy")
}

// Compile-time check
var _ schedule.StaffLocker = (*StaffLock)(nil)
