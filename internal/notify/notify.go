package notify

import (
	"context"
	"time"

	"vaultspin/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(NewHub, NewNotifier)

// 展示层事件类型：声效、彩带、弹窗等都由订阅方自行演绎
const (
	EventGameSelected  = "game_selected"
	EventRoundStarted  = "round_started"
	EventRevealFrame   = "reveal_frame"
	EventRoundResolved = "round_resolved"
	EventVaultUnlocked = "vault_unlocked"
)

// Event 发往展示层的一条事件，发完即忘
type Event struct {
	Type      string         `json:"type"`
	SessionID string         `json:"session_id"`
	Game      string         `json:"game,omitempty"`
	RoundID   string         `json:"round_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	At        time.Time      `json:"at"`
}

// Notifier 展示层能力接口。核心逻辑只管投递，
// 不等待下游、不感知下游失败
type Notifier interface {
	Send(ctx context.Context, ev *Event) error
}

// Noop 空实现
type Noop struct{}

func (Noop) Send(context.Context, *Event) error { return nil }

// Fanout 广播到多个下游；单个下游的失败只记日志，从不上抛
type Fanout struct {
	sinks []Notifier
	log   *log.Helper
}

func NewFanout(logger log.Logger, sinks ...Notifier) Notifier {
	if len(sinks) == 0 {
		return Noop{}
	}
	return &Fanout{
		sinks: sinks,
		log:   log.NewHelper(logger),
	}
}

func (f *Fanout) Send(ctx context.Context, ev *Event) error {
	for _, s := range f.sinks {
		if err := s.Send(ctx, ev); err != nil {
			f.log.Warnf("notify %s: %v", ev.Type, err)
		}
	}
	return nil
}

// NewNotifier 组装通知链：ws 推送常开，webhook 按配置加入
func NewNotifier(c *conf.Notify, hub *Hub, logger log.Logger) Notifier {
	sinks := []Notifier{hub}
	if w := NewWebhook(c); w != nil {
		sinks = append(sinks, w)
	}
	return NewFanout(logger, sinks...)
}
