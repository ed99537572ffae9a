package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bootstrap 服务启动配置，由 config.Scan 从 configs/ 填充
type Bootstrap struct {
	Server *Server `json:"server"`
	Game   *Game   `json:"game"`
	Log    *Log    `json:"log"`
	Notify *Notify `json:"notify"`
}

type Server struct {
	Http *ServerHTTP `json:"http"`
}

type ServerHTTP struct {
	Network string    `json:"network"`
	Addr    string    `json:"addr"`
	Timeout *Duration `json:"timeout"`
}

// Game 玩法与会话参数，零值回退到内置默认
type Game struct {
	// 赢一局的随机派彩区间 [WinMin, WinMax]，默认 [400, 500]
	WinMin int64 `json:"win_min"`
	WinMax int64 `json:"win_max"`
	// 累计赢局达到该值后解锁宝库，默认 3
	VaultThreshold int64 `json:"vault_threshold"`
	// 历史记录条数上限，默认 5
	HistoryLimit int `json:"history_limit"`
	// 宝库 collect 跳转地址
	CollectUrl string `json:"collect_url"`
	// 会话空闲回收
	SessionTtl      *Duration `json:"session_ttl"`
	CleanupInterval *Duration `json:"cleanup_interval"`
	// 开奖协程池容量
	WorkerPool int `json:"worker_pool"`
}

type Log struct {
	Mode  int32  `json:"mode"` // 0=dev 1=prod
	Level string `json:"level"`
	App   string `json:"app"`
	Dir   string `json:"dir"`
	File  bool   `json:"file"`
}

type Notify struct {
	Enabled       bool   `json:"enabled"`
	WebhookUrl    string `json:"webhook_url"`
	SigningSecret string `json:"signing_secret"`
	Prefix        string `json:"prefix"`
}

// Duration 支持 "100ms"/"1h" 字符串的时长配置；裸数字按纳秒处理
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("conf: invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// AsDuration 空指针安全取值
func (d *Duration) AsDuration() time.Duration {
	if d == nil {
		return 0
	}
	return time.Duration(*d)
}
