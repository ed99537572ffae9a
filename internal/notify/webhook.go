package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vaultspin/internal/conf"

	jsoniter "github.com/json-iterator/go"
)

// Webhook 把大奖事件推给飞书群机器人。
// 高频的帧事件不出站，只有 vault_unlocked 值得打扰人
type Webhook struct {
	WebhookURL    string
	SigningSecret string
	Prefix        string
	Client        *http.Client
}

func NewWebhook(c *conf.Notify) Notifier {
	if c == nil || !c.Enabled || strings.TrimSpace(c.WebhookUrl) == "" {
		return nil
	}
	return &Webhook{
		WebhookURL:    strings.TrimSpace(c.WebhookUrl),
		SigningSecret: strings.TrimSpace(c.SigningSecret),
		Prefix:        strings.TrimSpace(c.Prefix),
		Client:        &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *Webhook) Send(ctx context.Context, ev *Event) error {
	if w.WebhookURL == "" || ev == nil || ev.Type != EventVaultUnlocked {
		return nil
	}

	title := "宝库解锁"
	if p := strings.TrimSpace(w.Prefix); p != "" {
		title = p + " " + title
	}
	lines := []string{
		fmt.Sprintf("**会话**:%s", ev.SessionID),
		fmt.Sprintf("**游戏**:%s", ev.Game),
	}
	if ev.Payload != nil {
		if v, ok := ev.Payload["wins"]; ok {
			lines = append(lines, fmt.Sprintf("**累计胜场**:%v", v))
		}
		if v, ok := ev.Payload["balance"]; ok {
			lines = append(lines, fmt.Sprintf("**余额**:%v", v))
		}
	}

	payload := map[string]any{
		"msg_type": "interactive",
		"card": map[string]any{
			"config":   map[string]bool{"wide_screen_mode": true},
			"header":   map[string]any{"title": map[string]string{"tag": "plain_text", "content": title}, "template": "blue"},
			"elements": []map[string]any{{"tag": "div", "text": map[string]string{"tag": "lark_md", "content": strings.Join(lines, "\n")}}},
		},
	}
	if w.SigningSecret != "" {
		ts := strconv.FormatInt(time.Now().Unix(), 10)
		payload["timestamp"] = ts
		payload["sign"] = w.sign(ts)
	}

	body, _ := jsoniter.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, w.WebhookURL, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook: status %d", resp.StatusCode)
	}
	var r struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	_ = jsoniter.NewDecoder(resp.Body).Decode(&r)
	if r.Code != 0 {
		return fmt.Errorf("webhook: code=%d msg=%s", r.Code, r.Msg)
	}
	return nil
}

// sign 飞书加签：HMAC-SHA256(key=timestamp+\n+secret, message="")
func (w *Webhook) sign(ts string) string {
	key := ts + "\n" + w.SigningSecret
	h := hmac.New(sha256.New, []byte(key))
	h.Write(nil)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
