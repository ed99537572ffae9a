package v1

import (
	"fmt"
	"strings"
)

// Validate 实现 validate.Validator() 中间件识别的接口

func (r *GetSessionRequest) Validate() error   { return requireID(r.Id) }
func (r *GetHistoryRequest) Validate() error   { return requireID(r.Id) }
func (r *CollectVaultRequest) Validate() error { return requireID(r.Id) }
func (r *GetRoundRequest) Validate() error     { return requireID(r.Id) }

func (r *SelectGameRequest) Validate() error {
	if err := requireID(r.Id); err != nil {
		return err
	}
	if strings.TrimSpace(r.Game) == "" {
		return fmt.Errorf("game is required")
	}
	return nil
}

func (r *StartRoundRequest) Validate() error { return requireID(r.Id) }

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}
