package game

import (
	"vaultspin/internal/biz/game/base"
	"vaultspin/internal/biz/game/coin"
	"vaultspin/internal/biz/game/dice"
	"vaultspin/internal/biz/game/slots"
)

// 注册顺序即展示顺序，首位是会话默认玩法
var gameInstances = []base.IGame{
	slots.New(),
	coin.New(),
	dice.New(),
}
