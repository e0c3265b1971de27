package world

import (
	"github.com/l1jgo/ticksim/internal/config"
	"github.com/l1jgo/ticksim/internal/core/tick"
)

// Options carries the tunables the world hands to actions and nodes.
type Options struct {
	Seed uint64

	HitChance   float64
	MaxHit      int
	AttackRange float64
	AttackSpeed tick.Tick
	TurnLength  tick.Tick

	GatherChance   float64
	GatherInterval tick.Tick
	GatherXP       float64
	GatherItem     string
	InventorySlots int
	ChopDelay      int64

	ResourceUses int
	RespawnDelay int64
}

// OptionsFrom maps the loaded configuration onto world options.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Seed:           cfg.Server.Seed,
		HitChance:      cfg.Combat.HitChance,
		MaxHit:         cfg.Combat.MaxHit,
		AttackRange:    cfg.Combat.AttackRange,
		AttackSpeed:    tick.Tick(cfg.Combat.AttackSpeed),
		TurnLength:     tick.Tick(cfg.Combat.TurnLength),
		GatherChance:   cfg.Gathering.Chance,
		GatherInterval: tick.Tick(cfg.Gathering.Interval),
		GatherXP:       cfg.Gathering.XPPerUnit,
		GatherItem:     cfg.Gathering.Item,
		InventorySlots: cfg.Gathering.InventorySlots,
		ChopDelay:      cfg.Gathering.ChopDelay,
		ResourceUses:   cfg.Resource.Uses,
		RespawnDelay:   cfg.Resource.RespawnDelay,
	}
}
