package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/l1jgo/ticksim/internal/action"
	"github.com/l1jgo/ticksim/internal/combat"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable formulas.
// Single-goroutine access only (game loop).
//
// Every formula has a Go fallback: a missing function or a Lua error logs
// and returns the built-in result, so a broken script never stalls a tick.
// Scripts never see a random source; rolls are drawn in Go and passed in,
// which keeps a seeded run reproducible.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	for _, sub := range []string{"core", "combat", "gathering"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString executes a chunk of Lua source in the engine's VM.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// SwingContext holds pre-drawn rolls and the attacker's swing stats.
type SwingContext struct {
	HitChance  float64
	MaxHit     int
	HitRoll    float64 // uniform [0,1)
	DamageRoll float64 // uniform [0,1)
}

// CalcSwing calls the Lua calc_swing function.
func (e *Engine) CalcSwing(ctx SwingContext) combat.SwingResult {
	t := e.vm.NewTable()
	t.RawSetString("hit_chance", lua.LNumber(ctx.HitChance))
	t.RawSetString("max_hit", lua.LNumber(ctx.MaxHit))
	t.RawSetString("hit_roll", lua.LNumber(ctx.HitRoll))
	t.RawSetString("damage_roll", lua.LNumber(ctx.DamageRoll))

	rt, ok := e.callTable("calc_swing", t)
	if !ok {
		return defaultSwing(ctx)
	}
	res := combat.SwingResult{
		Hit:    rt.RawGetString("is_hit") == lua.LTrue,
		Damage: lInt(rt, "damage"),
	}
	if !res.Hit {
		res.Damage = 0
	}
	if res.Damage < 0 {
		res.Damage = 0
	}
	return res
}

func defaultSwing(ctx SwingContext) combat.SwingResult {
	if ctx.HitRoll >= ctx.HitChance {
		return combat.SwingResult{}
	}
	maxHit := ctx.MaxHit
	if maxHit < 0 {
		maxHit = 0
	}
	dmg := int(math.Floor(ctx.DamageRoll * float64(maxHit+1)))
	if dmg > maxHit {
		dmg = maxHit
	}
	return combat.SwingResult{Hit: true, Damage: dmg}
}

// GatherContext holds the pre-drawn roll for one gathering attempt.
type GatherContext struct {
	Chance float64
	Roll   float64 // uniform [0,1)
	XP     float64 // current woodcutting experience
}

// CalcGather calls the Lua calc_gather function.
func (e *Engine) CalcGather(ctx GatherContext) bool {
	t := e.vm.NewTable()
	t.RawSetString("chance", lua.LNumber(ctx.Chance))
	t.RawSetString("roll", lua.LNumber(ctx.Roll))
	t.RawSetString("xp", lua.LNumber(ctx.XP))

	fn, ok := e.lookup("calc_gather")
	if !ok {
		return ctx.Roll < ctx.Chance
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_gather error", zap.Error(err))
		return ctx.Roll < ctx.Chance
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsBool(result)
}

// CombatXP calls the Lua calc_combat_xp function. It matches
// action.XPFormula so it can be plugged into a CombatAction.
func (e *Engine) CombatXP(damage int) action.XPSplit {
	rt, ok := e.callTable("calc_combat_xp", lua.LNumber(damage))
	if !ok {
		return action.DefaultCombatXP(damage)
	}
	return action.XPSplit{
		Attack:    lFloat(rt, "attack"),
		Strength:  lFloat(rt, "strength"),
		Hitpoints: lFloat(rt, "hitpoints"),
	}
}

func (e *Engine) lookup(name string) (lua.LValue, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Debug("lua function not found, using built-in", zap.String("name", name))
		return nil, false
	}
	return fn, true
}

// callTable calls a Lua function expected to return one table.
func (e *Engine) callTable(name string, args ...lua.LValue) (*lua.LTable, bool) {
	fn, ok := e.lookup(name)
	if !ok {
		return nil, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return nil, false
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua function returned non-table", zap.String("func", name))
		return nil, false
	}
	return rt, true
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lFloat reads a number field from a Lua table.
func lFloat(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
