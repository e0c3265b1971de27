package combat

import (
	"github.com/l1jgo/ticksim/internal/core/tick"
	"go.uber.org/zap"
)

// DefaultDamage is the fixed hit of a combatant configured without a resolver.
const DefaultDamage = 5

// CombatantConfig is supplied at construction; there is no dynamic reconfiguration.
type CombatantConfig struct {
	Name       string
	TurnLength tick.Tick     // ticks between swings, minimum 1
	Resolver   SwingResolver // nil: always hit for DefaultDamage
	Retaliate  bool          // switch target to whoever damages us
}

// Combatant is the persistent, turn-alternating attack state of one actor.
// It is a tick listener of its own and does not go through the action
// controller.
//
// Target relationship: a non-owning *Health plus the death subscription
// token, released on every retarget and on Release.
//
// Counter-attack policy (deferred cooldown extension): when A swings at B
// on tick t and B is targeting A, B never swings back on t. B stops waiting
// for an initiator and its next swing is pushed to no earlier than
// t + A's turn length, the tick A is next eligible.
//
// A then owes B that turn: on a tick where B is due and has not answered,
// A holds its swing and B goes first. Without this, an opponent registered
// ahead of B would push B back on every one of its own swings.
type Combatant struct {
	name     string
	self     *Health
	turn     tick.Tick
	resolver SwingResolver
	now      func() tick.Tick
	log      *zap.Logger

	target           *Health
	targetSub        *Subscription
	nextAttack       tick.Tick
	lastAttack       tick.Tick
	hasActed         bool
	waitForInitiator bool
	awaiting         *Combatant // responder that has not answered our last swing

	ownSubs []*Subscription
}

// NewCombatant binds a combat capability to self (may be nil for an
// attacker that cannot be hit). now supplies the current tick.
func NewCombatant(cfg CombatantConfig, self *Health, now func() tick.Tick, log *zap.Logger) *Combatant {
	turn := cfg.TurnLength
	if turn < 1 {
		turn = 1
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = FixedResolver{Damage: DefaultDamage}
	}
	c := &Combatant{
		name:       cfg.Name,
		self:       self,
		turn:       turn,
		resolver:   resolver,
		now:        now,
		log:        log,
		nextAttack: tick.Never,
	}
	if self == nil {
		return c
	}
	self.owner = c
	// Dead actors stop fighting.
	c.ownSubs = append(c.ownSubs, self.OnDied(func() { c.SetTarget(nil, false) }))
	if cfg.Retaliate {
		c.ownSubs = append(c.ownSubs, self.OnDamaged(c.retaliate))
	}
	return c
}

func (c *Combatant) Name() string              { return c.name }
func (c *Combatant) Health() *Health           { return c.self }
func (c *Combatant) Target() *Health           { return c.target }
func (c *Combatant) TurnLength() tick.Tick     { return c.turn }
func (c *Combatant) NextAttack() tick.Tick     { return c.nextAttack }
func (c *Combatant) WaitingForInitiator() bool { return c.waitForInitiator }

// LastAttack returns the tick of the most recent swing; ok is false before the first.
func (c *Combatant) LastAttack() (t tick.Tick, ok bool) {
	return c.lastAttack, c.hasActed
}

func (c *Combatant) Phase() tick.Phase { return tick.PhaseUpdate }

// SetTarget switches the attack target. Identical target is a no-op.
// takeFirstTurnImmediately makes the first swing eligible this tick;
// otherwise the combatant waits one turn and for the opponent to strike first.
func (c *Combatant) SetTarget(target *Health, takeFirstTurnImmediately bool) {
	if target == c.target {
		return
	}
	c.targetSub.Release()
	c.targetSub = nil
	c.target = nil
	c.awaiting = nil

	if target == nil {
		c.resetIdle()
		return
	}
	if c.self != nil && target == c.self {
		c.log.Warn("combatant cannot target itself", zap.String("combatant", c.name))
		c.resetIdle()
		return
	}
	if target.Dead() {
		c.log.Debug("combatant target already dead", zap.String("combatant", c.name))
		c.resetIdle()
		return
	}

	c.target = target
	c.targetSub = target.OnDied(c.handleTargetDied)
	now := c.now()
	if takeFirstTurnImmediately {
		c.nextAttack = now
	} else {
		c.nextAttack = now + c.turn
	}
	c.waitForInitiator = !takeFirstTurnImmediately
}

// OnTick swings at most once per tick, when the turn has come.
func (c *Combatant) OnTick(t tick.Tick) {
	if c.target == nil || c.target.Dead() || c.waitForInitiator {
		return
	}
	if t < c.nextAttack || (c.hasActed && c.lastAttack == t) {
		return
	}
	if c.self != nil && c.self.Dead() {
		return
	}
	if c.awaiting != nil && c.awaiting.owesTurn(c, t) {
		return
	}
	c.awaiting = nil

	target := c.target
	res := c.resolver.Swing()
	c.lastAttack = t
	c.hasActed = true
	c.nextAttack = t + c.turn
	c.waitForInitiator = false

	damage := 0
	if res.Hit {
		damage = res.Damage
	}
	c.log.Debug("combatant swing",
		zap.String("combatant", c.name),
		zap.Uint64("tick", uint64(t)),
		zap.Bool("hit", res.Hit),
		zap.Int("damage", damage))
	// May fire the target's death hook, which clears c.target.
	target.ApplyDamage(damage, c)

	if responder := target.Combatant(); responder != nil && responder != c {
		responder.respond(c, t)
	}
}

// respond applies the counter-attack policy for a swing by attacker on tick t.
func (c *Combatant) respond(attacker *Combatant, t tick.Tick) {
	if c.awaiting == attacker {
		c.awaiting = nil
	}
	if attacker.self == nil || c.target != attacker.self {
		return
	}
	if c.self != nil && c.self.Dead() {
		return
	}
	c.waitForInitiator = false
	c.extend(t + attacker.turn)
	attacker.awaiting = c
}

// owesTurn reports whether c is due to answer attacker on tick t.
func (c *Combatant) owesTurn(attacker *Combatant, t tick.Tick) bool {
	if c.target != attacker.self || c.waitForInitiator {
		return false
	}
	if c.self != nil && c.self.Dead() {
		return false
	}
	return c.nextAttack <= t && !(c.hasActed && c.lastAttack == t)
}

func (c *Combatant) extend(until tick.Tick) {
	if c.nextAttack < until {
		c.nextAttack = until
	}
}

func (c *Combatant) retaliate(_ int, attacker *Combatant) {
	if attacker == nil || attacker == c || attacker.self == nil || attacker.self.Dead() {
		return
	}
	if c.self.Dead() {
		return
	}
	if c.target != attacker.self {
		c.log.Debug("combatant retaliates",
			zap.String("combatant", c.name),
			zap.String("attacker", attacker.name))
	}
	c.SetTarget(attacker.self, false)
}

func (c *Combatant) handleTargetDied() {
	c.log.Debug("combatant target died", zap.String("combatant", c.name))
	c.targetSub.Release()
	c.targetSub = nil
	c.target = nil
	c.resetIdle()
}

func (c *Combatant) resetIdle() {
	c.nextAttack = tick.Never
	c.waitForInitiator = false
	c.awaiting = nil
}

// Release drops every subscription this combatant holds. Call on despawn.
func (c *Combatant) Release() {
	c.targetSub.Release()
	c.targetSub = nil
	c.target = nil
	c.resetIdle()
	for _, s := range c.ownSubs {
		s.Release()
	}
	c.ownSubs = nil
	if c.self != nil && c.self.owner == c {
		c.self.owner = nil
	}
}
