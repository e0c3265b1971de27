package combat

// Health is the hit-point pool of an actor or a resource node.
// Accessed only from the game loop goroutine; no locks needed.
//
// Death is one-way: once current reaches 0 every ApplyDamage is a no-op
// until HealFull.
type Health struct {
	current int
	max     int

	owner *Combatant // combat capability of the same actor, nil if none

	damaged hookList[func(amount int, attacker *Combatant)]
	changed hookList[func(current int)]
	died    hookList[func()]
}

// NewHealth creates a full pool. max below 1 is raised to 1.
func NewHealth(maxHP int) *Health {
	if maxHP < 1 {
		maxHP = 1
	}
	return &Health{current: maxHP, max: maxHP}
}

func (h *Health) Current() int { return h.current }
func (h *Health) Max() int     { return h.max }
func (h *Health) Dead() bool   { return h.current <= 0 }

// Combatant returns the combat capability bound to this pool, or nil.
func (h *Health) Combatant() *Combatant { return h.owner }

// ApplyDamage is the only way hit points go down. Negative amounts count
// as 0. Order of notifications: damaged, changed, then died exactly once.
func (h *Health) ApplyDamage(amount int, attacker *Combatant) {
	if h.Dead() {
		return
	}
	if amount < 0 {
		amount = 0
	}
	h.current -= amount
	if h.current < 0 {
		h.current = 0
	}
	h.damaged.each(func(fn func(int, *Combatant)) { fn(amount, attacker) })
	cur := h.current
	h.changed.each(func(fn func(int)) { fn(cur) })
	if h.current == 0 {
		h.died.each(func(fn func()) { fn() })
	}
}

// HealFull restores the pool to max, reviving a dead pool.
func (h *Health) HealFull() {
	h.current = h.max
	cur := h.current
	h.changed.each(func(fn func(int)) { fn(cur) })
}

// SetMax changes the pool size and heals to full. Values below 1 become 1.
func (h *Health) SetMax(maxHP int) {
	if maxHP < 1 {
		maxHP = 1
	}
	h.max = maxHP
	h.HealFull()
}

func (h *Health) OnDamaged(fn func(amount int, attacker *Combatant)) *Subscription {
	return h.damaged.add(fn)
}

func (h *Health) OnChanged(fn func(current int)) *Subscription {
	return h.changed.add(fn)
}

func (h *Health) OnDied(fn func()) *Subscription {
	return h.died.add(fn)
}

// Subscribers returns the number of attached handlers (diagnostics, leak tests).
func (h *Health) Subscribers() int {
	return h.damaged.len() + h.changed.len() + h.died.len()
}
