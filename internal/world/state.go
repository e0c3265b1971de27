package world

import (
	"github.com/l1jgo/ticksim/internal/action"
	"github.com/l1jgo/ticksim/internal/combat"
	"github.com/l1jgo/ticksim/internal/component"
	"github.com/l1jgo/ticksim/internal/core/ecs"
	"github.com/l1jgo/ticksim/internal/core/event"
	"github.com/l1jgo/ticksim/internal/core/tick"
	"github.com/l1jgo/ticksim/internal/data"
	"github.com/l1jgo/ticksim/internal/resource"
	"go.uber.org/zap"
)

// State tracks every actor and resource node in the simulation.
// Single-goroutine access only (game loop).
//
// Listener order is explicit and fixed at spawn time: the world's own
// driver (movement, approach, chop watch) first, then per actor in spawn
// order its Controller followed by its Combatant, then resource nodes in
// the post-update phase.
type State struct {
	clock    *tick.Clock
	bus      *event.Bus
	opts     Options
	formulas Formulas
	log      *zap.Logger

	ecs    *ecs.World
	actors *ecs.Store[Actor]
	nodes  *ecs.Store[resource.Node]

	byCombatant map[*combat.Combatant]ecs.EntityID
}

// NewState creates an empty world bound to clock. formulas nil means Builtin.
func NewState(clock *tick.Clock, bus *event.Bus, opts Options, formulas Formulas, log *zap.Logger) *State {
	if formulas == nil {
		formulas = Builtin{}
	}
	s := &State{
		clock:       clock,
		bus:         bus,
		opts:        opts,
		formulas:    formulas,
		log:         log,
		ecs:         ecs.NewWorld(),
		actors:      ecs.NewStore[Actor](),
		nodes:       ecs.NewStore[resource.Node](),
		byCombatant: make(map[*combat.Combatant]ecs.EntityID),
	}
	s.ecs.Registry().Register(s.actors)
	s.ecs.Registry().Register(s.nodes)
	s.ecs.OnDestroy(s.teardown)
	clock.Register(s)
	return s
}

// ECS exposes the entity world for the cleanup system.
func (s *State) ECS() *ecs.World { return s.ecs }

func (s *State) Now() tick.Tick { return s.clock.Current() }

// Actor returns a live actor by id.
func (s *State) Actor(id ecs.EntityID) (*Actor, bool) {
	if !s.ecs.Alive(id) {
		return nil, false
	}
	return s.actors.Get(id)
}

// Node returns a live resource node by id.
func (s *State) Node(id ecs.EntityID) (*resource.Node, bool) {
	if !s.ecs.Alive(id) {
		return nil, false
	}
	return s.nodes.Get(id)
}

// EachActor visits actors in spawn order.
func (s *State) EachActor(fn func(*Actor)) {
	s.actors.Each(func(_ ecs.EntityID, a *Actor) { fn(a) })
}

// EachNode visits resource nodes in spawn order.
func (s *State) EachNode(fn func(*resource.Node)) {
	s.nodes.Each(func(_ ecs.EntityID, n *resource.Node) { fn(n) })
}

func (s *State) ActorCount() int { return s.actors.Len() }
func (s *State) NodeCount() int  { return s.nodes.Len() }

// Populate spawns the initial actors and resources in file order.
func (s *State) Populate(actors *data.ActorTable, spawns *data.SpawnList) error {
	for _, sp := range spawns.Actors {
		tpl := actors.Get(sp.ActorID)
		if tpl == nil {
			s.log.Warn("spawn references unknown actor template", zap.Int32("actor_id", sp.ActorID))
			continue
		}
		for i := 0; i < sp.Count; i++ {
			if _, err := s.Spawn(tpl, sp.Name, sp.X, sp.Z); err != nil {
				return err
			}
		}
	}
	for _, rs := range spawns.Resources {
		s.SpawnResource(rs.Name, rs.X, rs.Z, rs.Uses, rs.RespawnDelay)
	}
	s.log.Info("world populated",
		zap.Int("actors", s.actors.Len()),
		zap.Int("resources", s.nodes.Len()))
	return nil
}

// Spawn creates an actor from a template. name overrides the template name when set.
func (s *State) Spawn(tpl *data.ActorTemplate, name string, x, z float64) (ecs.EntityID, error) {
	if tpl == nil {
		return 0, ErrUnknownTemplate
	}
	if name == "" {
		name = tpl.Name
	}
	id := s.ecs.CreateEntity()
	a := &Actor{
		ID:         id,
		TemplateID: tpl.ActorID,
		Name:       name,
		Pos:        &component.Position{X: x, Z: z},
		Health:     combat.NewHealth(tpl.HP),
		Controller: action.NewController(id, s.clock.Current, s.bus, s.log),
	}

	hitChance, maxHit := s.opts.HitChance, s.opts.MaxHit
	if tpl.HitChance > 0 {
		hitChance = tpl.HitChance
	}
	if tpl.MaxHit > 0 {
		maxHit = tpl.MaxHit
	}
	if tpl.Damage > 0 {
		a.resolver = combat.FixedResolver{Damage: tpl.Damage}
	} else {
		a.resolver = s.formulas.SwingResolver(hitChance, maxHit, deriveSeed(s.opts.Seed, id, "swing"))
	}

	if tpl.Combatant {
		turn := s.opts.TurnLength
		if tpl.TurnLength > 0 {
			turn = tick.Tick(tpl.TurnLength)
		}
		a.Combatant = combat.NewCombatant(combat.CombatantConfig{
			Name:       name,
			TurnLength: turn,
			Resolver:   a.resolver,
			Retaliate:  tpl.Retaliate,
		}, a.Health, s.clock.Current, s.log.With(zap.Stringer("actor", id)))
		s.byCombatant[a.Combatant] = id
	}
	if tpl.Gatherer {
		slots := s.opts.InventorySlots
		if tpl.Slots > 0 {
			slots = tpl.Slots
		}
		a.Skills = &component.Skills{}
		a.Inventory = component.NewInventory(slots)
		a.roller = s.formulas.GatherRoller(s.opts.GatherChance, a.Skills, deriveSeed(s.opts.Seed, id, "gather"))
	}
	if tpl.StepLength > 0 {
		a.Mover = &component.Mover{StepDistance: tpl.StepLength}
	}

	s.bridgeHealth(a)
	s.actors.Set(id, a)
	s.clock.Register(a.Controller)
	if a.Combatant != nil {
		s.clock.Register(a.Combatant)
	}
	s.log.Debug("actor spawned",
		zap.Stringer("actor", id),
		zap.String("name", name),
		zap.Int32("template", tpl.ActorID))
	return id, nil
}

// SpawnResource creates a harvestable node. Zero uses/delay take the configured defaults.
func (s *State) SpawnResource(name string, x, z float64, uses int, respawnDelay int64) ecs.EntityID {
	if uses <= 0 {
		uses = s.opts.ResourceUses
	}
	if respawnDelay <= 0 {
		respawnDelay = s.opts.RespawnDelay
	}
	id := s.ecs.CreateEntity()
	n := resource.NewNode(id, resource.Config{Uses: uses, RespawnDelay: respawnDelay},
		s.clock.Scheduler(), s.clock.Current, s.bus, s.log)
	n.Pos = component.Position{X: x, Z: z}
	n.Name = name
	s.nodes.Set(id, n)
	s.clock.Register(n)
	s.log.Debug("resource spawned", zap.Stringer("node", id), zap.String("name", name))
	return id
}

// bridgeHealth forwards an actor's health notifications to the bus.
func (s *State) bridgeHealth(a *Actor) {
	id := a.ID
	a.bridges = append(a.bridges,
		a.Health.OnDamaged(func(amount int, attacker *combat.Combatant) {
			event.Emit(s.bus, event.Damaged{
				Tick:     s.clock.Current(),
				Actor:    id,
				Amount:   amount,
				Attacker: s.byCombatant[attacker],
			})
		}),
		a.Health.OnChanged(func(current int) {
			event.Emit(s.bus, event.HealthChanged{
				Tick:    s.clock.Current(),
				Actor:   id,
				Current: current,
				Max:     a.Health.Max(),
			})
		}),
		a.Health.OnDied(func() {
			a.approachTarget = 0
			a.Controller.Cancel()
			s.log.Info("actor died", zap.Stringer("actor", id), zap.Uint64("tick", uint64(s.clock.Current())))
			event.Emit(s.bus, event.Died{Tick: s.clock.Current(), Actor: id})
		}),
	)
}

func (s *State) Phase() tick.Phase { return tick.PhaseUpdate }

// OnTick drives per-actor work that is not an Action: one movement step,
// approach completion, and cancelling chops on unavailable nodes.
func (s *State) OnTick(t tick.Tick) {
	s.actors.Each(func(id ecs.EntityID, a *Actor) {
		if !s.ecs.Alive(id) {
			return
		}
		if a.Mover != nil {
			if dx, dz, ok := a.Mover.Next(); ok {
				a.Pos.X += dx
				a.Pos.Z += dz
			}
			if a.approachTarget != 0 && a.Mover.Pending() == 0 {
				target := a.approachTarget
				a.approachTarget = 0
				if err := s.StartAttack(id, target); err != nil {
					s.log.Debug("approach ended without attack", zap.Stringer("actor", id), zap.Error(err))
				}
			}
		}
		if a.chop.Pending() {
			if n, ok := s.Node(a.chopNode); !ok || !n.Available() {
				s.cancelChop(a)
			}
		}
	})
}

// teardown releases everything an entity holds before its components are removed.
func (s *State) teardown(id ecs.EntityID) {
	if a, ok := s.actors.Get(id); ok {
		s.detachFrom(a.Health)
		s.cancelChop(a)
		s.clock.Unregister(a.Controller)
		a.Controller.Cancel()
		if a.Combatant != nil {
			s.clock.Unregister(a.Combatant)
			a.Combatant.Release()
			delete(s.byCombatant, a.Combatant)
		}
		for _, sub := range a.bridges {
			sub.Release()
		}
		a.bridges = nil
		s.log.Debug("actor despawned", zap.Stringer("actor", id))
	}
	if n, ok := s.nodes.Get(id); ok {
		s.actors.Each(func(_ ecs.EntityID, a *Actor) {
			if g, ok := a.Controller.Current().(*action.GatheringAction); ok && g.Resource() == action.Harvestable(n) {
				a.Controller.Cancel()
			}
			if a.chopNode == id {
				s.cancelChop(a)
			}
		})
		s.clock.Unregister(n)
		n.Close()
		s.log.Debug("resource despawned", zap.Stringer("node", id))
	}
}

// detachFrom clears every combatant and combat action aimed at h.
func (s *State) detachFrom(h *combat.Health) {
	s.actors.Each(func(_ ecs.EntityID, a *Actor) {
		if a.Combatant != nil && a.Combatant.Target() == h {
			a.Combatant.SetTarget(nil, false)
		}
		if c, ok := a.Controller.Current().(*action.CombatAction); ok && c.Target() == h {
			a.Controller.Cancel()
		}
	})
}

func (s *State) cancelChop(a *Actor) {
	a.chop.Cancel()
	a.chop = nil
	a.chopNode = 0
}
