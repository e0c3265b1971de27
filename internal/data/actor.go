package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ActorTemplate holds static data for an actor type loaded from YAML.
type ActorTemplate struct {
	ActorID    int32   `yaml:"actor_id"`
	Name       string  `yaml:"name"`
	HP         int     `yaml:"hp"`
	TurnLength int64   `yaml:"turn_length"` // combatant turn in ticks; 0 = config default
	Damage     int     `yaml:"damage"`      // fixed hit; 0 = roll with hit_chance/max_hit
	HitChance  float64 `yaml:"hit_chance"`  // 0 = config default
	MaxHit     int     `yaml:"max_hit"`     // 0 = config default
	Retaliate  bool    `yaml:"retaliate"`   // neutral mobs fight back when hit
	Combatant  bool    `yaml:"combatant"`   // has the turn-based combat capability
	Gatherer   bool    `yaml:"gatherer"`    // carries skills and an inventory
	Slots      int     `yaml:"slots"`       // inventory slots; 0 = config default
	StepLength float64 `yaml:"step_length"` // distance per movement tick; 0 = no movement
}

type actorListFile struct {
	Actors []ActorTemplate `yaml:"actors"`
}

// ActorTable holds all actor templates indexed by ActorID.
type ActorTable struct {
	templates map[int32]*ActorTemplate
}

// LoadActorTable loads actor templates from a YAML file.
func LoadActorTable(path string) (*ActorTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read actor_list: %w", err)
	}
	t, err := ParseActorTable(raw)
	if err != nil {
		return nil, fmt.Errorf("parse actor_list: %w", err)
	}
	return t, nil
}

// ParseActorTable decodes an actor list document.
func ParseActorTable(raw []byte) (*ActorTable, error) {
	var f actorListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	t := &ActorTable{templates: make(map[int32]*ActorTemplate, len(f.Actors))}
	for i := range f.Actors {
		a := &f.Actors[i]
		if a.HP < 1 {
			return nil, fmt.Errorf("actor %d (%s): hp must be >= 1", a.ActorID, a.Name)
		}
		if _, dup := t.templates[a.ActorID]; dup {
			return nil, fmt.Errorf("actor %d: duplicate id", a.ActorID)
		}
		t.templates[a.ActorID] = a
	}
	return t, nil
}

// Get returns an actor template by ID, or nil if not found.
func (t *ActorTable) Get(actorID int32) *ActorTemplate {
	return t.templates[actorID]
}

// Count returns the number of loaded templates.
func (t *ActorTable) Count() int {
	return len(t.templates)
}
