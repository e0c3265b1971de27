package component

// Skill identifies an experience track.
type Skill int

const (
	SkillAttack Skill = iota
	SkillStrength
	SkillDefence
	SkillHitpoints
	SkillWoodcutting
	skillCount
)

var skillNames = [skillCount]string{"attack", "strength", "defence", "hitpoints", "woodcutting"}

func (s Skill) String() string {
	if s < 0 || s >= skillCount {
		return "unknown"
	}
	return skillNames[s]
}

// ParseSkill maps a data-table name back to a Skill.
func ParseSkill(name string) (Skill, bool) {
	for i, n := range skillNames {
		if n == name {
			return Skill(i), true
		}
	}
	return 0, false
}

// Skills stores accumulated experience per track. Levels are a display
// concern and are not derived here.
type Skills struct {
	XP [skillCount]float64
}

// AddXP credits amount to skill; non-positive amounts and unknown skills are ignored.
func (s *Skills) AddXP(skill Skill, amount float64) {
	if s == nil || skill < 0 || skill >= skillCount || amount <= 0 {
		return
	}
	s.XP[skill] += amount
}

func (s *Skills) Get(skill Skill) float64 {
	if s == nil || skill < 0 || skill >= skillCount {
		return 0
	}
	return s.XP[skill]
}
