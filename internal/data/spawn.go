package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ActorSpawn places Count actors of a template. Spawn order is file order.
type ActorSpawn struct {
	ActorID int32   `yaml:"actor_id"`
	Name    string  `yaml:"name"` // optional display name override
	X       float64 `yaml:"x"`
	Z       float64 `yaml:"z"`
	Count   int     `yaml:"count"`
}

// ResourceSpawn places one harvestable node.
type ResourceSpawn struct {
	Name         string  `yaml:"name"`
	X            float64 `yaml:"x"`
	Z            float64 `yaml:"z"`
	Uses         int     `yaml:"uses"`          // 0 = config default
	RespawnDelay int64   `yaml:"respawn_delay"` // ticks; 0 = config default
}

// SpawnList is the initial population of the world.
type SpawnList struct {
	Actors    []ActorSpawn    `yaml:"actors"`
	Resources []ResourceSpawn `yaml:"resources"`
}

// LoadSpawnList loads spawn entries from a YAML file.
func LoadSpawnList(path string) (*SpawnList, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f SpawnList
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	for i := range f.Actors {
		if f.Actors[i].Count < 1 {
			f.Actors[i].Count = 1
		}
	}
	return &f, nil
}
