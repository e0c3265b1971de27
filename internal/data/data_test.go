package data

import (
	"os"
	"path/filepath"
	"testing"
)

const actorYAML = `
actors:
  - actor_id: 1
    name: Player
    hp: 10
    combatant: true
    gatherer: true
    step_length: 1
  - actor_id: 100
    name: Goblin
    hp: 5
    damage: 1
    turn_length: 4
    combatant: true
    retaliate: true
`

func TestParseActorTable(t *testing.T) {
	tbl, err := ParseActorTable([]byte(actorYAML))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Count() != 2 {
		t.Fatalf("expected 2 templates, got %d", tbl.Count())
	}
	g := tbl.Get(100)
	if g == nil || g.Name != "Goblin" || !g.Retaliate || g.TurnLength != 4 {
		t.Fatalf("unexpected goblin template %+v", g)
	}
	if tbl.Get(2) != nil {
		t.Fatal("unknown id returned a template")
	}
}

func TestParseActorTableRejectsBadRows(t *testing.T) {
	for name, doc := range map[string]string{
		"zero hp":   "actors:\n  - actor_id: 1\n    hp: 0\n",
		"duplicate": "actors:\n  - actor_id: 1\n    hp: 1\n  - actor_id: 1\n    hp: 2\n",
		"malformed": "actors: [",
	} {
		if _, err := ParseActorTable([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadSpawnListDefaultsCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawn_list.yaml")
	doc := `
actors:
  - actor_id: 100
    x: 1
    z: 0
resources:
  - name: Tree
    x: 3
    z: 0
    uses: 5
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	sl, err := LoadSpawnList(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sl.Actors) != 1 || sl.Actors[0].Count != 1 {
		t.Fatalf("unexpected actors %+v", sl.Actors)
	}
	if len(sl.Resources) != 1 || sl.Resources[0].Uses != 5 {
		t.Fatalf("unexpected resources %+v", sl.Resources)
	}
}
