package catalog

import "testing"

func TestSpawnable_MenuOrderAndMissingKeys(t *testing.T) {
	c := Default()
	units := c.Spawnable("barracks")
	want := []string{"militia", "swordsman", "archer"}
	if len(units) != len(want) {
		t.Fatalf("expected %d spawnable units, got %d", len(want), len(units))
	}
	for i, k := range want {
		if units[i] == nil || units[i].Key != k {
			t.Fatalf("slot %d: expected %s, got %+v", i, k, units[i])
		}
	}

	c.Buildings["barracks"].CanProduce = append(c.Buildings["barracks"].CanProduce, "ghost")
	units = c.Spawnable("barracks")
	if units[3] != nil {
		t.Fatalf("unknown unit key should come back as nil entry")
	}

	if c.Spawnable("storehouse") != nil {
		t.Fatalf("building without roster should have no spawnable list")
	}
	if c.Spawnable("nope") != nil {
		t.Fatalf("unknown building should have no spawnable list")
	}
}

func TestCanProduce(t *testing.T) {
	c := Default()
	if !c.CanProduce("town_hall", "worker") {
		t.Fatalf("town hall should produce workers")
	}
	if c.CanProduce("town_hall", "archer") {
		t.Fatalf("town hall should not produce archers")
	}
}
