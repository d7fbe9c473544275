// internal/defs/library.go
package defs

// UnitLibrary is the map of all unit definitions, keyed by their ID. It is
// populated with the built-in catalog and may be replaced wholesale by
// LoadUnitDefinitions.
var UnitLibrary = buildDefaultLibrary()

// UnitsForAge returns the IDs of every unit unlocked at or below the given
// age, in a stable order.
func UnitsForAge(age int) []string {
	var ids []string
	for _, id := range unitOrder {
		if UnitLibrary[id].Age <= age {
			ids = append(ids, id)
		}
	}
	return ids
}

// CheapestUnitForAge returns the lowest-cost unit available at the given age.
func CheapestUnitForAge(age int) (UnitDefinition, bool) {
	var best UnitDefinition
	found := false
	for _, id := range unitOrder {
		def := UnitLibrary[id]
		if def.Age > age {
			continue
		}
		if !found || def.Cost < best.Cost {
			best = def
			found = true
		}
	}
	return best, found
}

// unitOrder keeps catalog iteration deterministic.
var unitOrder = []string{
	"MILITIA", "SLINGER",
	"SPEARMAN", "ARCHER", "ACOLYTE",
	"KNIGHT", "CROSSBOWMAN",
	"MAGE", "PYROMANCER",
	"PALADIN", "ARBALEST",
	"WARLOCK", "BOMBARD", "WRAITH",
}

func buildDefaultLibrary() map[string]UnitDefinition {
	lib := map[string]UnitDefinition{
		"MILITIA": {
			ID: "MILITIA", Name: "Militia", Age: 1,
			Cost: 25, BuildTime: 2.0, Health: 90, Speed: 55,
			Combat: CombatStats{Class: ClassMelee, Damage: 9, Range: 30, Rate: 1.0},
		},
		"SLINGER": {
			ID: "SLINGER", Name: "Slinger", Age: 1,
			Cost: 35, BuildTime: 2.5, Health: 60, Speed: 50,
			Combat: CombatStats{Class: ClassRanged, Damage: 7, Range: 140, Rate: 0.8, ProjectileSpeed: 260},
		},
		"SPEARMAN": {
			ID: "SPEARMAN", Name: "Spearman", Age: 2,
			Cost: 55, BuildTime: 3.0, Health: 150, Speed: 55,
			Combat: CombatStats{Class: ClassMelee, Damage: 16, Range: 36, Rate: 1.0},
		},
		"ARCHER": {
			ID: "ARCHER", Name: "Archer", Age: 2,
			Cost: 70, BuildTime: 3.5, Health: 85, Speed: 50,
			Combat: CombatStats{Class: ClassRanged, Damage: 13, Range: 170, Rate: 0.9, ProjectileSpeed: 300},
		},
		"ACOLYTE": {
			ID: "ACOLYTE", Name: "Acolyte", Age: 2,
			Cost: 85, BuildTime: 4.0, Health: 75, Speed: 48,
			Combat: CombatStats{Class: ClassMelee, Damage: 5, Range: 28, Rate: 0.7},
			Skill: &SkillDefinition{
				Kind: SkillHeal, Power: 22, Range: 120, ManaCost: 14, Cooldown: 3.0,
			},
		},
		"KNIGHT": {
			ID: "KNIGHT", Name: "Knight", Age: 3,
			Cost: 120, BuildTime: 4.5, Health: 320, Speed: 45,
			Combat:     CombatStats{Class: ClassMelee, Damage: 26, Range: 38, Rate: 0.9},
			ManaShield: true,
		},
		"CROSSBOWMAN": {
			ID: "CROSSBOWMAN", Name: "Crossbowman", Age: 3,
			Cost: 105, BuildTime: 4.0, Health: 110, Speed: 48,
			Combat: CombatStats{
				Class: ClassRanged, Damage: 11, Range: 185, Rate: 0.5,
				Burst: 3, BurstInterval: 0.18, ProjectileSpeed: 340,
			},
		},
		"MAGE": {
			ID: "MAGE", Name: "Mage", Age: 4,
			Cost: 160, BuildTime: 5.0, Health: 95, Speed: 44,
			Combat: CombatStats{Class: ClassRanged, Damage: 14, Range: 190, Rate: 0.6, ProjectileSpeed: 280},
			Skill: &SkillDefinition{
				Kind: SkillArea, Power: 34, Range: 210, Radius: 55, ManaCost: 28, Cooldown: 5.0,
			},
		},
		"PYROMANCER": {
			ID: "PYROMANCER", Name: "Pyromancer", Age: 4,
			Cost: 185, BuildTime: 5.5, Health: 140, Speed: 42,
			Combat: CombatStats{Class: ClassMelee, Damage: 8, Range: 34, Rate: 0.8},
			Skill: &SkillDefinition{
				Kind: SkillContinuous, Power: 9, Range: 90, ManaCost: 4, Cooldown: 0.25,
			},
		},
		"PALADIN": {
			ID: "PALADIN", Name: "Paladin", Age: 5,
			Cost: 260, BuildTime: 6.0, Health: 520, Speed: 42,
			Combat:          CombatStats{Class: ClassMelee, Damage: 34, Range: 40, Rate: 0.8},
			DamageReduction: 0.25,
			Skill: &SkillDefinition{
				Kind: SkillDirect, Power: -45, Range: 110, ManaCost: 20, Cooldown: 4.0,
			},
		},
		"ARBALEST": {
			ID: "ARBALEST", Name: "Arbalest", Age: 5,
			Cost: 230, BuildTime: 5.5, Health: 150, Speed: 44,
			Combat: CombatStats{
				Class: ClassRanged, Damage: 30, Range: 210, Rate: 0.45,
				ProjectileSpeed: 380, Pierce: 2,
			},
		},
		"WARLOCK": {
			ID: "WARLOCK", Name: "Warlock", Age: 6,
			Cost: 340, BuildTime: 6.5, Health: 180, Speed: 40,
			Combat: CombatStats{
				Class: ClassRanged, Damage: 20, Range: 200, Rate: 0.6,
				ProjectileSpeed: 300, Homing: true,
			},
			ManaLeech: 0.3,
			Skill: &SkillDefinition{
				Kind: SkillDirect, Power: 70, Range: 180, ManaCost: 35, Cooldown: 4.5,
			},
		},
		"BOMBARD": {
			ID: "BOMBARD", Name: "Bombard", Age: 6,
			Cost: 420, BuildTime: 7.5, Health: 260, Speed: 34,
			Combat: CombatStats{
				Class: ClassRanged, Damage: 48, Range: 240, Rate: 0.3,
				ProjectileSpeed: 220, SplashRadius: 50, SplitCount: 3, SplitDamage: 12, Falling: true,
			},
		},
		"WRAITH": {
			ID: "WRAITH", Name: "Wraith", Age: 6,
			Cost: 300, BuildTime: 5.0, Health: 130, Speed: 75,
			Combat: CombatStats{
				Class: ClassMelee, Damage: 42, Range: 32, Rate: 1.1,
				BlinkRange: 160, BlinkCooldown: 7.0,
			},
			Ghost: true,
		},
	}
	return lib
}
