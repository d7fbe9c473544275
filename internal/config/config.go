// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	TickRate     = 60.0
	TickDuration = 1.0 / TickRate
	MaxDeltaTime = 0.06 // clamp for host-driven catch-up after a stall

	// The opponent controller runs on accumulated simulated time, far below
	// the physics rate.
	AIDecisionInterval = 0.5

	BaseMaxHealth = 1000.0
	StartingGold  = 150.0
	StartingMana  = 0.0

	GoldIncomeBase     = 16.0 // gold per second at age 1
	GoldIncomePerAge   = 2.8
	ManaIncomePerLevel = 1.6

	MaxAge                  = 6
	AgeUpCostBase           = 350.0
	AgeUpCostPerAge         = 180.0
	ManaUpgradeCostBase     = 120.0
	ManaUpgradeCostPerLevel = 80.0

	HealBaseManaCost = 120.0
	HealBaseAmount   = 65.0

	QueueCapacity = 5
	// Build times shrink with age, never below half the listed time.
	BuildTimeReductionPerAge = 0.06
	MinBuildTimeFactor       = 0.5

	BountyGoldFraction = 0.6
	BountyManaFraction = 0.25 // paid only when the killer's mana level grants conversion

	// Damage contract (see system/damage.go).
	ManaShieldMaxAbsorb     = 0.9
	ManaShieldDamagePerMana = 2.0
	MinDamage               = 1.0

	// Turret scaling.
	TurretFireInterval    = 1.2
	TurretDamageBase      = 10.0
	TurretDamageFactor    = 4.0 // damage grows ~quadratically with level
	TurretRangeBase       = 110.0
	TurretRangeStep       = 45.0
	TurretProjectileSpeed = 320.0
	TurretMinHitboxRadius = 24.0
	TurretMaxLevel        = 12
	TurretUpgradeCostBase = 100.0
	TurretUpgradeCostStep = 70.0
	TurretProtectionCap   = 0.5
	TurretProtectionDecay = 0.85

	// Turret ability ladder.
	TurretPierceLevel     = 3
	TurretChainLevel      = 6
	TurretBarrageLevel    = 9
	TurretPierceTargets   = 2
	TurretChainTargets    = 2
	TurretBarrageTargets  = 4
	TurretPierceCooldown  = 6.0
	TurretChainCooldown   = 9.0
	TurretBarrageCooldown = 14.0
	TurretPierceFactor    = 1.4
	TurretChainFactor     = 1.6
	TurretChainFalloff    = 0.65
	TurretBarrageFactor   = 1.2

	// Unit movement and combat.
	UnitSpacing         = 26.0 // same-owner spacing for melee footprints
	AttackRangeSlack    = 6.0  // single tolerance for both target scan and attack validation
	SplashMultiplier    = 0.5
	ProjectileLifetime  = 4.0
	ProjectileHitRadius = 14.0
	DroneCruiseHeight   = 60.0

	LaneHalfWidthDefault = 500.0
	LaneGrowthPerAge     = 40.0

	EffectLifetime = 0.6
)

// Config carries the host-tunable options recognized by the core.
type Config struct {
	Difficulty    string  `yaml:"difficulty"`
	StartingGold  float64 `yaml:"starting_gold"`
	StartingMana  float64 `yaml:"starting_mana"`
	GoldIncome    float64 `yaml:"gold_income"`
	ManaIncome    float64 `yaml:"mana_income"`
	LaneHalfWidth float64 `yaml:"lane_half_width"`
	ListenAddr    string  `yaml:"listen_addr"`
}

// Difficulty describes an opponent tier: the behavior profile the AI engine
// loads plus its economic handicaps.
type Difficulty struct {
	Profile          string
	IncomeMultiplier float64
	CostDiscount     float64
}

// Difficulties maps tier names to opponent handicaps.
var Difficulties = map[string]Difficulty{
	"easy":       {Profile: "easy", IncomeMultiplier: 0.8, CostDiscount: 0.0},
	"balanced":   {Profile: "balanced", IncomeMultiplier: 1.0, CostDiscount: 0.1},
	"hard":       {Profile: "hard", IncomeMultiplier: 1.25, CostDiscount: 0.2},
	"aggressive": {Profile: "aggressive", IncomeMultiplier: 1.1, CostDiscount: 0.15},
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Difficulty:    "balanced",
		StartingGold:  StartingGold,
		StartingMana:  StartingMana,
		GoldIncome:    GoldIncomeBase,
		ManaIncome:    ManaIncomePerLevel,
		LaneHalfWidth: LaneHalfWidthDefault,
		ListenAddr:    ":8080",
	}
}

// Load reads a YAML configuration file, filling unset fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if _, ok := Difficulties[cfg.Difficulty]; !ok {
		return cfg, fmt.Errorf("unknown difficulty tier %q", cfg.Difficulty)
	}
	if cfg.LaneHalfWidth <= 0 {
		cfg.LaneHalfWidth = LaneHalfWidthDefault
	}
	return cfg, nil
}

// AgeUpCost returns the gold price of advancing from the given age.
func AgeUpCost(age int) float64 {
	return AgeUpCostBase + float64(age)*AgeUpCostPerAge
}

// ManaUpgradeCost returns the gold price of the next mana-generation level.
func ManaUpgradeCost(level int) float64 {
	return ManaUpgradeCostBase + float64(level)*ManaUpgradeCostPerLevel
}

// TurretUpgradeCost returns the gold price of the next turret level.
func TurretUpgradeCost(level int) float64 {
	return TurretUpgradeCostBase + float64(level)*TurretUpgradeCostStep
}
