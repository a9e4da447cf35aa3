package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// StatCurve resolves a per-level stat. An explicit table entry wins, then the
// linear Base + PerLevel*level form, then Default.
type StatCurve struct {
	Table    map[int]float64 `yaml:"table"`
	Base     float64         `yaml:"base"`
	PerLevel float64         `yaml:"per_level"`
	Default  float64         `yaml:"default"`
}

func (c StatCurve) At(level int) float64 {
	if v, ok := c.Table[level]; ok {
		return v
	}
	if c.Base != 0 || c.PerLevel != 0 {
		return c.Base + c.PerLevel*float64(level)
	}
	return c.Default
}

type WindowSpec struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Contains reports whether t lies strictly inside the window.
func (w WindowSpec) Contains(t float64) bool {
	return t > w.Start && t < w.End
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	Volume float64 `yaml:"volume"`
}

type ClipSpec struct {
	Frames    int     `yaml:"frames"`
	FrameTime float64 `yaml:"frame_time"`
	Loop      bool    `yaml:"loop"`
}

type ElementSpec struct {
	BurnDPS           float64 `yaml:"burn_dps"`
	BurnDuration      float64 `yaml:"burn_duration"`
	FreezeDuration    float64 `yaml:"freeze_duration"`
	FrostbiteDPS      float64 `yaml:"frostbite_dps"`
	FrostbiteDuration float64 `yaml:"frostbite_duration"`
	SlowDuration      float64 `yaml:"slow_duration"`
	SlowMultiplier    float64 `yaml:"slow_multiplier"`
	WaterMultiplier   float64 `yaml:"water_multiplier"`
	// IceSlows makes ice apply a slow instead of the freeze/frostbite chain.
	IceSlows bool `yaml:"ice_slows"`
}

type BlockSpec struct {
	Chance          float64   `yaml:"chance"`
	Duration        float64   `yaml:"duration"`
	ParryMultiplier float64   `yaml:"parry_multiplier"`
	Sound           AudioSpec `yaml:"sound"`
	Text            string    `yaml:"text"`
}

type FireballSpec struct {
	Speed          float64 `yaml:"speed"`
	Damage         float64 `yaml:"damage"`
	DamagePerLevel float64 `yaml:"damage_per_level"`
	Lifetime       float64 `yaml:"lifetime"`
	HitRadius      float64 `yaml:"hit_radius"`
	BoundsMin      float64 `yaml:"bounds_min"`
	BoundsMax      float64 `yaml:"bounds_max"`
}

type EnemySpec struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	MinLevel int    `yaml:"min_level"`
	MaxLevel int    `yaml:"max_level"`

	Health StatCurve `yaml:"health"`
	XP     StatCurve `yaml:"xp"`
	Damage StatCurve `yaml:"damage"`

	Speed             float64 `yaml:"speed"`
	ChaseSpeed        float64 `yaml:"chase_speed"`
	AttackRange       float64 `yaml:"attack_range"`
	DetectionRange    float64 `yaml:"detection_range"`
	LoseRangeFactor   float64 `yaml:"lose_range_factor"`
	AttackDuration    float64 `yaml:"attack_duration"`
	AttackCooldown    float64 `yaml:"attack_cooldown"`
	IdleDuration      float64 `yaml:"idle_duration"`
	PatrolDuration    float64 `yaml:"patrol_duration"`
	RetargetInterval  float64 `yaml:"retarget_interval"`
	HurtDuration      float64 `yaml:"hurt_duration"`
	StunDuration      float64 `yaml:"stun_duration"`
	OptimalDistance   float64 `yaml:"optimal_distance"`
	DistanceTolerance float64 `yaml:"distance_tolerance"`
	BackOff           bool    `yaml:"back_off"`

	DamageWindow WindowSpec    `yaml:"damage_window"`
	DodgeWindow  *WindowSpec   `yaml:"dodge_window"`
	AttackTags   []string      `yaml:"attack_tags"`
	AttackSound  AudioSpec     `yaml:"attack_sound"`
	ParryText    string        `yaml:"parry_text"`
	Elements     ElementSpec   `yaml:"elements"`
	Block        *BlockSpec    `yaml:"block"`
	Fireball     *FireballSpec `yaml:"fireball"`

	Clips map[string]ClipSpec `yaml:"clips"`
	Color *YAMLColor          `yaml:"color"`
}

type EnemiesSpec struct {
	Enemies map[string]EnemySpec `yaml:"enemies"`
}

func LoadEnemiesSpec() (*EnemiesSpec, error) {
	spec, err := LoadSpec[EnemiesSpec]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type DashSpec struct {
	Duration float64 `yaml:"duration"`
	Speed    float64 `yaml:"speed"`
	Cooldown float64 `yaml:"cooldown"`
}

type PlayerAttackSpec struct {
	Duration        float64    `yaml:"duration"`
	Cooldown        float64    `yaml:"cooldown"`
	ActiveWindow    WindowSpec `yaml:"active_window"`
	Range           float64    `yaml:"range"`
	StunMultiplier  float64    `yaml:"stun_multiplier"`
	ParryMultiplier float64    `yaml:"parry_multiplier"`
	Sound           AudioSpec  `yaml:"sound"`
	HitSound        AudioSpec  `yaml:"hit_sound"`
}

type ParrySpec struct {
	Duration         float64   `yaml:"duration"`
	Window           float64   `yaml:"window"`
	Cooldown         float64   `yaml:"cooldown"`
	FeedbackDuration float64   `yaml:"feedback_duration"`
	FeedbackText     string    `yaml:"feedback_text"`
	WhiffSound       AudioSpec `yaml:"whiff_sound"`
	SuccessSound     AudioSpec `yaml:"success_sound"`
}

type ShakeSpec struct {
	Magnitude float64 `yaml:"magnitude"`
	Duration  float64 `yaml:"duration"`
}

type PlayerSpec struct {
	Name         string              `yaml:"name"`
	Speed        float64             `yaml:"speed"`
	Health       float64             `yaml:"health"`
	ImmunityTime float64             `yaml:"immunity_time"`
	Attack       PlayerAttackSpec    `yaml:"attack"`
	Dash         DashSpec            `yaml:"dash"`
	DashSound    AudioSpec           `yaml:"dash_sound"`
	Parry        ParrySpec           `yaml:"parry"`
	HitShake     ShakeSpec           `yaml:"hit_shake"`
	ParryShake   ShakeSpec           `yaml:"parry_shake"`
	DodgeText    string              `yaml:"dodge_text"`
	Clips        map[string]ClipSpec `yaml:"clips"`
	Color        *YAMLColor          `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ModeSpec struct {
	MaxHealth      float64 `yaml:"max_health"`
	BaseDamage     float64 `yaml:"base_damage"`
	DamageTaken    float64 `yaml:"damage_taken"`
	DamagePerLevel float64 `yaml:"damage_per_level"`
	HealPerLevel   float64 `yaml:"heal_per_level"`
	XPGrowth       float64 `yaml:"xp_growth"`
}

type DifficultySpec struct {
	Default       string              `yaml:"default"`
	StartXPToNext float64             `yaml:"start_xp_to_next"`
	ChestXP       float64             `yaml:"chest_xp"`
	Milestones    []int               `yaml:"milestones"`
	Modes         map[string]ModeSpec `yaml:"modes"`
}

func LoadDifficultySpec() (*DifficultySpec, error) {
	spec, err := LoadSpec[DifficultySpec]("difficulty.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Tuning bundles every prefab the game reads at startup.
type Tuning struct {
	Enemies    *EnemiesSpec
	Player     *PlayerSpec
	Difficulty *DifficultySpec
}

// LoadTuning loads all prefab specs.
func LoadTuning() (*Tuning, error) {
	enemies, err := LoadEnemiesSpec()
	if err != nil {
		return nil, err
	}
	player, err := LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	difficulty, err := LoadDifficultySpec()
	if err != nil {
		return nil, err
	}
	return &Tuning{Enemies: enemies, Player: player, Difficulty: difficulty}, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
