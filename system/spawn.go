package system

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/emberfall/entity"
	"github.com/milk9111/emberfall/levels"
	"github.com/milk9111/emberfall/logger"
	"github.com/milk9111/emberfall/prefabs"
)

// DefaultSpawnScript is the gating script shipped with the prefabs.
const DefaultSpawnScript = "spawn_rules.tengo"

// spawnDedupeRadius is the per-axis distance under which a spawn point counts
// as already occupied.
const spawnDedupeRadius = 10.0

var spawnNumber = regexp.MustCompile(`^[A-Za-z_]+(\d+)$`)

// SpawnRule is the script's verdict for one spawn point.
type SpawnRule struct {
	Allow            bool
	IgnoreCollisions bool
}

// Spawner turns level spawn points into enemies. Which points may spawn is
// decided by a tengo script so the gating can be tuned without a rebuild.
type Spawner struct {
	factory    *entity.Factory
	scriptPath string
	compiled   *tengo.Compiled
	log        *logrus.Entry
}

// NewSpawner compiles the gating script (disk copy first, then embedded).
func NewSpawner(factory *entity.Factory, scriptPath string) (*Spawner, error) {
	if scriptPath == "" {
		scriptPath = DefaultSpawnScript
	}
	s := &Spawner{factory: factory, scriptPath: scriptPath, log: logger.For("spawner")}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload recompiles the script. On error the previous script stays active.
func (s *Spawner) Reload() error {
	src, err := prefabs.LoadScript(s.scriptPath)
	if err != nil {
		return fmt.Errorf("spawner: load %s: %w", s.scriptPath, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("kind", "")
	_ = script.Add("name", "")
	_ = script.Add("number", 0)
	_ = script.Add("player_level", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("spawner: compile %s: %w", s.scriptPath, err)
	}
	s.compiled = compiled
	s.log.WithField("script", s.scriptPath).Debug("spawn rules loaded")
	return nil
}

// Evaluate runs the gating script for one spawn point.
func (s *Spawner) Evaluate(kind entity.Kind, name string, number, playerLevel int) (SpawnRule, error) {
	c := s.compiled
	if err := c.Set("kind", string(kind)); err != nil {
		return SpawnRule{}, err
	}
	if err := c.Set("name", name); err != nil {
		return SpawnRule{}, err
	}
	if err := c.Set("number", number); err != nil {
		return SpawnRule{}, err
	}
	if err := c.Set("player_level", playerLevel); err != nil {
		return SpawnRule{}, err
	}
	if err := c.Run(); err != nil {
		return SpawnRule{}, fmt.Errorf("spawner: run %s: %w", s.scriptPath, err)
	}
	return SpawnRule{
		Allow:            c.Get("allow").Bool(),
		IgnoreCollisions: c.Get("ignore_collisions").Bool(),
	}, nil
}

// Spawn creates an enemy for every allowed point that has no enemy standing
// on it yet. New enemies start patrolling. Bad points are logged and skipped.
func (s *Spawner) Spawn(points []levels.SpawnPoint, existing []*entity.Enemy, playerLevel int) []*entity.Enemy {
	var spawned []*entity.Enemy
	for _, pt := range points {
		log := s.log.WithFields(logrus.Fields{"spawn": pt.Name, "type": pt.Type})

		_, spec, err := s.factory.Resolve(pt.Type)
		if err != nil {
			log.WithError(err).Error("skipping spawn point")
			continue
		}
		rule, err := s.Evaluate(entity.Kind(spec.Kind), pt.Name, SpawnNumber(pt.Name), playerLevel)
		if err != nil {
			log.WithError(err).Error("spawn rules failed")
			continue
		}
		if !rule.Allow || occupied(pt, existing) || occupied(pt, spawned) {
			continue
		}

		e, err := s.factory.Create(pt.Type, pt.X, pt.Y, entity.Options{IgnoreCollisions: rule.IgnoreCollisions})
		if err != nil {
			log.WithError(err).Error("skipping spawn point")
			continue
		}
		e.StartPatrol()
		spawned = append(spawned, e)
		log.WithFields(logrus.Fields{"id": e.ID, "level": e.Level}).Info("spawned")
	}
	return spawned
}

// SpawnNumber extracts the trailing number of a spawn label ("Demon4" -> 4),
// or 0 when there is none.
func SpawnNumber(name string) int {
	m := spawnNumber.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func occupied(pt levels.SpawnPoint, enemies []*entity.Enemy) bool {
	for _, e := range enemies {
		if e == nil {
			continue
		}
		if math.Abs(e.Pos.X-pt.X) < spawnDedupeRadius && math.Abs(e.Pos.Y-pt.Y) < spawnDedupeRadius {
			return true
		}
	}
	return false
}
