package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/emberfall/assets"
	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/input"
	"github.com/milk9111/emberfall/logger"
	"github.com/milk9111/emberfall/prefabs"
	"github.com/milk9111/emberfall/system"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "arena", "level name in levels/ (basename, .json optional)")
	mode := flag.String("mode", "", "difficulty mode (easy, normal, hard)")
	watch := flag.Bool("watch", true, "reload prefabs from disk when they change")
	tutorial := flag.Bool("tutorial", true, "open with the tutorial")
	element := flag.String("element", "", "element of the first run (fire, ice, water)")
	flag.Parse()

	logger.Init()
	log := logger.For("main")

	world, err := system.NewWorld(*levelName, *mode)
	if err != nil {
		log.WithError(err).Fatal("failed to build world")
	}
	el, err := startingElement(*element)
	if err != nil {
		log.WithError(err).Fatal("bad -element")
	}
	if el != component.ElementNone {
		world.Progress.SelectElement(el)
	}
	if *tutorial {
		world.StartTutorial()
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.WithError(err).Warn("prefab hot reload disabled")
		} else {
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("emberfall")

	sfx := assets.NewSFXBank(audio.NewContext(assets.SampleRate))
	game := NewGame(world, input.New(), sfx, watcher, *debug)

	log.WithFields(logrus.Fields{"level": *levelName, "mode": world.Progress.ModeName}).Info("starting")
	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}

func startingElement(s string) (component.Element, error) {
	el, ok := component.ParseElement(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return component.ElementNone, fmt.Errorf("unknown element %q", s)
	}
	return el, nil
}
