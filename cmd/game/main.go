package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/wallclimb/cmd/game/configs"
	"github.com/younwookim/wallclimb/internal/application/game"
	"github.com/younwookim/wallclimb/internal/application/movement"
	"github.com/younwookim/wallclimb/internal/application/replay"
	"github.com/younwookim/wallclimb/internal/application/scene/playing"
	"github.com/younwookim/wallclimb/internal/application/system"
	"github.com/younwookim/wallclimb/internal/infrastructure/config"
)

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	configFlag := flag.String("config", "", "Load configs from this directory instead of the embedded defaults")
	watchFlag := flag.Bool("watch", false, "Reload player.yaml when it changes (needs -config)")
	traceFlag := flag.Bool("trace", false, "Log controller state changes")
	flag.Parse()

	loader := newLoader(*configFlag)
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := playing.Options{RecordPath: *recordFlag}
	stageName := cfg.Game.Stage
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		stageName = data.Stage
		opts.Seed = data.Seed
		opts.Input = replay.NewReplayer(*data)
		cfg.Game.Display.Framerate = data.TPS
		log.Printf("Replaying %s: %d frames on %s (seed: %d)", *replayFlag, len(data.Frames), data.Stage, data.Seed)
	}
	if *traceFlag {
		opts.Tracer = traceReport
	}

	// Load stage
	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}
	stage := system.LoadStage(stageCfg)

	scn, err := playing.New(cfg, stage, opts)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	display := cfg.Game.Display
	g := game.New(scn, display.ScreenWidth, display.ScreenHeight, display.Framerate)

	if *watchFlag {
		if *configFlag == "" {
			log.Printf("-watch needs -config, embedded configs cannot change")
		} else {
			watcher, err := config.NewWatcher(*configFlag)
			if err != nil {
				log.Fatalf("Failed to watch %s: %v", *configFlag, err)
			}
			defer func() { _ = watcher.Close() }()
			go logWatchErrors(watcher.Errors)
			g.Watch(watcher.Events, func(path string) error {
				return reloadPlayer(loader, scn, path)
			})
			log.Printf("Watching %s for changes", *configFlag)
		}
	}

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Wall Climb")
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	g.Close()
}

// newLoader reads from dir, or from the embedded configs when dir is empty.
func newLoader(dir string) *config.Loader {
	if dir != "" {
		return config.NewLoader(dir)
	}
	return config.NewFSLoader(configs.FS, "configs")
}

// reloadPlayer restarts the session when player.yaml changes. Other files
// are only picked up on the next launch.
func reloadPlayer(loader *config.Loader, scn *playing.Playing, path string) error {
	if filepath.Base(path) != config.PlayerFile {
		log.Printf("%s changed, restart to apply", filepath.Base(path))
		return nil
	}
	player, err := loader.LoadPlayer()
	if err != nil {
		return err
	}
	return scn.Reload(player)
}

func logWatchErrors(errs <-chan error) {
	for err := range errs {
		log.Printf("Config watcher: %v", err)
	}
}

func traceReport(r movement.Report) {
	if r.State == r.Previous && !r.Landed && !r.LeftGround && len(r.Timers) == 0 {
		return
	}
	log.Printf("tick %d: %s -> %s rules=%v timers=%v landed=%t left=%t",
		r.Tick, r.Previous, r.State, r.Rules, r.Timers, r.Landed, r.LeftGround)
}
