// Command motionsim runs the movement controller without a window, driven by
// a recorded replay or a tengo scenario, and prints what happened.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/younwookim/wallclimb/cmd/game/configs"
	"github.com/younwookim/wallclimb/internal/application/movement"
	"github.com/younwookim/wallclimb/internal/infrastructure/config"
)

func main() {
	replayFlag := flag.String("replay", "", "Replay file to play back")
	scenarioFlag := flag.String("scenario", "", "Tengo scenario to run (e.g., -scenario scenarios/climb.tengo)")
	stageFlag := flag.String("stage", "", "Stage to load (default: the replay's stage or game.json)")
	configFlag := flag.String("config", "", "Load configs from this directory instead of the embedded defaults")
	maxFlag := flag.Int("max", 36000, "Stop after this many ticks (0 = no limit)")
	seedFlag := flag.Int64("seed", 1, "Feedback seed for scenarios")
	traceFlag := flag.Bool("trace", false, "Log every controller report")
	flag.Parse()

	loader := config.NewFSLoader(configs.FS, "configs")
	if *configFlag != "" {
		loader = config.NewLoader(*configFlag)
	}

	opts := options{
		loader:       loader,
		stage:        *stageFlag,
		replayPath:   *replayFlag,
		scenarioPath: *scenarioFlag,
		maxTicks:     *maxFlag,
		seed:         *seedFlag,
	}
	if *traceFlag {
		opts.tracer = func(r movement.Report) {
			log.Printf("tick %d: %s -> %s -> %s rules=%v timers=%v",
				r.Tick, r.Previous, r.Selected, r.State, r.Rules, r.Timers)
		}
	}

	res, err := run(opts)
	if err != nil {
		log.Fatalf("motionsim: %v", err)
	}
	res.print(os.Stdout)
}
