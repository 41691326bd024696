// Command worldsim wires the simulation core's components together into
// a runnable headless host: world generation, the ocean field, a
// handful of ships, the fixed-step scheduler and the Query API, driven
// by a wall-clock loop until interrupted.
//
// This mirrors the teacher's cmd/mini-mc entrypoint (window setup, world
// construction, then a driving loop) with the renderer/input/player
// pieces stripped out, since rendering and input are explicit non-goals
// here — the loop drives simulation state only.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"sailworld/internal/gamelog"
	"sailworld/internal/ocean"
	"sailworld/internal/profiling"
	"sailworld/internal/queryapi"
	"sailworld/internal/shipphysics"
	"sailworld/internal/sim"
	"sailworld/internal/simconfig"
	"sailworld/internal/voxelworld"
)

var log = gamelog.For("worldsim")

func main() {
	seed := flag.Int64("seed", 1, "world generation seed")
	ships := flag.Int("ships", 2, "number of ships to spawn")
	runFor := flag.Duration("run-for", 0, "stop after this long (0 = run until interrupted)")
	flag.Parse()

	cfg := simconfig.Default(*seed)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	world := voxelworld.NewWorld(voxelworld.DefaultGeneratorParams(cfg.World.Seed))
	defer world.Close()

	waveComponents := ocean.DefaultComponents(cfg.Ocean.WaveComponentCount, 0.6)
	field := ocean.NewField(cfg.World.Seed, waveComponents, cfg.Ocean.TidalPeriodSeconds)

	api := queryapi.New(world, field)

	spawnCoord := voxelworld.ChunkCoord{CX: 0, CZ: 0}
	world.StreamAround(spawnCoord, cfg.Streaming.LoadRadius, cfg.Streaming.KeepRadius)

	for i := 0; i < *ships; i++ {
		x := float32(i*12) - float32(*ships*6)
		groundY := float32(world.HeightAt(int(x), 0))
		waterY := field.SampleHeight(x, 0, 0)
		spawnY := waterY
		if groundY > spawnY {
			spawnY = groundY
		}
		body := shipphysics.NewBody(uuid.New(), mgl32.Vec3{x, spawnY + 1, 0}, defaultHull(), 25)
		api.AddShip(body)
		log.Info("spawned ship", "ship", body.ID.String(), "position", body.Position)
	}

	scheduler := sim.NewScheduler(sim.NewSystemClock(), cfg.Physics)

	var deadline <-chan time.Time
	if *runFor > 0 {
		timer := time.NewTimer(*runFor)
		defer timer.Stop()
		deadline = timer.C
	}

	const reportEvery = 5 * time.Second
	reportTicker := time.NewTicker(reportEvery)
	defer reportTicker.Stop()

	frameTicker := time.NewTicker(time.Second / time.Duration(cfg.Physics.TickRate))
	defer frameTicker.Stop()

	log.Info("simulation started", "seed", cfg.World.Seed, "ships", *ships, "tick_rate_hz", cfg.Physics.TickRate)

	for {
		select {
		case <-ctx.Done():
			log.Info("simulation stopping", "reason", "interrupt")
			return
		case <-deadline:
			log.Info("simulation stopping", "reason", "run-for elapsed")
			return
		case <-reportTicker.C:
			log.Info("tick report", "sim_time_s", scheduler.SimTime(), "hot_paths", profiling.TopN(5))
			profiling.ResetFrame()
		case <-frameTicker.C:
			scheduler.Advance(api.Ships(), field, func() {
				world.StreamAround(spawnCoord, cfg.Streaming.LoadRadius, cfg.Streaming.KeepRadius)
			})
		}
	}
}

// defaultHull returns a minimal single-mast sloop component layout: a
// hull, a sail and a cannon mount, matching the component tags
// shipphysics.Step evaluates forces against.
func defaultHull() []shipphysics.ComponentSample {
	return []shipphysics.ComponentSample{
		{
			LocalPos: mgl32.Vec3{0, 0, 0},
			Mass:     800,
			Tag:      shipphysics.TagHull,
			Health:   1,
		},
		{
			LocalPos:      mgl32.Vec3{0, 4, 0},
			Mass:          60,
			Tag:           shipphysics.TagSail,
			Health:        1,
			Area:          20,
			TrimDirection: mgl32.Vec3{0, 0, 1},
		},
		{
			LocalPos: mgl32.Vec3{0, 0.5, 2},
			Mass:     40,
			Tag:      shipphysics.TagCannonMount,
			Health:   1,
		},
	}
}
