package app

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/diegok/hoopsim/internal/audio"
	"github.com/diegok/hoopsim/internal/config"
	"github.com/diegok/hoopsim/internal/game"
	"github.com/diegok/hoopsim/internal/spectate"
	"github.com/diegok/hoopsim/internal/ui"
)

const shutdownTimeout = 2 * time.Second

// App owns the game and drives it from one goroutine: terminal events and
// ticks are handled in the same select, so input and physics never race.
type App struct {
	cfg      *config.Config
	screen   *ui.Screen
	renderer *ui.Renderer
	game     *game.Game
	keys     *ui.KeyHolder

	hub       *spectate.Hub
	spectator *spectate.Server

	logFile *os.File
	sound   bool

	quit     chan struct{}
	stopOnce sync.Once
	sigChan  chan os.Signal
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:  cfg,
		quit: make(chan struct{}),
	}
}

// Run sets everything up, runs the loop until quit and tears down.
func (a *App) Run() error {
	if err := a.setupLogging(); err != nil {
		return err
	}

	// Audio is optional; a failure just means silence
	if !a.cfg.Mute {
		if err := audio.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			a.sound = true
		}
	}

	// Spectators first so a bad address fails before the terminal is taken over
	if a.cfg.SpectateAddr != "" {
		a.hub = spectate.NewHub(spectate.DefaultMaxSpectators, nil)
		a.spectator = spectate.NewServer(a.cfg.SpectateAddr, a.hub)
		if err := a.spectator.Start(); err != nil {
			a.spectator = nil
			a.cleanup()
			return errors.Wrap(err, "failed to start spectator server")
		}
	}

	screen, err := ui.InitScreen()
	if err != nil {
		a.cleanup()
		return errors.Wrap(err, "failed to initialize screen")
	}
	a.screen = screen
	a.renderer = ui.NewRenderer(screen)

	a.game = game.NewGame(a.cfg.Tuning, a.cfg.Power, a.renderer, a.renderer)
	a.game.Rule = a.cfg.Scoring
	a.renderer.SetCourt(a.game.Court)
	a.keys = ui.NewKeyHolder(a.cfg.HoldTicks)

	log.Printf("START: fps=%d power=%.2f scoring=%s hold=%d", a.cfg.FPS, a.cfg.Power, a.cfg.Scoring, a.cfg.HoldTicks)

	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-a.sigChan:
			a.stop()
		case <-a.quit:
		}
	}()

	runErr := a.mainLoop()
	a.cleanup()
	return runErr
}

// setupLogging sends log output to the --log file, or nowhere; the terminal
// belongs to the renderer.
func (a *App) setupLogging() error {
	if a.cfg.LogPath == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(a.cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open log file %s", a.cfg.LogPath)
	}
	a.logFile = f
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}

func (a *App) mainLoop() error {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.FPS))
	defer ticker.Stop()

	a.render()
	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			if a.handleEvent(ev) {
				a.stop()
				return nil
			}

		case now := <-ticker.C:
			a.tick(now)
		}
	}
}

// tick advances the simulation one step and pushes the result to every sink
func (a *App) tick(now time.Time) {
	for _, ev := range a.keys.Tick() {
		a.game.HandleKey(ev)
	}

	res := a.game.Update(now)
	a.logEvents(res)
	a.playSounds(res)

	if a.hub != nil {
		a.hub.Broadcast(a.game.Snapshot())
	}
	a.render()
}

// handleEvent processes keyboard, mouse and resize events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventMouse:
		x, y := ev.Position()
		a.renderer.Camera().Drag(x, y, ev.Buttons()&tcell.Button1 != 0)

	case *tcell.EventResize:
		a.screen.Sync()
		a.render()
	}

	return false
}

// handleKey feeds one terminal key press to the game.
// Returns true for quit keys.
func (a *App) handleKey(key tcell.Key, r rune) bool {
	if ui.IsQuitKey(key, r) {
		return true
	}

	wasShot := a.game.Ball.Mode == game.ModeShot
	for _, ev := range a.keys.Press(ui.KeyToCommand(key, r)) {
		a.game.HandleKey(ev)
	}
	if !wasShot && a.game.Ball.Mode == game.ModeShot {
		b := a.game.Ball
		log.Printf("SHOOT: hoop=%d power=%.2f from (%.1f,%.1f,%.1f) v=(%.3f,%.3f,%.3f)",
			b.TargetHoop(), b.Power, b.Position.X(), b.Position.Y(), b.Position.Z(),
			b.Velocity.X(), b.Velocity.Y(), b.Velocity.Z())
		if a.sound {
			audio.PlayShot()
		}
	}
	return false
}

func (a *App) logEvents(res game.UpdateResult) {
	if res.Scored {
		log.Printf("SCORE: tick=%d hoop=%d score=%d", a.game.Tick, res.Hoop, a.game.Score)
	}
	if res.Reset {
		log.Printf("RESET: tick=%d shot settled", a.game.Tick)
	}
}

func (a *App) playSounds(res game.UpdateResult) {
	if !a.sound {
		return
	}
	switch {
	case res.Scored:
		audio.PlayScore()
	case res.Bounced:
		audio.PlayBounce(a.game.Ball.Bounces)
	case res.WallHit:
		audio.PlayWall()
	}
}

func (a *App) render() {
	a.renderer.Render(a.game.Ball.Mode, a.game.Ball.Bounces)
}

func (a *App) stop() {
	a.stopOnce.Do(func() { close(a.quit) })
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	if a.sound {
		audio.Close()
		a.sound = false
	}

	if a.spectator != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.spectator.Stop(ctx); err != nil {
			log.Printf("spectator shutdown: %v", err)
		}
		cancel()
		a.spectator = nil
	}

	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}

	if a.sigChan != nil {
		signal.Stop(a.sigChan)
	}

	if a.logFile != nil {
		log.Printf("STOP")
		log.SetOutput(io.Discard)
		a.logFile.Close()
		a.logFile = nil
	}
}
