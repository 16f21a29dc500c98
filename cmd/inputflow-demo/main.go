// Command inputflow-demo runs the action engine against live terminal
// input. Terminals report key presses but never key releases, so a short
// latch auto-releases keys that stop repeating; squint accordingly when
// testing hold conditions.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/binding"
	"github.com/lixenwraith/inputflow/condition"
	"github.com/lixenwraith/inputflow/core"
	"github.com/lixenwraith/inputflow/device"
	"github.com/lixenwraith/inputflow/engine"
	"github.com/lixenwraith/inputflow/modifier"
	"github.com/lixenwraith/inputflow/profile"
)

const (
	tickRate = 60
	// keys auto-release when the terminal stops repeating them
	keyLatchMs = 150
)

type demo struct {
	screen tcell.Screen
	input  *device.State
	eng    *engine.Engine

	gameplay core.Entity
	menu     core.Entity
	move     core.Entity
	jump     core.Entity
	pause    core.Entity
	scroll   core.Entity

	lastSeen  map[binding.Key]time.Time
	audioInit bool
	log       []string
}

func main() {
	d, err := newDemo()
	if err != nil {
		log.Fatalf("setup failed: %v", err)
	}
	defer d.screen.Fini()
	d.run()
}

func newDemo() (*demo, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	d := &demo{
		screen:   screen,
		input:    device.NewState(),
		lastSeen: make(map[binding.Key]time.Time),
	}
	if err := d.initAudio(); err != nil {
		// non-fatal, the demo can run silent
		log.Printf("audio init failed: %v", err)
	}
	if err := d.initEngine(); err != nil {
		screen.Fini()
		return nil, err
	}
	return d, nil
}

func (d *demo) initAudio() error {
	rate := beep.SampleRate(44100)
	err := speaker.Init(rate, rate.N(time.Second/10))
	if err == nil {
		d.audioInit = true
	}
	return err
}

func (d *demo) initEngine() error {
	b := engine.NewBuilder()
	engine.MustRegister(b.RegisterSchedule("main"))
	engine.MustRegister(b.RegisterContextType(engine.ContextType{Name: "gameplay", Schedule: "main"}))
	engine.MustRegister(b.RegisterContextType(engine.ContextType{Name: "menu", Schedule: "main", Priority: 10}))

	eng, err := b.Build(d.input)
	if err != nil {
		return err
	}
	d.eng = eng

	if path := os.Getenv("INPUTFLOW_PROFILE"); path != "" {
		res, err := profile.LoadFile(path, eng)
		if err != nil {
			return err
		}
		return d.adopt(res)
	}

	d.gameplay, err = eng.SpawnContext("gameplay")
	if err != nil {
		return err
	}
	d.menu, err = eng.SpawnContext("menu")
	if err != nil {
		return err
	}
	eng.SetActive(d.menu, false)

	// A/D drive one axis; both held cancel out
	d.move, _ = eng.SpawnAction(d.gameplay, "move", action.DimAxis1D, action.Settings{})
	eng.AddBinding(d.move, binding.KeyBinding('d'), nil, nil)
	eng.AddBinding(d.move, binding.KeyBinding('a'),
		[]modifier.Modifier{modifier.NewNegate()}, nil)

	d.jump, _ = eng.SpawnAction(d.gameplay, "jump", action.DimBool,
		action.Settings{ConsumeInput: true})
	eng.AddBinding(d.jump, binding.KeyBinding(' '), nil,
		[]condition.Condition{condition.NewHold(0.3)})

	// tab flips between menu and gameplay; RequireReset keeps the held
	// key from leaking into the newly activated context
	d.pause, _ = eng.SpawnAction(d.gameplay, "open-menu", action.DimBool,
		action.Settings{ConsumeInput: true, RequireReset: true})
	eng.AddBinding(d.pause, binding.KeyBinding(binding.KeyTab), nil,
		[]condition.Condition{condition.NewPress()})

	d.scroll, _ = eng.SpawnAction(d.menu, "scroll", action.DimAxis1D,
		action.Settings{ConsumeInput: true})
	eng.AddBinding(d.scroll, binding.KeyBinding('d'), nil, nil)
	eng.AddBinding(d.scroll, binding.KeyBinding('a'),
		[]modifier.Modifier{modifier.NewNegate()}, nil)
	closeMenu, _ := eng.SpawnAction(d.menu, "close-menu", action.DimBool,
		action.Settings{ConsumeInput: true, RequireReset: true})
	eng.AddBinding(closeMenu, binding.KeyBinding(binding.KeyTab), nil,
		[]condition.Condition{condition.NewPress()})

	eng.ObserveFunc([]action.Events{action.EventFire}, func(e engine.Event) {
		switch e.Action {
		case d.jump:
			d.playTone(880)
			d.note("jump fired")
		case d.pause:
			d.eng.SetActive(d.gameplay, false)
			d.eng.SetActive(d.menu, true)
			d.note("menu opened")
		case closeMenu:
			d.eng.SetActive(d.menu, false)
			d.eng.SetActive(d.gameplay, true)
			d.note("menu closed")
		}
	})
	eng.ObserveFunc([]action.Events{action.EventCancel}, func(e engine.Event) {
		if e.Action == d.jump {
			d.note(fmt.Sprintf("jump canceled after %.2fs", e.Timing.ElapsedSecs))
		}
	})
	return nil
}

// adopt wires the demo's named actions after a profile load
func (d *demo) adopt(res *profile.Result) error {
	lookup := func(name string) (core.Entity, error) {
		id, ok := res.Actions[name]
		if !ok {
			return core.Invalid, fmt.Errorf("profile is missing action %q", name)
		}
		return id, nil
	}
	var err error
	if d.move, err = lookup("move"); err != nil {
		return err
	}
	if d.jump, err = lookup("jump"); err != nil {
		return err
	}
	if len(res.Contexts) > 0 {
		d.gameplay = res.Contexts[0]
	}
	d.eng.ObserveFunc([]action.Events{action.EventFire}, func(e engine.Event) {
		if e.Action == d.jump {
			d.playTone(880)
		}
	})
	return nil
}

func (d *demo) playTone(freq float64) {
	if !d.audioInit {
		return
	}
	rate := beep.SampleRate(44100)
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(rate.N(50*time.Millisecond), sine))
}

func (d *demo) note(s string) {
	const maxLog = 8
	if len(d.log) >= maxLog {
		copy(d.log, d.log[1:])
		d.log = d.log[:maxLog-1]
	}
	d.log = append(d.log, s)
}

func (d *demo) run() {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go d.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				if tev.Key() == tcell.KeyCtrlC {
					close(quit)
					return
				}
				d.pressKey(tev)
			case *tcell.EventResize:
				d.screen.Sync()
			}
		case now := <-ticker.C:
			d.releaseStale(now)
			d.eng.Tick("main", core.NewTime(now.Sub(last)))
			d.input.ClearDeltas()
			last = now
			d.draw()
		}
	}
}

// pressKey maps a tcell key event into the device state and stamps the
// latch
func (d *demo) pressKey(ev *tcell.EventKey) {
	var k binding.Key
	switch ev.Key() {
	case tcell.KeyRune:
		k = binding.Key(ev.Rune())
	case tcell.KeyEscape:
		k = binding.KeyEscape
	case tcell.KeyTab:
		k = binding.KeyTab
	case tcell.KeyEnter:
		k = binding.KeyEnter
	case tcell.KeyUp:
		k = binding.KeyUp
	case tcell.KeyDown:
		k = binding.KeyDown
	case tcell.KeyLeft:
		k = binding.KeyLeft
	case tcell.KeyRight:
		k = binding.KeyRight
	default:
		return
	}
	var mods binding.ModKeys
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mods |= binding.ModControl
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		mods |= binding.ModShift
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods |= binding.ModAlt
	}
	d.input.SetMods(mods)
	d.input.PressKey(k)
	d.lastSeen[k] = time.Now()
}

func (d *demo) releaseStale(now time.Time) {
	for k, seen := range d.lastSeen {
		if now.Sub(seen) > keyLatchMs*time.Millisecond {
			d.input.ReleaseKey(k)
			delete(d.lastSeen, k)
		}
	}
	if len(d.lastSeen) == 0 {
		d.input.SetMods(0)
	}
}

func (d *demo) draw() {
	d.screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)

	d.text(1, 1, "inputflow demo - a/d move, hold space to jump, tab toggles menu, ctrl+c quits", tcell.StyleDefault)
	d.text(1, 3, fmt.Sprintf("move   %-8s %+.2f", d.eng.State(d.move), d.eng.Value(d.move).AsAxis1D()), style)
	d.text(1, 4, fmt.Sprintf("jump   %-8s", d.eng.State(d.jump)), style)
	if d.scroll != core.Invalid {
		d.text(1, 5, fmt.Sprintf("scroll %-8s %+.2f", d.eng.State(d.scroll), d.eng.Value(d.scroll).AsAxis1D()), style)
	}

	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, entry := range d.log {
		d.text(1, 7+i, entry, dim)
	}
	d.screen.Show()
}

func (d *demo) text(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		d.screen.SetContent(x+i, y, r, nil, style)
	}
}
