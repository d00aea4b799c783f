// Package console runs a session on the engine's own frame loop, drawing to
// a tcell screen. It is the alternative to the Bubble Tea front end: the
// engine sleeps between frames itself and polls input once per frame.
package console

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
	"github.com/vovakirdan/tui-arcade-engine/internal/core"
	"github.com/vovakirdan/tui-arcade-engine/internal/engine"
	"github.com/vovakirdan/tui-arcade-engine/internal/registry"
	"github.com/vovakirdan/tui-arcade-engine/internal/storage"
)

// maxQueuedKeys bounds how many key events wait for upcoming frames.
const maxQueuedKeys = 8

// Console is both the engine's Sink and its InputSource. Key events are read
// on a separate goroutine and handed out one per Poll.
type Console struct {
	screen tcell.Screen
	done   chan struct{}

	mu      sync.Mutex
	queue   []core.KeyPress
	resized bool
	w, h    int
}

// Open initializes the terminal.
func Open() (*Console, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}
	return Start(s)
}

// Start initializes s and begins reading its events.
func Start(s tcell.Screen) (*Console, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("console: init screen: %w", err)
	}
	s.HideCursor()
	s.Clear()

	c := &Console{
		screen: s,
		done:   make(chan struct{}),
		queue:  make([]core.KeyPress, 0, maxQueuedKeys),
	}
	go c.pump()
	return c, nil
}

// Close restores the terminal and waits for the event reader to stop.
func (c *Console) Close() {
	c.screen.Fini()
	<-c.done
}

// Size returns the terminal size in cells.
func (c *Console) Size() (int, int) {
	return c.screen.Size()
}

func (c *Console) pump() {
	defer close(c.done)
	for {
		switch ev := c.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			c.enqueue(MapKey(ev))
		case *tcell.EventResize:
			w, h := ev.Size()
			c.mu.Lock()
			c.w, c.h, c.resized = w, h, true
			c.mu.Unlock()
		}
	}
}

func (c *Console) enqueue(kp core.KeyPress) {
	if kp.Empty() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == maxQueuedKeys {
		c.queue[len(c.queue)-1].Merge(kp)
		return
	}
	c.queue = append(c.queue, kp)
}

// Poll returns the oldest queued key event, or an empty snapshot.
func (c *Console) Poll() core.KeyPress {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return core.KeyPress{}
	}
	kp := c.queue[0]
	c.queue = append(c.queue[:0], c.queue[1:]...)
	return kp
}

// Present copies the frame to the terminal. A terminal resize seen since the
// last frame is applied to the engine's buffer here, on the engine goroutine,
// and takes effect on the next frame.
func (c *Console) Present(scr *core.Screen, bg core.Color) {
	for y := range scr.Height() {
		for x := range scr.Width() {
			cell := scr.GetCell(x, y)
			cellBG := cell.BG
			if cellBG == core.ColorDefault {
				cellBG = bg
			}
			c.screen.SetContent(x, y, cell.Rune, nil, Style(cell.FG, cellBG))
		}
	}
	c.screen.Show()

	c.mu.Lock()
	resized, w, h := c.resized, c.w, c.h
	c.resized = false
	c.mu.Unlock()
	if resized {
		scr.Resize(w, h)
		c.screen.Sync()
	}
}

// Color converts an engine color to a tcell palette color.
func Color(col core.Color) tcell.Color {
	if n := col.ANSI(); n >= 0 {
		return tcell.PaletteColor(n)
	}
	return tcell.ColorDefault
}

// Style builds the tcell style for a foreground/background pair.
func Style(fg, bg core.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(Color(fg)).Background(Color(bg))
}

// MapKey translates a tcell key event into an input snapshot. It follows the
// Bubble Tea key map: Esc and Ctrl+C quit, p pauses and is also text.
func MapKey(ev *tcell.EventKey) core.KeyPress {
	var kp core.KeyPress

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		kp.Quit = true
	case tcell.KeyLeft:
		kp.Special = core.KeyLeft
	case tcell.KeyRight:
		kp.Special = core.KeyRight
	case tcell.KeyUp:
		kp.Special = core.KeyUp
	case tcell.KeyDown:
		kp.Special = core.KeyDown
	case tcell.KeyEnter:
		kp.Special = core.KeyEnter
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		kp.Special = core.KeyBackspace
	case tcell.KeyDelete:
		kp.Special = core.KeyDelete
	case tcell.KeyHome, tcell.KeyCtrlA:
		kp.Special = core.KeyHome
	case tcell.KeyEnd, tcell.KeyCtrlE:
		kp.Special = core.KeyEnd
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			break
		}
		kp.Key = ev.Rune()
		kp.Pause = kp.Key == 'p'
	}
	return kp
}

// Options configures one console session.
type Options struct {
	Engine  config.EngineConfig
	Runtime core.RuntimeConfig
	ExePath string
	Archive *storage.Store
	Logger  *log.Logger
}

// Run plays one session of game on c and returns when the player leaves it.
// The runtime screen size defaults to the terminal size.
func (c *Console) Run(game registry.Game, opts Options) {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		rt.ScreenW, rt.ScreenH = c.Size()
	}
	game.Reset(rt)

	e := engine.New(opts.ExePath, opts.Engine, rt, game)
	e.SetLogger(opts.Logger)
	e.SetSink(c)
	if opts.Archive != nil {
		e.SetRecorder(opts.Archive.NewRecorder(game.ID()))
	}
	e.Run(c)
}
