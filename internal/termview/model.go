// Package termview renders the gallery in a terminal with bubbletea. Layout
// runs through the same engine as the window, over a grid of cells.
package termview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/depeter/jellyflow/internal/catalog"
	"github.com/depeter/jellyflow/internal/gallery"
	"github.com/depeter/jellyflow/internal/motion"
)

const (
	// chromeRows are the header, caption and footer lines around the canvas.
	chromeRows    = 3
	frameInterval = time.Second / 60
	pageStep      = 5

	DefaultPosterRows = 12
	DefaultPageSize   = 100
)

// Options configures a Model.
type Options struct {
	// Source fills the catalog on Init and on reload. Leave nil when the
	// caller has filled the catalog already.
	Source   catalog.Source
	PageSize int
	// PosterRows is the height of the centered poster in cells.
	PosterRows int
	Initial    int
	Trace      func(format string, args ...any)
}

type tickMsg struct{}

type loadedMsg struct {
	err error
}

// Model is the root bubbletea model of the terminal gallery.
type Model struct {
	ctx      context.Context
	catalog  *catalog.Catalog
	grid     *cells
	engine   *gallery.Engine
	scroller *motion.Scroller
	styles   Styles
	keys     KeyMap
	help     help.Model
	opts     Options

	width, height int

	// aim is the index the current keyboard motion heads for, -1 when idle.
	aim      int
	attached bool
	ticking  bool
	loading  bool
	err      error
}

// New builds the model. The engine is attached on the first window size.
func New(ctx context.Context, cat *catalog.Catalog, cfg gallery.Config, opts Options) (Model, error) {
	if opts.PosterRows <= 0 {
		opts.PosterRows = DefaultPosterRows
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	grid := &cells{catalog: cat, posterRows: opts.PosterRows}
	var engineOpts []gallery.Option
	if opts.Trace != nil {
		engineOpts = append(engineOpts, gallery.WithTrace(opts.Trace))
	}
	e, err := gallery.New(cfg, grid, grid, engineOpts...)
	if err != nil {
		return Model{}, err
	}
	st := DefaultStyles()
	keys := DefaultKeyMap(cfg.Orientation)
	keys.Reload.SetEnabled(opts.Source != nil)
	h := help.New()
	h.Styles.ShortKey = st.ShortcutKey
	h.Styles.ShortDesc = st.ShortcutDesc
	h.Styles.ShortSeparator = st.ShortcutDesc
	return Model{
		ctx:      ctx,
		catalog:  cat,
		grid:     grid,
		engine:   e,
		scroller: motion.NewScroller(e, motion.DefaultSpeed),
		styles:   st,
		keys:     keys,
		help:     h,
		opts:     opts,
		aim:      -1,
		loading:  opts.Source != nil,
	}, nil
}

// Engine exposes the layout engine for inspection.
func (m Model) Engine() *gallery.Engine { return m.engine }

// Err is the last load or layout error.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	if m.opts.Source == nil {
		return nil
	}
	return m.load()
}

func (m Model) load() tea.Cmd {
	ctx, cat, src, size := m.ctx, m.catalog, m.opts.Source, m.opts.PageSize
	return func() tea.Msg {
		return loadedMsg{err: cat.Load(ctx, src, size)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.grid.cols = max(msg.Width, 0)
		m.grid.rows = max(msg.Height-chromeRows, 0)
		m.scroller.Stop()
		m.aim = -1
		m.relayout()
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = fmt.Errorf("load posters: %w", msg.err)
			return m, nil
		}
		m.err = nil
		m.scroller.Stop()
		m.aim = -1
		m.relayout()
		return m, nil

	case tickMsg:
		m.ticking = false
		if err := m.scroller.Step(); err != nil {
			m.err = err
		}
		if !m.scroller.Active() {
			m.aim = -1
		}
		return m, m.animate()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		m.seek(m.currentAim() - 1)
	case key.Matches(msg, m.keys.Next):
		m.seek(m.currentAim() + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.seek(m.currentAim() - pageStep)
	case key.Matches(msg, m.keys.PageDown):
		m.seek(m.currentAim() + pageStep)
	case key.Matches(msg, m.keys.First):
		m.jump(0)
	case key.Matches(msg, m.keys.Last):
		m.jump(m.catalog.Len() - 1)
	case key.Matches(msg, m.keys.Reload):
		if !m.loading {
			m.loading = true
			return m, m.load()
		}
	}
	return m, m.animate()
}

// relayout starts a new session for the current size and catalog.
func (m *Model) relayout() {
	if m.grid.cols == 0 || m.grid.rows == 0 {
		return
	}
	if !m.attached {
		m.attached = true
		m.report(m.engine.Attach(m.opts.Initial))
		return
	}
	m.report(m.engine.NotifyDataSetChanged())
}

func (m *Model) report(err error) {
	if err != nil {
		m.err = err
	}
}

func (m *Model) currentAim() int {
	if m.aim >= 0 {
		return m.aim
	}
	return m.engine.SelectedIndex()
}

func (m *Model) seek(index int) {
	n := m.catalog.Len()
	if n == 0 || m.engine.Empty() {
		return
	}
	m.aim = min(max(index, 0), n-1)
	m.scroller.ScrollTo(m.aim)
}

func (m *Model) jump(index int) {
	if index < 0 || m.engine.Empty() {
		return
	}
	m.aim = -1
	m.scroller.Stop()
	m.report(m.engine.ScrollToIndex(index))
	m.engine.Settle()
}

// animate schedules the next frame while motion remains.
func (m *Model) animate() tea.Cmd {
	if m.ticking || !m.scroller.Active() {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	st := m.styles
	sel := m.engine.SelectedIndex()
	n := m.catalog.Len()

	header := st.Title.Render("JellyFlow")
	if sel >= 0 && sel < n {
		header += "  " + st.Counter.Render(fmt.Sprintf("%d / %d", sel+1, n))
	}

	cv := newCanvas(m.grid.cols, m.grid.rows)
	switch {
	case m.loading:
		cv.label(cv.h/2, "Loading posters…", st.Empty)
	case m.engine.Empty():
		cv.label(cv.h/2, "No posters", st.Empty)
	default:
		rasterize(cv, m.engine.Visible(), sel, st)
	}

	caption := ""
	if m.err != nil {
		caption = st.Error.Render(truncate(m.err.Error(), m.width))
	} else if sel >= 0 && sel < n {
		p := m.catalog.At(sel)
		title := p.Title
		if p.Year > 0 {
			title = fmt.Sprintf("%s (%d)", p.Title, p.Year)
		}
		caption = st.Caption.Render(truncate(title, m.width))
	}
	caption = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, caption)

	return strings.Join([]string{header, cv.String(), caption, m.help.View(m.keys)}, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
