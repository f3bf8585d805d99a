package cli

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ellipsegen/pkg/io"
	"github.com/matzehuels/ellipsegen/pkg/pipeline"
	"github.com/matzehuels/ellipsegen/pkg/session"
)

// tuiChromeLines is the number of terminal rows the preview does not get:
// title, blank, blank, key help, status.
const tuiChromeLines = 5

type tuiOpts struct {
	runnerOpts
	palette   string
	count     int
	outputDir string
	restore   bool
}

func (c *CLI) tuiCommand() *cobra.Command {
	opts := tuiOpts{
		count:     pipeline.DefaultCount,
		outputDir: ".",
		restore:   true,
	}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal preview",
		Long: `Tui previews artworks in the terminal.

Keys:
  r      regenerate
  tab    next palette
  s      save SVG
  p      save PNG
  q      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runTUI(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.palette, "palette", "p", "", "starting palette (default: vivid)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", opts.count, "number of ellipses")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", opts.outputDir, "directory saved files go to")
	cmd.Flags().BoolVar(&opts.restore, "restore", opts.restore, "reopen the last artwork if it has not expired")
	addRunnerFlags(cmd, &opts.runnerOpts)

	return cmd
}

func (c *CLI) runTUI(ctx context.Context, opts tuiOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.runnerOpts)
	if err != nil {
		return err
	}
	defer runner.Close()

	name := opts.palette
	if name == "" {
		name = runner.Registry.Default().Name
	}
	if _, err := runner.Registry.Get(name); err != nil {
		return err
	}

	deps := &tuiDeps{ctx: ctx, runner: runner, count: opts.count, outputDir: opts.outputDir}
	if store, err := session.NewFileStore(""); err != nil {
		logger.Debug("session store disabled", "error", err)
	} else {
		deps.store = store
		_ = store.Cleanup(ctx)
	}

	m := newTUIModel(deps, name)
	if opts.restore && deps.store != nil {
		if sess, err := deps.store.Latest(ctx); err == nil && sess != nil {
			m.art = pipeline.NewArtwork(sess.Artwork)
			m.palette = sess.Artwork.Palette
			m.status = "Restored last artwork"
		}
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// Model
// =============================================================================

// tuiDeps is shared by every copy of the model.
type tuiDeps struct {
	ctx       context.Context
	runner    *pipeline.Runner
	store     *session.FileStore
	count     int
	outputDir string
}

type tuiModel struct {
	deps    *tuiDeps
	palette string
	art     *pipeline.Artwork

	cols, rows int // terminal size
	pw, ph     int // preview size in pixels
	preview    string

	busy   bool
	status string
	err    error
}

type artworkMsg struct {
	art *pipeline.Artwork
	err error
}

type previewMsg struct {
	id     string
	w, h   int
	output string
	err    error
}

type savedMsg struct {
	path string
	err  error
}

func newTUIModel(deps *tuiDeps, palette string) tuiModel {
	return tuiModel{deps: deps, palette: palette}
}

func (m tuiModel) Init() tea.Cmd {
	if m.art != nil {
		return nil
	}
	return m.generate()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.pw, m.ph = previewSize(m.cols, m.rows)
		return m, m.renderPreview()

	case artworkMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.art, m.err = msg.art, nil
		m.status = fmt.Sprintf("seed %d", msg.art.Seed)
		return m, m.renderPreview()

	case previewMsg:
		if m.art == nil || msg.id != m.art.ID || msg.w != m.pw || msg.h != m.ph {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.preview = msg.output

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = "Saved " + msg.path
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "r":
		m.busy = true
		return m, m.generate()
	case "tab":
		m.palette = m.deps.runner.Registry.Next(m.palette)
		m.busy = true
		return m, m.generate()
	case "s":
		return m.save(pipeline.FormatSVG)
	case "p":
		return m.save(pipeline.FormatPNG)
	}
	return m, nil
}

func (m tuiModel) save(format string) (tea.Model, tea.Cmd) {
	if m.art == nil {
		return m, nil
	}
	m.busy = true
	m.status = "Saving " + format + "..."
	deps, art := m.deps, m.art
	return m, func() tea.Msg {
		out, err := deps.runner.Render(deps.ctx, art, pipeline.Options{Formats: []string{format}})
		if err != nil {
			return savedMsg{err: err}
		}
		path, err := io.Export(deps.outputDir, format, out[format], time.Now())
		return savedMsg{path: path, err: err}
	}
}

func (m tuiModel) generate() tea.Cmd {
	deps, name := m.deps, m.palette
	return func() tea.Msg {
		art, err := deps.runner.Generate(deps.ctx, pipeline.Options{Palette: name, Count: pipeline.Count(deps.count)})
		if err != nil {
			return artworkMsg{err: err}
		}
		if deps.store != nil {
			_ = deps.store.Set(deps.ctx, session.New(art.Artwork, session.DefaultTTL))
		}
		return artworkMsg{art: art}
	}
}

func (m tuiModel) renderPreview() tea.Cmd {
	if m.art == nil || m.pw == 0 || m.ph == 0 {
		return nil
	}
	deps, art, w, h := m.deps, m.art, m.pw, m.ph
	return func() tea.Msg {
		img, err := deps.runner.Rasterizer.Rasterize(deps.ctx, []byte(art.SVG), w, h)
		if err != nil {
			return previewMsg{id: art.ID, w: w, h: h, err: err}
		}
		return previewMsg{id: art.ID, w: w, h: h, output: halfBlocks(img)}
	}
}

// =============================================================================
// View
// =============================================================================

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Ellipse Generator"))
	b.WriteString(StyleDim.Render("  ·  "))
	b.WriteString(StyleHighlight.Render(m.palette))
	if m.art != nil {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  ·  %d ellipses", len(m.art.Ellipses))))
	}
	b.WriteString("\n\n")

	switch {
	case m.preview != "":
		b.WriteString(m.preview)
	case m.pw == 0 && m.cols > 0:
		b.WriteString(StyleWarning.Render("Terminal too small for a preview"))
	default:
		b.WriteString(StyleDim.Render("Generating..."))
	}
	b.WriteString("\n\n")

	b.WriteString(StyleDim.Render("r regenerate  tab next palette  s save svg  p save png  q quit"))
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.status != "":
		b.WriteString(StyleDim.Render(m.status))
	}

	return b.String()
}

// previewSize fits a 3:2 preview into a terminal of cols x rows. Each
// terminal cell holds two vertically stacked pixels. It returns 0, 0 when
// nothing useful fits.
func previewSize(cols, rows int) (w, h int) {
	avail := rows - tuiChromeLines
	if cols < 3 || avail < 1 {
		return 0, 0
	}
	w = min(cols, avail*2*3/2)
	h = w * 2 / 3
	h -= h % 2
	if h < 2 {
		return 0, 0
	}
	return w, h
}

// halfBlocks draws img with one "▀" per pair of pixel rows, the upper pixel
// as foreground and the lower as background.
func halfBlocks(img image.Image) string {
	bounds := img.Bounds()
	cell := func(x, y int) lipgloss.Color {
		c, _ := colorful.MakeColor(img.At(x, y))
		return lipgloss.Color(c.Hex())
	}

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteByte('\n')
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := cell(x, y)
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom = cell(x, y+1)
			}
			b.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀"))
		}
	}
	return b.String()
}
