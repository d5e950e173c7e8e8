// Package envpanel is the environment inspector: a modal dialog that shows the
// backend's runtime, GPU and node-environment status.
package envpanel

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"envmanager/internal/client"
	"envmanager/internal/logging"
	"envmanager/internal/view"
)

// State is the dialog lifecycle state.
type State int

const (
	StateClosed State = iota
	StateLoading
	StateRendered
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateError:
		return "error"
	default:
		return "closed"
	}
}

// Fetcher reads both status endpoints. *client.Client implements it.
type Fetcher interface {
	FetchStatus(ctx context.Context, requestID string) (client.Status, error)
}

// Options controls the dialog's size.
type Options struct {
	Width            int
	MaxHeightPercent int
}

// DefaultOptions returns the sizes used when none are configured.
func DefaultOptions() Options {
	return Options{Width: 84, MaxHeightPercent: 85}
}

// loadedMsg carries a fetch result back to the dialog that issued it.
type loadedMsg struct {
	gen       uint64
	requestID string
	status    client.Status
	err       error
}

type keyMap struct {
	Refresh key.Binding
	Close   key.Binding
	Toggle  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Close:   key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc", "close")),
		Toggle:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "other nodes")),
	}
}

// Dialog owns at most one overlay on its document. Every Show and Close
// advances the generation, and a fetch result is applied only if it carries
// the live generation.
type Dialog struct {
	doc     *view.Document
	fetcher Fetcher
	logger  *logging.Logger
	opts    Options
	keys    keyMap

	state     State
	gen       uint64
	requestID string
	current   *overlay
	body      *view.Node

	spinner  spinner.Model
	viewport viewport.Model
}

// NewDialog creates a closed dialog that mounts on doc.
func NewDialog(doc *view.Document, fetcher Fetcher, logger *logging.Logger, opts Options) *Dialog {
	defaults := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = defaults.Width
	}
	if opts.MaxHeightPercent <= 0 || opts.MaxHeightPercent > 100 {
		opts.MaxHeightPercent = defaults.MaxHeightPercent
	}
	return &Dialog{
		doc:      doc,
		fetcher:  fetcher,
		logger:   logger,
		opts:     opts,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// State returns the lifecycle state.
func (d *Dialog) State() State { return d.state }

// Generation returns the live generation token.
func (d *Dialog) Generation() uint64 { return d.gen }

// RequestID returns the correlation id of the latest Show.
func (d *Dialog) RequestID() string { return d.requestID }

// Body returns the mounted body tree, or nil when closed.
func (d *Dialog) Body() *view.Node { return d.body }

// Show closes any open overlay, mounts a fresh one in the loading state and
// returns the command that fetches both endpoints.
func (d *Dialog) Show() tea.Cmd {
	d.Close()

	d.gen++
	gen := d.gen
	requestID := uuid.NewString()
	d.requestID = requestID

	d.state = StateLoading
	d.body = LoadingBody()
	d.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	d.viewport.GotoTop()
	d.current = &overlay{dialog: d}
	d.doc.Attach(d.current)

	d.logger.Info("envpanel.show", "Environment dialog opened", map[string]interface{}{
		"generation": gen,
		"request_id": requestID,
	})

	fetcher := d.fetcher
	fetch := func() tea.Msg {
		status, err := fetcher.FetchStatus(context.Background(), requestID)
		return loadedMsg{gen: gen, requestID: requestID, status: status, err: err}
	}
	return tea.Batch(d.spinner.Tick, fetch)
}

// Close detaches the overlay. Closing a closed dialog does nothing.
func (d *Dialog) Close() {
	if d.current == nil {
		return
	}
	d.doc.Detach(d.current)
	d.current = nil
	d.body = nil
	d.state = StateClosed
	d.gen++

	d.logger.Debug("envpanel.close", "Environment dialog closed", map[string]interface{}{
		"generation": d.gen,
	})
}

// ToggleOtherNodes expands or collapses the unconfigured node list.
func (d *Dialog) ToggleOtherNodes() bool {
	if d.state != StateRendered {
		return false
	}
	return ToggleOtherNodes(d.body)
}

// Update applies fetch results and spinner ticks. Results from an earlier
// generation, or arriving after the dialog left the loading state, are dropped.
func (d *Dialog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.gen != d.gen || d.state != StateLoading {
			d.logger.Debug("envpanel.result.stale", "Dropped result of a superseded request", map[string]interface{}{
				"generation":      msg.gen,
				"live_generation": d.gen,
				"request_id":      msg.requestID,
			})
			return nil
		}
		d.apply(msg)
		return nil
	case spinner.TickMsg:
		if d.state != StateLoading {
			return nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (d *Dialog) apply(msg loadedMsg) {
	d.viewport.GotoTop()
	if msg.err != nil {
		d.state = StateError
		d.body = NetworkErrorBody(msg.err)
		d.logger.Warn("envpanel.fetch.failed", "Environment fetch failed", map[string]interface{}{
			"request_id": msg.requestID,
			"error":      msg.err.Error(),
		})
		return
	}

	d.state = StateRendered
	d.body = Render(InputFromStatus(msg.status))
	d.logger.Info("envpanel.fetch.done", "Environment status rendered", map[string]interface{}{
		"request_id":          msg.requestID,
		"runtime_status":      msg.status.Runtime.StatusCode,
		"environments_status": msg.status.Environments.StatusCode,
	})
}

func (d *Dialog) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, d.keys.Close):
		d.Close()
		return nil
	case key.Matches(msg, d.keys.Refresh):
		return d.Show()
	case key.Matches(msg, d.keys.Toggle):
		d.ToggleOtherNodes()
		return nil
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

func (d *Dialog) hint() string {
	parts := []string{d.keys.Refresh.Help().Key + " " + d.keys.Refresh.Help().Desc}
	if d.body.FindByID(OtherNodesID) != nil {
		parts = append(parts, d.keys.Toggle.Help().Key+" "+d.keys.Toggle.Help().Desc)
	}
	parts = append(parts, "↑/↓ scroll", d.keys.Close.Help().Key+" "+d.keys.Close.Help().Desc)
	return strings.Join(parts, " · ")
}

func (d *Dialog) render(p *view.Painter, width, height int) string {
	frame := p.Style([]string{"em-dialog"})

	outer := d.opts.Width
	if width > 0 && outer > width {
		outer = width
	}
	inner := outer - frame.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}

	header := p.Paint(Header(), inner)
	body := p.Paint(d.body, inner)
	if d.state == StateLoading {
		body = lipgloss.JoinHorizontal(lipgloss.Top, d.spinner.View()+" ", body)
	}
	hint := p.Paint(view.El("div.em-hint", d.hint()), inner)

	maxHeight := height * d.opts.MaxHeightPercent / 100
	room := maxHeight - lipgloss.Height(header) - lipgloss.Height(hint) - frame.GetVerticalFrameSize()
	if room < 3 {
		room = 3
	}
	bodyHeight := lipgloss.Height(body)
	if height <= 0 || bodyHeight < room {
		room = bodyHeight
	}

	d.viewport.Width = inner
	d.viewport.Height = room
	d.viewport.SetContent(body)

	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, header, d.viewport.View(), hint))
}

// overlay is the mounted form of one Show. A new Show mounts a new overlay.
type overlay struct {
	dialog *Dialog
}

func (o *overlay) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if o.dialog.current != o {
		return nil
	}
	return o.dialog.handleKey(msg)
}

func (o *overlay) View(p *view.Painter, width, height int) string {
	if o.dialog.current != o {
		return ""
	}
	return o.dialog.render(p, width, height)
}
