// Package ui implements the terminal chat widget.
package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"guideme/pkg/actions"
	"guideme/pkg/api"
	"guideme/pkg/chat"
	"guideme/pkg/markup"
	"guideme/pkg/ui/render"
	"guideme/pkg/ui/styles"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const (
	inputHeight     = 3
	typingFrames    = 3
	typingInterval  = 300 * time.Millisecond
	footerLabel     = "Enter Send | Ctrl+N New Chat | Ctrl+P/Ctrl+O Select | y Copy | s Speak | Esc Quit"
	validatingLabel = "Validating API..."
)

type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entryError
)

// entry is one rendered row group in the conversation viewport. Error
// entries live only here, never in the conversation history.
type entry struct {
	kind entryKind
	raw  string
	// markup is set for assistant entries only; user text stays raw.
	markup string
	copier *actions.CopyControl
	speak  *actions.SpeakControl
}

// Messages produced by commands.

type validateResultMsg struct {
	err error
}

type exchangeResultMsg struct {
	res api.Result
	err error
}

type typingTickMsg struct{}

type copyExpireMsg struct {
	index int
	gen   int
}

type speakDoneMsg struct {
	index int
}

// Widget is the root Bubble Tea model for the chat session.
type Widget struct {
	client  *api.Client
	orch    *chat.Orchestrator
	clip    actions.Clipboard
	speaker actions.Speaker

	entries  []*entry
	selected int // viewport entry index, -1 when nothing selected

	input textarea.Model
	vp    viewport.Model

	width  int
	height int
	ready  bool
	follow bool

	typing      bool
	typingFrame int

	validating bool
	banner     string
}

// NewWidget assembles the chat widget around its collaborators.
func NewWidget(client *api.Client, orch *chat.Orchestrator, clip actions.Clipboard, speaker actions.Speaker) Widget {
	input := textarea.New()
	input.Placeholder = "Ask me anything about traveling in India..."
	input.SetHeight(inputHeight)
	input.Focus()

	return Widget{
		client:     client,
		orch:       orch,
		clip:       clip,
		speaker:    speaker,
		selected:   -1,
		input:      input,
		vp:         viewport.New(),
		follow:     true,
		validating: true,
	}
}

func (w Widget) Init() tea.Cmd {
	return tea.Batch(
		w.validateCmd(),
		func() tea.Msg { return tea.RequestWindowSize() },
	)
}

func (w Widget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		w.ready = true
		w.input.SetWidth(msg.Width)
		w.vp.SetWidth(msg.Width)
		w.vp.SetHeight(w.viewportHeight())
		w.refresh()
		return w, nil

	case tea.KeyPressMsg:
		return w.handleKey(msg)

	case tea.PasteMsg:
		w.input.InsertString(msg.Content)
		return w, nil

	case validateResultMsg:
		w.validating = false
		// Submission stays enabled either way; a failed check only
		// surfaces as a banner.
		w.orch.Conversation().SetValidated(true)
		if msg.err != nil {
			w.banner = msg.err.Error()
			slog.Warn("startup_validation_failed", "error", msg.err)
		} else {
			w.banner = ""
		}
		return w, nil

	case exchangeResultMsg:
		return w.settleExchange(msg)

	case typingTickMsg:
		if !w.typing {
			return w, nil
		}
		w.typingFrame = (w.typingFrame + 1) % typingFrames
		w.refresh()
		return w, w.typingTick()

	case copyExpireMsg:
		if msg.index >= 0 && msg.index < len(w.entries) && w.entries[msg.index].copier != nil {
			w.entries[msg.index].copier.Revert(msg.gen)
			w.refresh()
		}
		return w, nil

	case speakDoneMsg:
		if msg.index >= 0 && msg.index < len(w.entries) && w.entries[msg.index].speak != nil {
			w.entries[msg.index].speak.Finished()
			w.refresh()
		}
		return w, nil
	}

	return w, nil
}

func (w Widget) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		w.speaker.Cancel()
		return w, tea.Quit

	case "esc":
		if w.selected >= 0 {
			w.selected = -1
			w.refresh()
			return w, nil
		}
		w.speaker.Cancel()
		return w, tea.Quit

	case "enter":
		return w.submit()

	case "ctrl+n":
		return w.clearConversation()

	case "up":
		w.vp.ScrollUp(1)
		w.follow = w.vp.AtBottom()
		return w, nil
	case "down":
		w.vp.ScrollDown(1)
		w.follow = w.vp.AtBottom()
		return w, nil
	case "pgup":
		w.vp.PageUp()
		w.follow = w.vp.AtBottom()
		return w, nil
	case "pgdown":
		w.vp.PageDown()
		w.follow = w.vp.AtBottom()
		return w, nil

	case "ctrl+p":
		w.selectAssistant(-1)
		return w, nil
	case "ctrl+o":
		w.selectAssistant(1)
		return w, nil

	case "y":
		if cmd, handled := w.copySelected(); handled {
			return w, cmd
		}
	case "s":
		if cmd, handled := w.speakSelected(); handled {
			return w, cmd
		}
	case "1", "2", "3", "4":
		if len(w.entries) == 0 && strings.TrimSpace(w.input.Value()) == "" {
			idx := int(msg.String()[0] - '1')
			w.input.Reset()
			w.input.InsertString(QuickPrompts[idx])
			return w, nil
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w Widget) submit() (tea.Model, tea.Cmd) {
	req, err := w.orch.Begin(w.input.Value())
	if err != nil {
		// Guard violations are quiet no-ops, matching the widget's
		// disabled-send behavior.
		return w, nil
	}

	w.input.Reset()
	w.selected = -1
	w.entries = append(w.entries, &entry{
		kind: entryUser,
		raw:  req.Message,
	})
	w.typing = true
	w.typingFrame = 0
	w.follow = true
	w.refresh()

	return w, tea.Batch(w.exchangeCmd(req), w.typingTick())
}

func (w Widget) settleExchange(msg exchangeResultMsg) (tea.Model, tea.Cmd) {
	outcome := w.orch.Settle(msg.res, msg.err)
	w.typing = false

	switch outcome.Kind {
	case chat.OutcomeSuccess:
		w.entries = append(w.entries, &entry{
			kind:   entryAssistant,
			raw:    outcome.Reply,
			markup: markup.Format(outcome.Reply),
			copier: actions.NewCopyControl(w.clip),
			speak:  actions.NewSpeakControl(w.speaker),
		})
	default:
		w.entries = append(w.entries, &entry{
			kind: entryError,
			raw:  outcome.ErrMessage,
		})
	}

	w.follow = true
	w.refresh()
	return w, nil
}

func (w Widget) clearConversation() (tea.Model, tea.Cmd) {
	if w.orch.Phase() == chat.PhaseSubmitting {
		return w, nil
	}
	w.speaker.Cancel()
	w.orch.Conversation().Reset()
	w.entries = nil
	w.selected = -1
	w.typing = false
	w.follow = true
	w.input.Reset()
	w.refresh()
	slog.Info("conversation_cleared", "session_id", w.orch.Conversation().SessionID())
	return w, nil
}

// selectAssistant moves the selection to the previous or next assistant
// entry; dir is -1 or 1.
func (w *Widget) selectAssistant(dir int) {
	start := w.selected
	if start < 0 {
		if dir < 0 {
			start = len(w.entries)
		} else {
			start = -1
		}
	}
	for i := start + dir; i >= 0 && i < len(w.entries); i += dir {
		if w.entries[i].kind == entryAssistant {
			w.selected = i
			w.refresh()
			return
		}
	}
}

func (w *Widget) copySelected() (tea.Cmd, bool) {
	if w.selected < 0 || w.selected >= len(w.entries) {
		return nil, false
	}
	e := w.entries[w.selected]
	if e.copier == nil {
		return nil, false
	}
	gen, err := e.copier.Activate(e.raw)
	if err != nil {
		slog.Warn("copy_failed", "error", err)
		return nil, true
	}
	w.refresh()
	index := w.selected
	return tea.Tick(actions.ConfirmTimeout, func(time.Time) tea.Msg {
		return copyExpireMsg{index: index, gen: gen}
	}), true
}

func (w *Widget) speakSelected() (tea.Cmd, bool) {
	if w.selected < 0 || w.selected >= len(w.entries) {
		return nil, false
	}
	e := w.entries[w.selected]
	if e.speak == nil {
		return nil, false
	}
	done, err := e.speak.Toggle(e.raw)
	if err != nil {
		slog.Warn("speak_failed", "error", err)
		return nil, true
	}
	w.refresh()
	if done == nil {
		return nil, true
	}
	index := w.selected
	return func() tea.Msg {
		<-done
		return speakDoneMsg{index: index}
	}, true
}

// Commands

func (w Widget) validateCmd() tea.Cmd {
	client := w.client
	return func() tea.Msg {
		return validateResultMsg{err: client.ValidateKey(context.Background())}
	}
}

func (w Widget) exchangeCmd(req api.ChatRequest) tea.Cmd {
	client := w.client
	return func() tea.Msg {
		res, err := client.Chat(context.Background(), req)
		return exchangeResultMsg{res: res, err: err}
	}
}

func (w Widget) typingTick() tea.Cmd {
	return tea.Tick(typingInterval, func(time.Time) tea.Msg {
		return typingTickMsg{}
	})
}

// Rendering

func (w *Widget) refresh() {
	if !w.ready {
		return
	}
	w.vp.SetHeight(w.viewportHeight())
	w.vp.SetContent(w.renderEntries())
	if w.follow {
		w.vp.GotoBottom()
	}
}

func (w Widget) viewportHeight() int {
	// title + banner? + input + separator + footer
	h := w.height - inputHeight - 3
	if w.bannerText() != "" {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (w Widget) bannerText() string {
	if w.validating {
		return validatingLabel
	}
	return w.banner
}

func (w Widget) renderEntries() string {
	width := w.width
	if width < 1 {
		width = 1
	}

	if len(w.entries) == 0 {
		return WelcomePanel()
	}

	var blocks []string
	for i, e := range w.entries {
		blocks = append(blocks, w.renderEntry(i, e, width))
	}
	if w.typing {
		blocks = append(blocks, styles.TextMutedStyle.Render("Guide is typing"+typingDots(w.typingFrame)))
	}
	return strings.Join(blocks, "\n\n")
}

func (w Widget) renderEntry(index int, e *entry, width int) string {
	switch e.kind {
	case entryUser:
		// User text renders verbatim. Only assistant replies carry markup.
		lines := append([]string{styles.UserStyle.Render("You")}, render.PlainLines(e.raw, width)...)
		return strings.Join(lines, "\n")

	case entryError:
		return styles.ErrorStyle.Render(render.Truncate("Error: "+e.raw, width))

	default:
		header := "Guide"
		if index == w.selected {
			header = "▸ Guide"
		}
		lines := append([]string{styles.TitleStyle.Render(header)}, render.Lines(e.markup, width)...)
		if controls := w.renderControls(e); controls != "" {
			lines = append(lines, controls)
		}
		return strings.Join(lines, "\n")
	}
}

func (w Widget) renderControls(e *entry) string {
	var parts []string
	if e.copier != nil {
		if e.copier.Confirmed() {
			parts = append(parts, styles.SuccessStyle.Render("✓ copied"))
		} else {
			parts = append(parts, styles.FooterStyle.Render("[y] copy"))
		}
	}
	if e.speak != nil {
		if e.speak.Speaking() {
			parts = append(parts, styles.SuccessStyle.Render("■ speaking"))
		} else {
			parts = append(parts, styles.FooterStyle.Render("[s] speak"))
		}
	}
	return strings.Join(parts, "  ")
}

func typingDots(frame int) string {
	return strings.Repeat(".", frame+1) + strings.Repeat(" ", typingFrames-frame-1)
}

func (w Widget) View() tea.View {
	if !w.ready {
		return tea.NewView("Initializing...")
	}

	title := render.Truncate(styles.TitleStyle.Render("Guide Me"), w.width)

	sections := []string{title}
	if banner := w.bannerText(); banner != "" {
		sections = append(sections, styles.BannerStyle.Render(render.Truncate(banner, w.width)))
	}
	sections = append(sections,
		w.vp.View(),
		strings.Repeat("─", max(w.width, 1)),
		w.input.View(),
		styles.FooterStyle.Render(render.Truncate(footerLabel, w.width)),
	)

	return tea.NewView(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
