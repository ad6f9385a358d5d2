package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	bruntime "github.com/tjcardinal/tiny-basic/runtime"
)

type model struct {
	cfg      appConfig
	src      string
	viewport viewport.Model
	input    textinput.Model
	ready    bool
	status   string
	running  bool
	events   <-chan tea.Msg
	cancel   context.CancelFunc
	pending  *pendingInput
	history  []string
	tail     string
	stream   []bruntime.Output
	err      error
}

func newModel(cfg appConfig, src string) model {
	vp := viewport.New(80, 20)
	ti := textinput.New()
	ti.Prompt = bruntime.Prompt
	ti.CharLimit = 64
	ti.SetValue("")
	return model{
		cfg:      cfg,
		src:      src,
		viewport: vp,
		input:    ti,
		status:   "starting",
	}
}

func startVM(cfg appConfig, src string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		events := make(chan tea.Msg, 256)
		go runVM(ctx, cfg, src, events)
		return vmStartedMsg{events: events, cancel: cancel}
	}
}

func waitVMEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			return msg
		case <-time.After(20 * time.Millisecond):
			return vmPollMsg{}
		}
	}
}

func sendInputResp(ch chan vmInputResp, resp vmInputResp) {
	select {
	case ch <- resp:
	default:
	}
}

func (m model) Init() tea.Cmd {
	return startVM(m.cfg, m.src)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		footerLines := 2
		if m.pending != nil {
			footerLines++
		}
		vh := msg.Height - footerLines
		if vh < 1 {
			vh = 1
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vh
		m.ready = true
		return m, nil

	case vmStartedMsg:
		m.events = msg.events
		m.cancel = msg.cancel
		m.running = true
		m.status = "running"
		return m, waitVMEvent(m.events)

	case vmOutputMsg:
		m.appendOutput(msg.out)
		return m, waitVMEvent(m.events)

	case vmPollMsg:
		if m.running && m.pending == nil {
			return m, waitVMEvent(m.events)
		}
		return m, nil

	case vmPromptMsg:
		m.pending = &pendingInput{req: msg.req, resp: msg.resp}
		m.input.SetValue("")
		m.input.Focus()
		m.status = fmt.Sprintf("line %d: INPUT %s", msg.req.Line, msg.req.Var)
		return m, textinput.Blink

	case vmDoneMsg:
		m.running = false
		m.pending = nil
		m.input.Blur()
		if m.cancel != nil {
			m.cancel()
		}
		if msg.err != nil {
			m.err = msg.err
			m.status = "failed (r restarts, q quits)"
			m.appendOutput(bruntime.Output{Text: errStyle.Render(msg.err.Error()), NewLine: true})
		} else {
			m.err = nil
			m.status = "done (r restarts, q quits)"
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.pending != nil {
				sendInputResp(m.pending.resp, vmInputResp{abort: true})
			}
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

		if m.pending != nil {
			if msg.Type == tea.KeyEnter {
				val := strings.TrimSpace(m.input.Value())
				m.appendOutput(bruntime.Output{Text: bruntime.Prompt + val, NewLine: true})
				sendInputResp(m.pending.resp, vmInputResp{value: val})
				m.pending = nil
				m.input.Blur()
				m.input.SetValue("")
				m.status = "running"
				return m, waitVMEvent(m.events)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case "r":
			if m.running {
				return m, nil
			}
			m.clearForRestart()
			m.status = "restarting"
			return m, startVM(m.cfg, m.src)
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	parts := []string{m.viewport.View(), promptStyle.Render(m.status)}
	if m.pending != nil {
		parts = append(parts, inputStyle.Render(m.input.View()))
	}
	return strings.Join(parts, "\n")
}

func (m *model) appendOutput(out bruntime.Output) {
	m.stream = append(m.stream, out)
	m.rebuildContent()
}

func (m *model) rebuildContent() {
	m.history = m.history[:0]
	m.tail = ""
	for _, out := range m.stream {
		if out.NewLine {
			m.history = append(m.history, m.tail+out.Text)
			m.tail = ""
		} else {
			m.tail += out.Text
		}
	}
	content := strings.Join(m.history, "\n")
	if m.tail != "" {
		if content != "" {
			content += "\n"
		}
		content += m.tail
	}
	if content == "" {
		content = "(no output yet)"
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m *model) clearForRestart() {
	m.history = nil
	m.tail = ""
	m.stream = nil
	m.err = nil
	m.viewport.SetContent("")
	m.pending = nil
	m.input.Blur()
	m.input.SetValue("")
}
