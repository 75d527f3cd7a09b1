// Package tui implements the full-screen watch interface: a device picker
// backed by the host enumeration and a live view of the decoded byte stream
// of the selected port, including in-band BREAK conditions.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/mkleist/serline"
	"github.com/mkleist/serline/internal/tui/keys"
	"github.com/mkleist/serline/internal/tui/styles"
)

const (
	columnKeyAlias = "alias"
	columnKeyName  = "name"
	columnKeyDesc  = "desc"
)

const (
	pollInterval = 25 * time.Millisecond
	maxChunks    = 2000
	readSize     = 4096
)

type viewState int

const (
	statePicking viewState = iota
	stateStreaming
)

type tickMsg time.Time

// chunk is one read's worth of decoded data. brk has one slot per data byte
// plus a trailing slot for a break that arrived after the last byte.
type chunk struct {
	when time.Time
	data []byte
	brk  []byte
}

type watchOwner struct{}

func (watchOwner) LineLabel() string { return "watch" }

// Model is the bubbletea model of the watch command.
type Model struct {
	cfg   serline.Config
	state viewState

	devices table.Model
	stream  viewport.Model
	help    help.Model
	keys    keys.WatchKeys

	port    *serline.Port
	dtr     bool
	hexMode bool
	chunks  []chunk
	err     error

	width  int
	height int
	ready  bool

	buf []byte
	brk []byte
}

// New builds the model, enumerating devices up front so the picker opens
// populated.
func New(cfg serline.Config) (Model, error) {
	devs, err := serline.ListDevices(serline.MaxDevices)
	if err != nil {
		return Model{}, fmt.Errorf("listing devices: %w", err)
	}

	rows := make([]table.Row, 0, len(devs))
	for i, dev := range devs {
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyAlias: fmt.Sprintf("ser%d", i),
			columnKeyName:  dev.Name,
			columnKeyDesc:  dev.Desc,
		}))
	}

	devices := table.New([]table.Column{
		table.NewColumn(columnKeyAlias, "Alias", 8),
		table.NewColumn(columnKeyName, "Name", 24),
		table.NewFlexColumn(columnKeyDesc, "Description", 1),
	}).
		WithRows(rows).
		WithBaseStyle(styles.TableBaseStyle).
		Focused(true)

	return Model{
		cfg:     cfg,
		state:   statePicking,
		devices: devices,
		help:    help.New(),
		keys:    keys.NewWatchKeys(),
		buf:     make([]byte, readSize),
		// One extra slot so a break after a completely full read still
		// has a place to be marked.
		brk: make([]byte, readSize+1),
	}, nil
}

// Run starts the watch TUI and blocks until the user quits.
func Run(cfg serline.Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(Model); ok && fm.port != nil {
		fm.port.Close()
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		contentHeight := msg.Height - 4
		if contentHeight < 3 {
			contentHeight = 3
		}
		m.devices = m.devices.WithTargetWidth(msg.Width).WithPageSize(contentHeight)
		if !m.ready {
			m.stream = viewport.New(msg.Width, contentHeight)
			m.ready = true
		} else {
			m.stream.Width = msg.Width
			m.stream.Height = contentHeight
		}
		m.refreshStream()
		return m, nil

	case tickMsg:
		return m.poll()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.closePort()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		if m.state == statePicking {
			return m.updatePicking(msg)
		}
		return m.updateStreaming(msg)
	}

	var cmd tea.Cmd
	if m.state == statePicking {
		m.devices, cmd = m.devices.Update(msg)
	} else {
		m.stream, cmd = m.stream.Update(msg)
	}
	return m, cmd
}

func (m Model) updatePicking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Select) {
		return m.openSelected()
	}

	var cmd tea.Cmd
	m.devices, cmd = m.devices.Update(msg)
	return m, cmd
}

func (m Model) updateStreaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closePort()
		m.state = statePicking
		m.err = nil
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.chunks = nil
		m.refreshStream()
		return m, nil

	case key.Matches(msg, m.keys.ToggleHex):
		m.hexMode = !m.hexMode
		m.refreshStream()
		return m, nil

	case key.Matches(msg, m.keys.ToggleDTR):
		if m.port != nil {
			if err := m.port.SetDTR(!m.dtr); err == nil {
				m.dtr = !m.dtr
			} else {
				m.err = err
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.stream, cmd = m.stream.Update(msg)
	return m, cmd
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	name, _ := m.devices.HighlightedRow().Data[columnKeyName].(string)
	if name == "" {
		return m, nil
	}

	port, err := serline.Open(name, watchOwner{})
	if err != nil {
		m.err = err
		return m, nil
	}
	if err := port.Configure(m.cfg); err != nil {
		port.Close()
		m.err = err
		return m, nil
	}
	if err := port.SetDTR(true); err != nil {
		port.Close()
		m.err = err
		return m, nil
	}

	m.port = port
	m.dtr = true
	m.err = nil
	m.chunks = nil
	m.state = stateStreaming
	m.refreshStream()
	return m, tick()
}

func (m Model) poll() (tea.Model, tea.Cmd) {
	if m.port == nil || m.state != stateStreaming {
		return m, nil
	}

	for i := range m.brk {
		m.brk[i] = 0
	}
	n, err := m.port.Read(m.buf, m.brk)
	if err != nil {
		m.err = err
		m.closePort()
		m.state = statePicking
		return m, nil
	}

	if n > 0 || m.brk[0] == 1 {
		c := chunk{
			when: time.Now(),
			data: append([]byte(nil), m.buf[:n]...),
			brk:  append([]byte(nil), m.brk[:n+1]...),
		}
		m.chunks = append(m.chunks, c)
		if len(m.chunks) > maxChunks {
			m.chunks = m.chunks[len(m.chunks)-maxChunks:]
		}
		m.refreshStream()
	}

	return m, tick()
}

func (m *Model) closePort() {
	if m.port != nil {
		m.port.Close()
		m.port = nil
	}
}

func (m *Model) refreshStream() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, c := range m.chunks {
		b.WriteString(styles.HintStyle.Render(c.when.Format("15:04:05.000")))
		b.WriteByte(' ')
		b.WriteString(formatChunk(c, m.hexMode))
		b.WriteByte('\n')
	}
	m.stream.SetContent(b.String())
	m.stream.GotoBottom()
}

func formatChunk(c chunk, hexMode bool) string {
	var b strings.Builder
	breakMark := styles.BreakStyle.Render("<BREAK>")

	for i, by := range c.data {
		if c.brk[i] == 1 {
			b.WriteString(breakMark)
		}
		if hexMode {
			fmt.Fprintf(&b, "%02X ", by)
		} else if by >= 32 && by <= 126 {
			b.WriteByte(by)
		} else {
			b.WriteRune('·')
		}
	}
	if c.brk[len(c.data)] == 1 {
		b.WriteString(breakMark)
	}
	return b.String()
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	title := styles.TitleStyle.Render("serline watch")

	var status string
	switch m.state {
	case statePicking:
		status = styles.HintStyle.Render("enter: open device  q: quit  ?: help")
	case stateStreaming:
		dtrState := "DTR low"
		if m.dtr {
			dtrState = "DTR high"
		}
		status = styles.StatusConnectedStyle.Render(
			fmt.Sprintf("%s  %s  %s", m.port.Name(), describeConfig(m.cfg), dtrState))
	}
	if m.err != nil {
		status = styles.ErrorStyle.Render(m.err.Error())
	}

	var content string
	if m.state == statePicking {
		content = m.devices.View()
	} else {
		content = m.stream.View()
	}
	content = styles.ContentBorderStyle.Render(content)

	if m.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left,
			title, content, m.help.View(m.keys), status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, content, status)
}

// describeConfig renders a config in the conventional short form, e.g.
// "9600 8N1".
func describeConfig(cfg serline.Config) string {
	parity := strings.ToUpper(cfg.Parity.String()[:1])
	return fmt.Sprintf("%d %d%s%s", cfg.BaudRate, cfg.CharSize, parity, cfg.StopBits)
}
