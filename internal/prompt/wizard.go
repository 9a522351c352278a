package prompt

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vdparikh/vigenere/internal/config"
)

const (
	colorMauve   lipgloss.Color = "#cba6f7"
	colorGreen   lipgloss.Color = "#a6e3a1"
	colorRed     lipgloss.Color = "#f38ba8"
	colorOverlay lipgloss.Color = "#7f849c"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	answerStyle = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	hintStyle   = lipgloss.NewStyle().Foreground(colorOverlay)
)

type answered struct {
	label  string
	answer string
}

// wizard is a bubbletea model asking the pending questions one at a time.
type wizard struct {
	sess      *config.Session
	steps     []step
	current   int
	input     []rune
	invalid   bool
	cancelled bool
	done      []answered
}

func newWizard(s *config.Session) wizard {
	return wizard{sess: s, steps: pending(s)}
}

func (m wizard) finished() bool { return m.current >= len(m.steps) }

func (m wizard) Init() tea.Cmd {
	if m.finished() {
		return tea.Quit
	}
	return nil
}

func (m wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.finished() {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if n := len(m.input); n > 0 {
			m.input = m.input[:n-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
	return m, nil
}

func (m wizard) submit() (tea.Model, tea.Cmd) {
	st := m.steps[m.current]
	label := st.label(m.sess)
	answer := string(m.input)
	if err := st.apply(m.sess, answer); err != nil {
		m.invalid = true
		m.input = nil
		return m, nil
	}

	m.done = append(m.done, answered{label: label, answer: answer})
	m.current++
	m.input = nil
	m.invalid = false
	if m.finished() {
		return m, tea.Quit
	}
	return m, nil
}

func (m wizard) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Vigenère"))
	b.WriteString("\n\n")
	for _, a := range m.done {
		b.WriteString(a.label)
		b.WriteString(answerStyle.Render(a.answer))
		b.WriteString("\n")
	}
	if m.finished() || m.cancelled {
		return b.String()
	}

	if m.invalid {
		b.WriteString(errorStyle.Render(InvalidInput))
		b.WriteString("\n")
	}
	b.WriteString(m.steps[m.current].label(m.sess))
	b.WriteString(string(m.input))
	b.WriteString("█\n\n")
	b.WriteString(hintStyle.Render("enter to confirm • esc to quit"))
	b.WriteString("\n")
	return b.String()
}

// Wizard runs the interactive prompt on the given terminal streams.
func Wizard(s *config.Session, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newWizard(s), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(wizard); ok && m.cancelled {
		return ErrCancelled
	}
	return nil
}
