package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"planly/internal/model"
)

var (
	pickerTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	pickerSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	pickerHelp     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// picker edits the five subject slots. Each slot only offers subjects not
// taken by the other four.
type picker struct {
	slots  []model.Subject
	cursor int
	saved  bool
}

func newPicker(current []model.Subject) picker {
	slots := slices.Clone(current)
	if !model.ValidSubjectSet(slots) {
		slots = model.DefaultSubjects()
	}
	return picker{slots: slots}
}

// options returns the subjects slot i may hold.
func (p picker) options(i int) []model.Subject {
	var opts []model.Subject
	for _, s := range model.AllSubjects {
		taken := false
		for j, other := range p.slots {
			if j != i && other == s {
				taken = true
				break
			}
		}
		if !taken {
			opts = append(opts, s)
		}
	}
	return opts
}

func (p picker) cycle(step int) picker {
	opts := p.options(p.cursor)
	idx := slices.Index(opts, p.slots[p.cursor])
	idx = (idx + step + len(opts)) % len(opts)
	slots := slices.Clone(p.slots)
	slots[p.cursor] = opts[idx]
	p.slots = slots
	return p
}

func (p picker) Init() tea.Cmd {
	return nil
}

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.slots)-1 {
			p.cursor++
		}
	case "right", "l", " ":
		p = p.cycle(1)
	case "left", "h":
		p = p.cycle(-1)
	case "enter":
		p.saved = true
		return p, tea.Quit
	}
	return p, nil
}

func (p picker) View() string {
	var b strings.Builder
	b.WriteString(pickerTitle.Render("Your Subjects - choose 5"))
	b.WriteString("\n\n")
	for i, s := range p.slots {
		line := fmt.Sprintf("Subject %d: ◀ %s ▶", i+1, s.Label())
		if i == p.cursor {
			b.WriteString(pickerSelected.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(pickerHelp.Render("↑/↓ move • ←/→ change • enter save • q cancel"))
	b.WriteString("\n")
	return b.String()
}
