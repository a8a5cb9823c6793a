package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/alexchen-dev/folio/navstate"
)

// defaultLayout approximates the section tops of the sample site on a
// desktop viewport.
const defaultLayout = "home=0,about=900,projects=1700,skills=2900,blog=3700,contact=4600"

func newNavsimCmd(configPath *string) *cobra.Command {
	var layout string
	var plain bool

	cmd := &cobra.Command{
		Use:   "navsim",
		Short: "Replay scroll offsets through the navigation tracker",
		Long: `navsim drives the same tracker the browser runs.

On a terminal it opens an interactive view: use up/down (or j/k) to scroll,
pgup/pgdown for larger steps and q to quit. Otherwise it reads one offset per
line from stdin and prints every state change.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			reg, err := parseLayout(layout)
			if err != nil {
				return err
			}
			opts := []navstate.Option{
				navstate.WithHideThreshold(cfg.Nav.HideThreshold),
				navstate.WithProbeBias(cfg.Nav.ProbeBias),
				navstate.WithScrolledThreshold(cfg.Nav.ScrolledThreshold),
			}
			if cfg.Nav.ResetOnMiss {
				opts = append(opts, navstate.WithResetOnMiss())
			}
			tr := navstate.New(reg, opts...)

			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && !plain && isatty.IsTerminal(f.Fd()) {
				p := tea.NewProgram(newSimModel(tr, reg), tea.WithInput(in), tea.WithOutput(cmd.OutOrStdout()))
				_, err := p.Run()
				return err
			}
			return replayOffsets(in, cmd.OutOrStdout(), tr)
		},
	}
	cmd.Flags().StringVar(&layout, "layout", defaultLayout, "section tops as id=px pairs in page order")
	cmd.Flags().BoolVar(&plain, "plain", false, "read offsets from stdin even on a terminal")
	return cmd
}

// parseLayout reads "id=top,id=top" into a registry.
func parseLayout(s string) (*navstate.Registry, error) {
	var sections []navstate.Section
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, top, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("layout entry %q: want id=px", part)
		}
		px, err := strconv.Atoi(strings.TrimSpace(top))
		if err != nil {
			return nil, fmt.Errorf("layout entry %q: %w", part, err)
		}
		sections = append(sections, navstate.Section{ID: navstate.SectionID(strings.TrimSpace(id)), Top: px})
	}
	return navstate.NewRegistry(sections...)
}

// replayOffsets feeds one offset per input line to tr and prints a line for
// every sample that changed the state. Blank lines and #-comments are skipped.
func replayOffsets(r io.Reader, w io.Writer, tr *navstate.Tracker) error {
	printState(w, 0, tr.State())
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		offset, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		st, ch := tr.OnScroll(offset)
		if ch != 0 {
			printState(w, offset, st)
		}
	}
	return sc.Err()
}

func printState(w io.Writer, offset int, st navstate.State) {
	fmt.Fprintf(w, "offset=%d visible=%t scrolled=%t active=%s\n", offset, st.Visible, st.Scrolled, st.Active)
}

var (
	barStyle      = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	compactStyle  = barStyle.BorderForeground(lipgloss.Color("12"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("14"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// simModel is the interactive navsim view.
type simModel struct {
	tr        *navstate.Tracker
	reg       *navstate.Registry
	offset    int
	maxOffset int
	last      navstate.Change
}

func newSimModel(tr *navstate.Tracker, reg *navstate.Registry) simModel {
	m := simModel{tr: tr, reg: reg}
	if secs := reg.Sections(); len(secs) > 0 {
		m.maxOffset = secs[len(secs)-1].Top + 800
	}
	return m
}

func (m simModel) Init() tea.Cmd { return nil }

func (m simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "down", "j":
		m.offset += 40
	case "up", "k":
		m.offset -= 40
	case "pgdown", " ":
		m.offset += 400
	case "pgup":
		m.offset -= 400
	case "home", "g":
		m.offset = 0
	case "end", "G":
		m.offset = m.maxOffset
	default:
		return m, nil
	}
	if m.offset < 0 {
		m.offset = 0
	}
	if m.offset > m.maxOffset {
		m.offset = m.maxOffset
	}
	_, m.last = m.tr.OnScroll(m.offset)
	return m, nil
}

func (m simModel) View() string {
	st := m.tr.State()
	var b strings.Builder

	if st.Visible {
		links := make([]string, 0, m.reg.Len())
		for _, s := range m.reg.Sections() {
			style := inactiveStyle
			if s.ID == st.Active {
				style = activeStyle
			}
			links = append(links, style.Render(string(s.ID)))
		}
		bar := barStyle
		if st.Scrolled {
			bar = compactStyle
		}
		b.WriteString(bar.Render(strings.Join(links, "  ")))
	} else {
		b.WriteString(helpStyle.Render("(navigation hidden)"))
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "offset %5d / %d   active %-8s", m.offset, m.maxOffset, st.Active)
	var changed []string
	if m.last.Has(navstate.VisibilityChanged) {
		changed = append(changed, "visibility")
	}
	if m.last.Has(navstate.ScrolledChanged) {
		changed = append(changed, "scrolled")
	}
	if m.last.Has(navstate.SectionChanged) {
		changed = append(changed, "section")
	}
	if len(changed) > 0 {
		b.WriteString("  changed: " + strings.Join(changed, ", "))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("j/k scroll · pgup/pgdown page · g/G top/bottom · q quit"))
	b.WriteString("\n")
	return b.String()
}
