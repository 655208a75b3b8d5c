// Package tui is an interactive explorer: pick a production family,
// calibrate it, and watch the steady state, golden rule, and
// convergence speed respond to parameter changes.
package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonduan/solow/internal/config"
	"github.com/jonduan/solow/internal/roots"
	"github.com/jonduan/solow/internal/solow"
	"github.com/jonduan/solow/internal/viz"
)

const (
	stateMenu = iota
	stateParams
	stateDash
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

var familyInfo = map[string]string{
	"cobb_douglas": "unit elasticity benchmark",
	"ces":          "tunable substitution elasticity",
}

type App struct {
	state  int
	cursor int

	families []string
	family   string

	params      solow.Params
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string
	status      string

	model  *solow.Model
	method roots.Method

	kstar, ystar float64
	converged    bool
	iterations   int
	golden       solow.GoldenRule
	goldenOK     bool
	lambda       float64
	halfLife     float64
	diagram      string

	width, height int
}

func NewApp(cfg *config.Config) App {
	method, _ := roots.New("brent")
	a := App{
		state:    stateMenu,
		families: solow.Families(),
		method:   method,
		width:    80,
		height:   24,
	}
	if cfg != nil {
		if _, err := solow.Lookup(cfg.Family); err == nil {
			a.family = cfg.Family
			a.setParams(cfg.Params)
			a.state = stateParams
		}
	}
	return a
}

// Run starts the explorer. A nil config opens the family menu; a config
// with a known family jumps straight to its parameter editor.
func Run(cfg *config.Config) error {
	_, err := tea.NewProgram(NewApp(cfg), tea.WithAltScreen()).Run()
	return err
}

func (a *App) setParams(params map[string]float64) {
	a.params = make(solow.Params, len(params))
	names := make([]string, 0, len(params))
	for k, v := range params {
		a.params[k] = v
		names = append(names, k)
	}
	sort.Strings(names)
	a.paramNames = names
	a.paramCursor = 0
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		switch a.state {
		case stateMenu:
			return a.menuKey(msg)
		case stateParams:
			return a.paramsKey(msg)
		case stateDash:
			return a.dashKey(msg)
		}
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.families)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.family = a.families[a.cursor]
		if preset := config.GetPreset(a.family, "baseline"); preset != nil {
			a.setParams(preset.Params)
		} else {
			a.setParams(config.DefaultConfig().Params)
		}
		a.status = ""
		a.state = stateParams
	}
	return a, nil
}

func (a App) paramsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(a.editBuf, 64); err == nil {
				a.params[a.paramNames[a.paramCursor]] = v
				a.status = ""
			} else {
				a.status = fmt.Sprintf("not a number: %q", a.editBuf)
			}
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.eE+-") {
				a.editBuf += s
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.state = stateMenu
	case "up", "k":
		if a.paramCursor > 0 {
			a.paramCursor--
		}
	case "down", "j":
		if a.paramCursor < len(a.paramNames)-1 {
			a.paramCursor++
		}
	case "left", "h":
		name := a.paramNames[a.paramCursor]
		a.params[name] *= 0.95
	case "right", "l":
		name := a.paramNames[a.paramCursor]
		a.params[name] *= 1.05
	case "enter":
		a.editing = true
		a.editBuf = strconv.FormatFloat(a.params[a.paramNames[a.paramCursor]], 'g', -1, 64)
	case "s":
		return a.solveNew(), nil
	}
	return a, nil
}

func (a App) dashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.state = stateParams
	case "tab":
		if len(a.paramNames) > 0 {
			a.paramCursor = (a.paramCursor + 1) % len(a.paramNames)
		}
	case "up", "k":
		return a.adjust(1.05), nil
	case "down", "j":
		return a.adjust(0.95), nil
	}
	return a, nil
}

// solveNew builds a fresh model from the edited parameters. On failure
// the previous model, if any, stays on the dashboard.
func (a App) solveNew() App {
	m, err := solow.NewFamily(a.family, a.params.Clone())
	if err != nil {
		a.status = err.Error()
		return a
	}
	a.model = m
	return a.refresh()
}

// adjust tunes the selected parameter on the live model. SetParam
// rejects values that break the calibration and leaves the model on its
// last good snapshot.
func (a App) adjust(factor float64) App {
	if a.model == nil || len(a.paramNames) == 0 {
		return a
	}
	name := a.paramNames[a.paramCursor]
	value := a.params[name] * factor

	if err := a.model.SetParam(name, value); err != nil {
		a.status = err.Error()
		return a
	}
	a.params[name] = value
	return a.refresh()
}

func (a App) refresh() App {
	res, err := a.model.FindSteadyState(config.DefaultLower, config.DefaultUpper, a.method, roots.Options{})
	if err != nil {
		a.status = err.Error()
		return a
	}
	a.kstar = res.Root
	a.converged = res.Converged
	a.iterations = res.Iterations
	a.ystar = a.model.Output(res.Root)

	a.goldenOK = false
	if g, err := a.model.GoldenRule(config.DefaultLower, config.DefaultUpper, a.method, roots.Options{}); err == nil && g.Converged {
		a.golden = g
		a.goldenOK = true
	}
	a.lambda, a.halfLife = a.model.ConvergenceRate(a.kstar)

	chartWidth := a.width - 20
	a.diagram = viz.Diagram(a.model, a.kstar*0.1, a.kstar*2, chartWidth, 10)

	a.status = ""
	a.state = stateDash
	return a
}

func (a App) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateParams:
		return a.viewParams()
	case stateDash:
		return a.viewDash()
	}
	return ""
}

func (a App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n  " + headerStyle.Render("SOLOW") + "\n")
	b.WriteString("  " + subtleStyle.Render("growth model workbench") + "\n\n")
	for i, name := range a.families {
		line := fmt.Sprintf("%-16s %s", name, familyInfo[name])
		if i == a.cursor {
			b.WriteString("  " + cursorStyle.Render("▸ ") + activeStyle.Render(line) + "\n")
		} else {
			b.WriteString("    " + subtleStyle.Render(line) + "\n")
		}
	}
	b.WriteString(helpStyle.Render("\n  j/k navigate  enter select  q quit"))
	return b.String()
}

func (a App) viewParams() string {
	var b strings.Builder
	b.WriteString("\n  " + headerStyle.Render(strings.ToUpper(a.family)) + "\n")
	b.WriteString("  " + subtleStyle.Render(familyInfo[a.family]) + "\n\n")
	for i, name := range a.paramNames {
		val := strconv.FormatFloat(a.params[name], 'f', 4, 64)
		if a.editing && i == a.paramCursor {
			val = a.editBuf + "_"
		}
		line := fmt.Sprintf("%-8s %10s", name, val)
		if i == a.paramCursor {
			b.WriteString("  " + cursorStyle.Render("▸ ") + activeStyle.Render(line) + "\n")
		} else {
			b.WriteString("    " + subtleStyle.Render(line) + "\n")
		}
	}
	if a.status != "" {
		b.WriteString("\n  " + errorStyle.Render(a.status) + "\n")
	}
	b.WriteString(helpStyle.Render("\n  j/k select  h/l nudge  enter type  s solve  esc back  q quit"))
	return b.String()
}

func (a App) viewDash() string {
	var b strings.Builder
	b.WriteString("\n  " + headerStyle.Render(strings.ToUpper(a.family)) + "\n")

	if a.status != "" {
		b.WriteString("  " + errorStyle.Render(a.status) + "\n")
	} else if !a.converged {
		b.WriteString("  " + errorStyle.Render("solver did not converge") + "\n")
	}

	b.WriteString(graphStyle.Render(a.diagram) + "\n")

	row := func(label, value string) {
		b.WriteString("  " + labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("k*", fmt.Sprintf("%.6f", a.kstar))
	row("y*", fmt.Sprintf("%.6f", a.ystar))
	row("c*", fmt.Sprintf("%.6f", (1-a.params["s"])*a.ystar))
	if a.goldenOK {
		row("golden s", fmt.Sprintf("%.6f", a.golden.SavingsRate))
		row("golden k", fmt.Sprintf("%.6f", a.golden.Capital))
	}
	row("lambda", fmt.Sprintf("%.6f", a.lambda))
	row("half-life", fmt.Sprintf("%.2f", a.halfLife))
	row("solver", fmt.Sprintf("%s (%d iterations)", a.method.Name(), a.iterations))

	sel := ""
	if len(a.paramNames) > 0 {
		name := a.paramNames[a.paramCursor]
		sel = fmt.Sprintf("%s = %.4f", name, a.params[name])
	}
	b.WriteString("\n  " + cursorStyle.Render("▸ ") + activeStyle.Render(sel) + "\n")
	b.WriteString(helpStyle.Render("\n  tab param  j/k tune ±5%  esc edit  q quit"))
	return b.String()
}
