package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"freight-netback/core/determinism"
	"freight-netback/core/session"
	"freight-netback/core/types"
)

// FormStep is a stage of the interactive form
type FormStep int

const (
	StepCountry FormStep = iota
	StepPort
	StepUnit
	StepCost
	StepLocalRate
	StepResult
)

type formKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
	Again  key.Binding
}

var keys = formKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Back:   key.NewBinding(key.WithKeys("esc")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c")),
	Again:  key.NewBinding(key.WithKeys("enter", "n")),
}

// Form is the interactive cascading quote form: country, then a port of
// that country, then unit, then CIF and local rate. Every pass through the
// form produces a fresh quote from the session.
type Form struct {
	sess   *session.Session
	styles Styles

	step    FormStep
	options []string
	cursor  int
	key     types.SelectionKey

	cost      textinput.Model
	localRate textinput.Model

	quote    *types.Quote
	err      error
	quitting bool
}

// NewForm creates a form over a session
func NewForm(sess *session.Session, noColor bool) *Form {
	cost := textinput.New()
	cost.Placeholder = "0.00"
	cost.Prompt = "$ "
	cost.CharLimit = 20

	local := textinput.New()
	local.Prompt = ""
	local.CharLimit = 12

	f := &Form{
		sess:      sess,
		styles:    NewStyles(lipgloss.DefaultRenderer(), noColor),
		cost:      cost,
		localRate: local,
	}
	f.reset()
	return f
}

func (f *Form) reset() {
	f.step = StepCountry
	f.options = f.sess.Countries()
	f.cursor = 0
	f.key = types.SelectionKey{}
	f.quote = nil
	f.err = nil
	f.cost.SetValue("")
	f.localRate.SetValue(f.sess.Calculator().DefaultLocalRate().StringFixed(localRateDecimals))
}

// Step returns the current stage
func (f *Form) Step() FormStep {
	return f.step
}

// Selection returns the choices made so far
func (f *Form) Selection() types.SelectionKey {
	return f.key
}

// Options returns the values offered at a list stage
func (f *Form) Options() []string {
	return append([]string(nil), f.options...)
}

// Quote returns the last computed quote, or nil
func (f *Form) Quote() *types.Quote {
	return f.quote
}

// Err returns the current input error, if any
func (f *Form) Err() error {
	return f.err
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}
	if key.Matches(km, keys.Quit) {
		f.quitting = true
		return f, tea.Quit
	}

	switch f.step {
	case StepCountry, StepPort, StepUnit:
		return f.updateList(km)
	case StepCost, StepLocalRate:
		return f.updateInput(km)
	default:
		switch {
		case key.Matches(km, keys.Again):
			f.reset()
		case km.String() == "q", key.Matches(km, keys.Back):
			f.quitting = true
			return f, tea.Quit
		}
		return f, nil
	}
}

func (f *Form) updateList(km tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(km, keys.Up):
		if f.cursor > 0 {
			f.cursor--
		}
	case key.Matches(km, keys.Down):
		if f.cursor < len(f.options)-1 {
			f.cursor++
		}
	case key.Matches(km, keys.Back):
		if f.step == StepCountry {
			f.quitting = true
			return f, tea.Quit
		}
		f.reset()
	case km.String() == "q":
		f.quitting = true
		return f, tea.Quit
	case key.Matches(km, keys.Select):
		return f, f.choose(f.selected())
	}
	return f, nil
}

func (f *Form) selected() string {
	if len(f.options) == 0 {
		return ""
	}
	return f.options[f.cursor]
}

func (f *Form) choose(value string) tea.Cmd {
	f.cursor = 0
	switch f.step {
	case StepCountry:
		f.key.Country = value
		f.options = f.sess.Ports(value)
		f.step = StepPort
	case StepPort:
		f.key.DestinationPort = value
		f.options = f.sess.Units()
		f.step = StepUnit
	case StepUnit:
		f.key.Unit = value
		f.options = nil
		if !f.sess.Lookup(f.key).Found() {
			f.finish(decimal.Zero, decimal.NullDecimal{})
			return nil
		}
		f.step = StepCost
		return f.cost.Focus()
	}
	return nil
}

func (f *Form) updateInput(km tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(km, keys.Back) {
		f.cost.Blur()
		f.localRate.Blur()
		f.reset()
		return f, nil
	}

	if !key.Matches(km, keys.Select) {
		var cmd tea.Cmd
		if f.step == StepCost {
			f.cost, cmd = f.cost.Update(km)
		} else {
			f.localRate, cmd = f.localRate.Update(km)
		}
		return f, cmd
	}

	if f.step == StepCost {
		if _, err := parseAmount(f.cost.Value()); err != nil {
			f.err = fmt.Errorf("CIF: %w", err)
			return f, nil
		}
		f.err = nil
		f.cost.Blur()
		f.step = StepLocalRate
		return f, f.localRate.Focus()
	}

	local, err := parseAmount(f.localRate.Value())
	if err != nil {
		f.err = fmt.Errorf("local rate: %w", err)
		return f, nil
	}
	cost, _ := parseAmount(f.cost.Value())
	f.localRate.Blur()
	f.finish(cost, decimal.NewNullDecimal(local.Round(localRateDecimals)))
	return f, nil
}

func (f *Form) finish(cost decimal.Decimal, localRate decimal.NullDecimal) {
	q, err := f.sess.Quote(f.key, cost, localRate)
	if err != nil {
		f.err = err
		return
	}
	f.err = nil
	f.quote = &q
	f.step = StepResult
}

// localRateDecimals is the precision of the local rate input
const localRateDecimals = 4

// parseAmount reads a non-negative number; empty is zero
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("must not be negative")
	}
	return d, nil
}

// View implements tea.Model
func (f *Form) View() string {
	if f.quitting {
		return ""
	}
	s := f.styles
	var b strings.Builder

	b.WriteString(s.Header.Render("Freight Rate Netback Calculator") + "\n\n")
	b.WriteString(s.Sub.Render("Select Specifications") + "\n")
	f.viewField(&b, "Country", f.key.Country, StepCountry)
	f.viewField(&b, "Destination Port", f.key.DestinationPort, StepPort)
	f.viewField(&b, "Unit", f.key.Unit, StepUnit)

	switch f.step {
	case StepCountry, StepPort, StepUnit:
		b.WriteString("\n")
		if len(f.options) == 0 {
			b.WriteString(s.Dim.Render("  (none)") + "\n")
		}
		for i, opt := range f.options {
			if i == f.cursor {
				b.WriteString(s.Value.Render("> "+opt) + "\n")
			} else {
				b.WriteString("  " + opt + "\n")
			}
		}
	case StepCost, StepLocalRate:
		f.viewRate(&b)
		b.WriteString("\n" + s.Sub.Render("Netback Calculation") + "\n")
		b.WriteString("Enter CIF (Cost, Insurance, Freight) in Dollars ($)\n" + f.cost.View() + "\n")
		if f.step == StepLocalRate {
			fmt.Fprintf(&b, "Enter Local Rate (default: %s)\n%s\n", f.sess.Calculator().DefaultLocalRate().StringFixed(localRateDecimals), f.localRate.View())
		}
	case StepResult:
		f.viewRate(&b)
		b.WriteString("\n" + s.Sub.Render("Netback Calculation") + "\n")
		switch {
		case f.quote.Netback.Computed():
			b.WriteString(s.Success.Render("✓ Calculated Netback: "+determinism.NewMoney(f.quote.Netback.Value).String()) + "\n")
		default:
			b.WriteString(s.Info.Render("ℹ "+f.quote.Netback.Status.Message()) + "\n")
		}
	}

	if f.err != nil {
		b.WriteString("\n" + s.Error.Render("✗ "+f.err.Error()) + "\n")
	}
	b.WriteString("\n" + s.Dim.Render(f.help()) + "\n")
	return b.String()
}

func (f *Form) viewField(b *strings.Builder, label, value string, step FormStep) {
	if f.step == step {
		value = "…"
	} else if f.step < step {
		value = ""
	}
	b.WriteString(f.styles.Label.Render("  "+label+":") + " " + value + "\n")
}

func (f *Form) viewRate(b *strings.Builder) {
	s := f.styles
	b.WriteString("\n" + s.Sub.Render("Freight Rate Information") + "\n")
	lookup := f.sess.Lookup(f.key)
	if lookup.Found() {
		b.WriteString(s.Success.Render(fmt.Sprintf("✓ Freight Rate (%s): %s", types.ColumnRate, determinism.NewMoney(lookup.Rate))) + "\n")
		return
	}
	b.WriteString(s.Warning.Render("⚠ "+lookup.Status.Message()) + "\n")
}

func (f *Form) help() string {
	switch f.step {
	case StepCountry:
		return "↑/↓ move • enter select • q quit"
	case StepPort, StepUnit:
		return "↑/↓ move • enter select • esc start over • q quit"
	case StepCost, StepLocalRate:
		return "enter confirm • esc start over • ctrl+c quit"
	default:
		return "enter new quote • q quit"
	}
}

// RunForm runs the form until the user quits
func RunForm(sess *session.Session, in io.Reader, out io.Writer, noColor bool) error {
	p := tea.NewProgram(NewForm(sess, noColor), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
