package screens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/kerbaras/mangaverse/pkg/app/components"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/kerbaras/mangaverse/pkg/store"
	"go.uber.org/zap"
)

type storeField int

const (
	coinsField storeField = iota
	amountField
	packagesField
	payeeField
	storeFieldCount
)

// StoreScreen is the coin purchase form.
type StoreScreen struct {
	deps     Deps
	keys     ListKeyMap
	coins    textinput.Model
	amount   textinput.Model
	payee    textinput.Model
	focus    storeField
	pkgIndex int

	opID    uuid.UUID
	order   *store.Order
	tracker *components.ProgressTracker
	toast   components.Toast

	width  int
	height int
}

func NewStoreScreen(deps Deps) *StoreScreen {
	coins := textinput.New()
	coins.Prompt = "Coins  "
	coins.CharLimit = 6
	coins.Width = 12

	amount := textinput.New()
	amount.Prompt = "Amount $"
	amount.CharLimit = 10
	amount.Width = 12

	payee := textinput.New()
	payee.Prompt = "PayPal "
	payee.Placeholder = "you@example.com"
	payee.CharLimit = 120
	payee.Width = 36

	s := &StoreScreen{
		deps:     deps,
		keys:     DefaultListKeyMap(),
		coins:    coins,
		amount:   amount,
		payee:    payee,
		pkgIndex: -1,
		tracker:  components.NewProgressTracker(60),
	}
	s.syncFields()
	return s
}

func (s *StoreScreen) Init() tea.Cmd {
	s.syncFields()
	return s.setFocus(s.focus)
}

func (s *StoreScreen) calc() *store.Calculator {
	return s.deps.State.Calculator()
}

// Processing reports whether a payment is in flight.
func (s *StoreScreen) Processing() bool {
	return s.order != nil
}

// syncFields writes the current quote into both number fields.
func (s *StoreScreen) syncFields() {
	q := s.calc().Quote()
	s.coins.SetValue(strconv.FormatInt(q.Coins, 10))
	s.amount.SetValue(q.AmountString())
}

func (s *StoreScreen) setFocus(f storeField) tea.Cmd {
	if f != s.focus {
		s.syncFields()
	}
	s.focus = f
	s.coins.Blur()
	s.amount.Blur()
	s.payee.Blur()
	switch f {
	case coinsField:
		return s.coins.Focus()
	case amountField:
		return s.amount.Focus()
	case payeeField:
		return s.payee.Focus()
	}
	return nil
}

// Leave cancels a payment in flight and takes its coins back.
func (s *StoreScreen) Leave() tea.Cmd {
	if n := s.deps.Runner.CancelOwner(ownerStore); n > 0 {
		s.deps.Logger.Info("Cancelled store operations", zap.Int("count", n))
	}
	s.deps.State.AbortPurchase()
	s.tracker.Clear()
	s.toast.Hide()
	s.order = nil
	s.opID = uuid.Nil
	return nil
}

func (s *StoreScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case OperationDoneMsg:
		s.tracker.Update(msg.Result)
		return s, s.finish(msg.Result.ID, msg.Value, msg.Err)

	case spinner.TickMsg:
		return s, s.tracker.Update(msg)

	case components.ToastExpiredMsg:
		s.toast.Update(msg)
		return s, nil

	case tea.KeyMsg:
		if s.Processing() {
			return s, nil
		}
		return s, s.handleKey(msg)
	}

	return s, cmd
}

func (s *StoreScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyUp:
		return s.setFocus((s.focus + storeFieldCount - 1) % storeFieldCount)
	case msg.Type == tea.KeyDown:
		return s.setFocus((s.focus + 1) % storeFieldCount)
	case key.Matches(msg, s.keys.Enter):
		if s.focus == packagesField {
			s.selectPackage()
			return nil
		}
		if s.focus != payeeField {
			return s.setFocus(s.focus + 1)
		}
		return s.buy()
	}

	var cmd tea.Cmd
	switch s.focus {
	case coinsField:
		s.coins, cmd = s.coins.Update(msg)
		q := s.calc().ParseCoins(s.coins.Value())
		s.amount.SetValue(q.AmountString())
		s.pkgIndex = -1
		typed, err := strconv.ParseInt(strings.TrimSpace(s.coins.Value()), 10, 64)
		if errors.Is(err, strconv.ErrRange) || (err == nil && typed != q.Coins) {
			s.coins.SetValue(strconv.FormatInt(q.Coins, 10))
			s.coins.CursorEnd()
		}
	case amountField:
		s.amount, cmd = s.amount.Update(msg)
		q := s.calc().ParseAmount(s.amount.Value())
		s.coins.SetValue(strconv.FormatInt(q.Coins, 10))
		s.pkgIndex = -1
	case packagesField:
		n := len(store.DefaultPackages)
		switch msg.String() {
		case "left", "h":
			s.pkgIndex = (s.pkgIndex - 1 + n) % n
		case "right", "l":
			s.pkgIndex = (s.pkgIndex + 1) % n
		}
	case payeeField:
		s.payee, cmd = s.payee.Update(msg)
	}
	return cmd
}

func (s *StoreScreen) selectPackage() {
	if s.pkgIndex < 0 || s.pkgIndex >= len(store.DefaultPackages) {
		return
	}
	s.calc().SelectPackage(store.DefaultPackages[s.pkgIndex])
	s.syncFields()
}

// buy validates the form and starts the charge in the background.
func (s *StoreScreen) buy() tea.Cmd {
	order, err := s.deps.State.BeginPurchase(s.payee.Value())
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			return s.toast.Show(components.ToastError, verr.Title, verr.Message, components.DefaultToastDuration)
		}
		return s.toast.Show(components.ToastError, "Purchase Failed", err.Error(), components.DefaultToastDuration)
	}

	provider := s.deps.State.Provider()
	charged := *order
	id, err := s.deps.Runner.Start(ownerStore, services.OpPayment, func(ctx context.Context) (any, error) {
		return provider.Charge(ctx, charged)
	})
	if err != nil {
		s.deps.State.AbortPurchase()
		return s.toast.Show(components.ToastError, "Purchase Failed", err.Error(), components.DefaultToastDuration)
	}

	s.order = order
	s.opID = id
	s.toast.Hide()
	return s.tracker.Start(id, services.OpPayment,
		fmt.Sprintf("Processing payment of $%s for %d coins...", order.Amount.StringFixed(2), order.Coins))
}

// finish applies the outcome of the charge identified by id. Results for
// any other operation are stale and ignored.
func (s *StoreScreen) finish(id uuid.UUID, value any, chargeErr error) tea.Cmd {
	if s.order == nil || id != s.opID {
		return nil
	}
	order := s.order
	s.order = nil
	s.opID = uuid.Nil

	conf, _ := value.(store.Confirmation)
	receipt, err := s.deps.State.CompletePurchase(order, conf, chargeErr)
	s.syncFields()
	if err != nil {
		return s.toast.Show(components.ToastError, "Payment Failed", err.Error(), components.DefaultToastDuration)
	}
	return s.toast.Show(components.ToastSuccess, "Purchase Successful",
		fmt.Sprintf("%d coins added to your balance", receipt.Coins), components.DefaultToastDuration)
}

func (s *StoreScreen) View() string {
	theme := s.deps.Theme
	header := theme.Title.Render("💰 Coin Store")

	balance := theme.Subtitle.Render(fmt.Sprintf("Balance: %d coins", s.deps.State.Balance()))
	rate := theme.Muted.Render(fmt.Sprintf("Rate: %s • min %d coins",
		s.deps.State.Rate(), s.calc().Limits().Min))

	field := func(f storeField, in textinput.Model) string {
		style := theme.Input
		if s.focus == f && !s.Processing() {
			style = theme.FocusedInput
		}
		return style.Render(in.View())
	}

	numbers := lipgloss.JoinHorizontal(lipgloss.Center,
		field(coinsField, s.coins), "  ⇄  ", field(amountField, s.amount))

	q := s.calc().Quote()
	summary := theme.Text.Render(fmt.Sprintf("You pay $%s for %d coins", q.AmountString(), q.Coins))
	if !s.deps.State.PaymentsEnabled() {
		summary = theme.StatusWarning.Render("Coin purchases are currently disabled")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n%s\n%s\n\n%s\n\n%s\n\n%s\n\n%s\n\n",
		header, balance, rate, numbers, s.renderPackages(), field(payeeField, s.payee), summary))

	if v := s.tracker.View(theme); v != "" {
		b.WriteString(v)
		b.WriteString("\n")
	}
	if v := s.toast.View(theme); v != "" {
		b.WriteString(v)
		b.WriteString("\n")
	}
	b.WriteString(s.renderReceipts())

	b.WriteString(theme.Help.Render(
		"↑ ↓: field • ←/→: package • enter: select/buy • tab: switch view",
	))
	return b.String()
}

func (s *StoreScreen) renderPackages() string {
	theme := s.deps.Theme
	var cards []string
	for i, p := range store.DefaultPackages {
		label := fmt.Sprintf("%d", p.Coins)
		if p.Bonus > 0 {
			label += fmt.Sprintf(" +%d", p.Bonus)
		}
		if p.Popular {
			label += " ★"
		}
		label += "\n$" + s.deps.State.Rate().Price(p.Total()).StringFixed(2)

		style := theme.Card
		if s.focus == packagesField && i == s.pkgIndex {
			style = theme.ActiveCard
		}
		cards = append(cards, style.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	title := theme.Muted.Render("Quick packages")
	if s.focus == packagesField {
		title = theme.Subtitle.Render("Quick packages")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, row)
}

func (s *StoreScreen) renderReceipts() string {
	theme := s.deps.Theme
	receipts := s.deps.State.Receipts()
	if len(receipts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Recent purchases"))
	b.WriteString("\n")
	start := len(receipts) - 3
	if start < 0 {
		start = 0
	}
	for i := len(receipts) - 1; i >= start; i-- {
		r := receipts[i]
		b.WriteString(theme.Muted.Render(fmt.Sprintf("%s  %d coins  $%s  %s",
			r.At.Format("15:04:05"), r.Coins, r.Amount.StringFixed(2), r.Reference)))
		b.WriteString("\n")
	}
	return b.String()
}
