// Debt calendar.
package engine

// DebtView is one scheduled cartel payment.
type DebtView struct {
	Installment int     `json:"installment"`
	Day         int     `json:"day"`
	Amount      float64 `json:"amount"`
	DaysLeft    int     `json:"days_left"`
	Paid        bool    `json:"paid"`
}

// Debts lists the payment schedule with its paid flags.
func (g *Game) Debts() []DebtView {
	out := make([]DebtView, 0, len(g.cfg.Debts))
	for i, d := range g.cfg.Debts {
		out = append(out, DebtView{
			Installment: i + 1,
			Day:         d.Day,
			Amount:      d.Amount,
			DaysLeft:    max(0, d.Day-g.State.Day),
			Paid:        g.State.Player.DebtPaid[i],
		})
	}
	return out
}

// NextDebt returns the earliest unpaid installment.
func (g *Game) NextDebt() (DebtView, bool) {
	for _, d := range g.Debts() {
		if !d.Paid {
			return d, true
		}
	}
	return DebtView{}, false
}
