package engine

import (
	"fmt"

	"github.com/talgya/narcosim/internal/economy"
)

// DailyUpdateResult is what one day advance produced. The caller applies the
// "what changed" fields back onto the state; Game.AdvanceDay does this.
type DailyUpdateResult struct {
	Day         int            `json:"day"`
	GameOver    string         `json:"game_over,omitempty"`
	Won         bool           `json:"won,omitempty"`
	Blocking    *BlockingEvent `json:"blocking,omitempty"`
	UIMessages  []string       `json:"ui_messages"`
	LogMessages []string       `json:"log_messages"`
	Jailed      bool           `json:"jailed,omitempty"`

	SkillPointAwarded         bool               `json:"skill_point_awarded,omitempty"`
	SkillPoints               int                `json:"skill_points"`
	Laundering                *LaunderingArrival `json:"laundering,omitempty"`
	InformantUnavailableUntil int                `json:"informant_unavailable_until,omitempty"`
}

// BlockingEvent is the single event the player must acknowledge today.
type BlockingEvent struct {
	Type     economy.EventType `json:"type"`
	Title    string            `json:"title"`
	Messages []string          `json:"messages"`
	Choices  []string          `json:"choices,omitempty"`
}

// LaunderingArrival reports laundered funds credited today.
type LaunderingArrival struct {
	Amount float64 `json:"amount"`
	Coin   string  `json:"coin"`
}

func newResult(day, skillPoints int) *DailyUpdateResult {
	return &DailyUpdateResult{Day: day, SkillPoints: skillPoints}
}

// say records a message for the player and the journal.
func (r *DailyUpdateResult) say(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.UIMessages = append(r.UIMessages, msg)
	r.LogMessages = append(r.LogMessages, msg)
}

// note records a journal-only message.
func (r *DailyUpdateResult) note(format string, args ...any) {
	r.LogMessages = append(r.LogMessages, fmt.Sprintf(format, args...))
}
