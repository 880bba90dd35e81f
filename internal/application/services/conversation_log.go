package services

import (
	"github.com/zatekoja/careassist/internal/domain/entities"
)

// ConversationLog is the ordered, append-only sequence of turns in one session.
// It is not safe for concurrent use; Session serializes access.
type ConversationLog struct {
	turns []entities.Turn
}

// NewConversationLog creates a log seeded with the assistant greeting
func NewConversationLog() *ConversationLog {
	return &ConversationLog{
		turns: []entities.Turn{entities.GreetingTurn()},
	}
}

// Append adds a turn at the end of the log
func (l *ConversationLog) Append(turn entities.Turn) {
	l.turns = append(l.turns, turn)
}

// Turns returns a copy of the log in order
func (l *ConversationLog) Turns() []entities.Turn {
	out := make([]entities.Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns
func (l *ConversationLog) Len() int {
	return len(l.turns)
}

// LatestAssistantWithPayload returns the most recent assistant turn that
// carries a structured result.
func (l *ConversationLog) LatestAssistantWithPayload() (entities.Turn, bool) {
	return latestWithPayload(l.turns)
}

func latestWithPayload(turns []entities.Turn) (entities.Turn, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].HasPayload() {
			return turns[i], true
		}
	}
	return entities.Turn{}, false
}
