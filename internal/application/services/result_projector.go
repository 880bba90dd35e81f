package services

import (
	"github.com/elliotchance/pie/v2"

	"github.com/zatekoja/careassist/internal/domain/entities"
)

// Projection is the results view derived from the latest structured reply.
// Providers keep answer order; Insurance is the first insurance answer, if any.
type Projection struct {
	Providers []entities.ProviderAnswer `json:"providers"`
	Insurance *entities.InsuranceAnswer `json:"insurance"`
}

// Project derives the projection from a whole log. An empty log, or one with
// no structured reply yet, projects to no providers and no insurance.
func Project(turns []entities.Turn) Projection {
	latest, ok := latestWithPayload(turns)
	if !ok {
		return emptyProjection()
	}
	return projectTurn(latest)
}

// NextProjection folds one newly appended turn into prev. Turns without a
// payload leave the previous results in place.
func NextProjection(prev Projection, turn entities.Turn) Projection {
	if !turn.HasPayload() {
		return prev
	}
	return projectTurn(turn)
}

func projectTurn(turn entities.Turn) Projection {
	if turn.Payload.Result == nil {
		return emptyProjection()
	}
	answers := turn.Payload.Result.Answers

	providerAnswers := pie.Filter(answers, func(a entities.Answer) bool {
		return a.Kind == entities.AnswerKindProvider && a.Provider != nil
	})
	providers := pie.Map(providerAnswers, func(a entities.Answer) entities.ProviderAnswer {
		return *a.Provider
	})
	if providers == nil {
		providers = []entities.ProviderAnswer{}
	}

	var insurance *entities.InsuranceAnswer
	for _, a := range answers {
		if a.Kind == entities.AnswerKindInsurance && a.Insurance != nil {
			ins := *a.Insurance
			insurance = &ins
			break
		}
	}

	return Projection{Providers: providers, Insurance: insurance}
}

func emptyProjection() Projection {
	return Projection{Providers: []entities.ProviderAnswer{}}
}

// ResultProjector memoizes Project over a growing log. It remembers how many
// turns it has seen and folds only the new ones on each call.
type ResultProjector struct {
	seen    int
	current Projection
}

// NewResultProjector creates a projector positioned before the first turn
func NewResultProjector() *ResultProjector {
	return &ResultProjector{current: emptyProjection()}
}

// Project returns the projection for turns, which must extend the sequence
// passed on the previous call. A shorter sequence resets the projector.
func (p *ResultProjector) Project(turns []entities.Turn) Projection {
	if len(turns) < p.seen {
		p.seen = 0
		p.current = emptyProjection()
	}
	for _, turn := range turns[p.seen:] {
		p.current = NextProjection(p.current, turn)
	}
	p.seen = len(turns)
	return p.current
}
