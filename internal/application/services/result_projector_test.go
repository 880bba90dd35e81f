package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/careassist/internal/application/services"
	"github.com/zatekoja/careassist/internal/domain/entities"
)

func TestConversationLog(t *testing.T) {
	log := services.NewConversationLog()

	require.Equal(t, 1, log.Len())
	first := log.Turns()[0]
	assert.Equal(t, entities.RoleAssistant, first.Role)
	assert.Equal(t, entities.GreetingText, first.Text)
	assert.Nil(t, first.Payload)

	_, ok := log.LatestAssistantWithPayload()
	assert.False(t, ok)

	result := providerResult("one", house)
	log.Append(entities.NewNurseTurn("who?"))
	log.Append(entities.NewAssistantTurn(result))
	log.Append(entities.Turn{Role: entities.RoleAssistant, Text: "no payload"})

	latest, ok := log.LatestAssistantWithPayload()
	require.True(t, ok)
	assert.Same(t, result, latest.Payload)

	turns := log.Turns()
	turns[0].Text = "mutated"
	assert.Equal(t, entities.GreetingText, log.Turns()[0].Text)
	assert.Equal(t, 4, log.Len())
}

func TestProject_EmptyLog(t *testing.T) {
	projection := services.Project(nil)
	assert.Empty(t, projection.Providers)
	assert.NotNil(t, projection.Providers)
	assert.Nil(t, projection.Insurance)

	projection = services.Project(services.NewConversationLog().Turns())
	assert.Empty(t, projection.Providers)
	assert.Nil(t, projection.Insurance)
}

func TestProject_LatestPayloadWins(t *testing.T) {
	aetna := entities.InsuranceAnswer{Insurance: strPtr("Aetna"), Accepted: entities.AcceptanceAccepted}
	cigna := entities.InsuranceAnswer{Insurance: strPtr("Cigna"), Accepted: entities.AcceptanceRejected}

	older := providerResult("older", grey)
	newer := &entities.AssistResult{
		Wording: "newer",
		Result: &entities.AssistPayload{Answers: []entities.Answer{
			entities.NewProviderAnswer(house),
			entities.NewInsuranceAnswer(aetna),
			{Kind: entities.AnswerKindUnknown, Raw: []byte(`{"note":"x"}`)},
			entities.NewProviderAnswer(yang),
			entities.NewInsuranceAnswer(cigna),
		}},
	}

	turns := []entities.Turn{
		entities.GreetingTurn(),
		entities.NewNurseTurn("a"),
		entities.NewAssistantTurn(older),
		entities.NewNurseTurn("b"),
		entities.NewAssistantTurn(newer),
		{Role: entities.RoleAssistant, Text: "later, no payload"},
	}

	projection := services.Project(turns)

	assert.Equal(t, []entities.ProviderAnswer{house, yang}, projection.Providers)
	require.NotNil(t, projection.Insurance)
	assert.Equal(t, "Aetna", projection.Insurance.InsuranceName())
}

func TestProject_Idempotent(t *testing.T) {
	turns := []entities.Turn{
		entities.GreetingTurn(),
		entities.NewNurseTurn("a"),
		entities.NewAssistantTurn(providerResult("r", house, grey)),
	}

	assert.Equal(t, services.Project(turns), services.Project(turns))

	projector := services.NewResultProjector()
	first := projector.Project(turns)
	second := projector.Project(turns)
	assert.Equal(t, first, second)
	assert.Equal(t, services.Project(turns), first)
}

func TestResultProjector_MatchesFullProjection(t *testing.T) {
	log := services.NewConversationLog()
	projector := services.NewResultProjector()

	steps := []entities.Turn{
		entities.NewNurseTurn("a"),
		entities.NewAssistantTurn(providerResult("r1", house)),
		entities.NewNurseTurn("b"),
		{Role: entities.RoleAssistant, Text: "no payload"},
		entities.NewNurseTurn("c"),
		entities.NewAssistantTurn(providerResult("r2", grey, yang)),
	}

	for _, turn := range steps {
		log.Append(turn)
		assert.Equal(t, services.Project(log.Turns()), projector.Project(log.Turns()))
	}

	// a shorter log resets the memo
	assert.Equal(t, services.Project(nil), projector.Project(nil))
}

func TestNextProjection_PayloadlessTurnKeepsResults(t *testing.T) {
	prev := services.Project([]entities.Turn{entities.NewAssistantTurn(providerResult("r", house))})

	next := services.NextProjection(prev, entities.NewNurseTurn("again"))
	assert.Equal(t, prev, next)

	next = services.NextProjection(prev, entities.GreetingTurn())
	assert.Equal(t, prev, next)
}

func TestProject_InsuranceOnly(t *testing.T) {
	result := &entities.AssistResult{
		Wording: "coverage",
		Result: &entities.AssistPayload{Answers: []entities.Answer{
			entities.NewInsuranceAnswer(entities.InsuranceAnswer{Message: "No insurance on file"}),
		}},
	}

	projection := services.Project([]entities.Turn{entities.NewAssistantTurn(result)})

	assert.Empty(t, projection.Providers)
	require.NotNil(t, projection.Insurance)
	assert.Equal(t, entities.AcceptanceUnknown, projection.Insurance.Accepted)
	assert.Equal(t, "", projection.Insurance.InsuranceName())
}
