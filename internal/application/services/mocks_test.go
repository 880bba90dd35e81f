package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/careassist/internal/domain/entities"
)

type MockAssistProvider struct {
	mock.Mock
}

func (m *MockAssistProvider) Send(ctx context.Context, message, patientID string) (*entities.AssistResult, error) {
	args := m.Called(ctx, message, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AssistResult), args.Error(1)
}

func strPtr(s string) *string {
	return &s
}

func providerResult(wording string, providers ...entities.ProviderAnswer) *entities.AssistResult {
	answers := make([]entities.Answer, 0, len(providers))
	for _, p := range providers {
		answers = append(answers, entities.NewProviderAnswer(p))
	}
	return &entities.AssistResult{
		Wording: wording,
		Result:  &entities.AssistPayload{Answers: answers},
	}
}

var (
	house = entities.ProviderAnswer{
		Provider:        "House, Gregory MD",
		Certification:   "MD",
		Specialty:       "Orthopedics",
		Department:      "Sinai Hospital",
		AppointmentType: entities.AppointmentTypeNew,
		SuggestedSlot:   "2024-03-14 09:30",
	}
	grey = entities.ProviderAnswer{
		Provider:        "Grey, Meredith MD",
		Specialty:       "Primary Care",
		Department:      "Grey Sloan Medical",
		AppointmentType: entities.AppointmentTypeEstablished,
	}
	yang = entities.ProviderAnswer{
		Provider:        "Yang, Cristina MD",
		Specialty:       "Surgery",
		Department:      "Grey Sloan Medical",
		AppointmentType: "new",
	}
)
