package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/careassist/internal/application/services"
	"github.com/zatekoja/careassist/internal/domain/entities"
	apperrors "github.com/zatekoja/careassist/pkg/errors"
)

func TestFilterProviders(t *testing.T) {
	all := []entities.ProviderAnswer{house, grey, yang}

	tests := []struct {
		name  string
		query string
		typ   services.AppointmentTypeFilter
		want  []entities.ProviderAnswer
	}{
		{"empty query and all is identity", "", services.AppointmentTypeAll, all},
		{"text matches provider name", "house", services.AppointmentTypeAll, []entities.ProviderAnswer{house}},
		{"text matches specialty case-insensitively", "PRIMARY", services.AppointmentTypeAll, []entities.ProviderAnswer{grey}},
		{"text matches department", "sloan", services.AppointmentTypeAll, []entities.ProviderAnswer{grey, yang}},
		{"type new ignores case of appointment_type", "", services.AppointmentTypeNew, []entities.ProviderAnswer{house, yang}},
		{"type established", "", services.AppointmentTypeEstablished, []entities.ProviderAnswer{grey}},
		{"text and type are combined", "sloan", services.AppointmentTypeNew, []entities.ProviderAnswer{yang}},
		{"no match", "cardiology", services.AppointmentTypeAll, []entities.ProviderAnswer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.FilterProviders(all, tt.query, tt.typ)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterProviders_SubsetAndNoMutation(t *testing.T) {
	input := []entities.ProviderAnswer{house, grey, yang}
	original := append([]entities.ProviderAnswer(nil), input...)

	queries := []string{"", "a", "md", "Grey", "zzz", "surgery"}
	types := []services.AppointmentTypeFilter{
		services.AppointmentTypeAll, services.AppointmentTypeNew, services.AppointmentTypeEstablished,
	}

	for _, q := range queries {
		for _, typ := range types {
			got := services.FilterProviders(input, q, typ)
			require.NotNil(t, got)
			assert.LessOrEqual(t, len(got), len(input))
			for _, p := range got {
				assert.Contains(t, input, p)
			}
		}
	}
	assert.Equal(t, original, input)

	identity := services.FilterProviders(input, "", services.AppointmentTypeAll)
	identity[0].Provider = "changed"
	assert.Equal(t, original, input)
}

func TestFilterProviders_UnicodeFolding(t *testing.T) {
	providers := []entities.ProviderAnswer{{Provider: "Dr. Strauß", Specialty: "Dermatology"}}

	assert.Len(t, services.FilterProviders(providers, "STRAUSS", services.AppointmentTypeAll), 1)
}

func TestParseAppointmentTypeFilter(t *testing.T) {
	tests := []struct {
		input string
		want  services.AppointmentTypeFilter
	}{
		{"", services.AppointmentTypeAll},
		{"all", services.AppointmentTypeAll},
		{"All types", services.AppointmentTypeAll},
		{"NEW", services.AppointmentTypeNew},
		{"New", services.AppointmentTypeNew},
		{" established ", services.AppointmentTypeEstablished},
	}

	for _, tt := range tests {
		got, err := services.ParseAppointmentTypeFilter(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := services.ParseAppointmentTypeFilter("follow-up")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestFormatSlot(t *testing.T) {
	display := services.FormatSlot("2024-03-14 09:30")
	assert.True(t, display.Localized)
	assert.Equal(t, "Thu, Mar 14, 9:30 AM", display.Text)
	assert.Contains(t, display.Text, "Mar 14")
	assert.Contains(t, display.Text, "9:30")

	afternoon := services.FormatSlot("2024-12-02 15:05")
	assert.Equal(t, "Mon, Dec 2, 3:05 PM", afternoon.Text)

	for _, raw := range []string{"not-a-date", "", "2024-03-14T09:30:00Z", "Thursday morning", " 2024-03-14 09:30 ", "2024-03-14 09:30\n"} {
		display := services.FormatSlot(raw)
		assert.False(t, display.Localized, raw)
		assert.Equal(t, raw, display.Text)
	}
}

func TestQuickPrompts(t *testing.T) {
	prompts := services.QuickPrompts()
	require.Len(t, prompts, 3)
	assert.Equal(t, "Who is the provider for the next appointment?", prompts[1])

	prompts[0] = "changed"
	p, ok := services.QuickPrompt(0)
	assert.True(t, ok)
	assert.Equal(t, "Give me the patient's first name, last name, and DOB.", p)

	_, ok = services.QuickPrompt(3)
	assert.False(t, ok)
	_, ok = services.QuickPrompt(-1)
	assert.False(t, ok)
}
