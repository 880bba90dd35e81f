package views

import (
	"strings"

	"github.com/elliotchance/pie/v2"

	"github.com/zatekoja/careassist/internal/application/services"
	"github.com/zatekoja/careassist/internal/domain/entities"
)

// Tone is the visual emphasis of a badge
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
	ToneNeutral Tone = "neutral"
	ToneBrand   Tone = "brand"
)

const (
	BusyText       = "thinking..."
	EmptyStateText = "No providers yet - send a prompt to fetch availability."
)

// InsuranceBadge summarizes the insurance verdict of the latest reply.
// Present is false when the reply carried no insurance answer at all.
type InsuranceBadge struct {
	Label         string                  `json:"label"`
	Tone          Tone                    `json:"tone"`
	Text          string                  `json:"text"`
	Present       bool                    `json:"present"`
	Detail        string                  `json:"detail,omitempty"`
	SelfPayQuotes []entities.SelfPayQuote `json:"self_pay_quotes,omitempty"`
}

// ProviderCard is one provider rendered for the results panel
type ProviderCard struct {
	Name       string                `json:"name"`
	Subtitle   string                `json:"subtitle"`
	Badge      string                `json:"badge"`
	BadgeTone  Tone                  `json:"badge_tone"`
	Department string                `json:"department"`
	Address    string                `json:"address,omitempty"`
	Hours      string                `json:"hours"`
	Phone      string                `json:"phone"`
	Slot       *services.SlotDisplay `json:"slot,omitempty"`
}

// Bubble is one transcript entry
type Bubble struct {
	Role entities.Role `json:"role"`
	Text string        `json:"text"`
}

// SessionView is everything a front end needs to draw one session
type SessionView struct {
	SessionID    string         `json:"session_id"`
	PatientID    string         `json:"patient_id"`
	Draft        string         `json:"draft"`
	Bubbles      []Bubble       `json:"bubbles"`
	Busy         bool           `json:"busy"`
	BusyText     string         `json:"busy_text,omitempty"`
	Error        string         `json:"error,omitempty"`
	Insurance    InsuranceBadge `json:"insurance"`
	FilterText   string         `json:"filter_text"`
	FilterType   string         `json:"filter_type"`
	Providers    []ProviderCard `json:"providers"`
	EmptyState   string         `json:"empty_state,omitempty"`
	QuickPrompts []string       `json:"quick_prompts"`
}

// NewInsuranceBadge builds the badge for ans, which may be nil
func NewInsuranceBadge(ans *entities.InsuranceAnswer) InsuranceBadge {
	if ans == nil {
		return InsuranceBadge{
			Label: entities.AcceptanceUnknown.String(),
			Tone:  ToneNeutral,
			Text:  "Insurance unknown",
		}
	}

	badge := InsuranceBadge{
		Label:         ans.Accepted.String(),
		Present:       true,
		Detail:        ans.Message,
		SelfPayQuotes: ans.SelfPayQuotes,
	}
	switch ans.Accepted {
	case entities.AcceptanceAccepted:
		badge.Tone = ToneSuccess
	case entities.AcceptanceRejected:
		badge.Tone = ToneDanger
	default:
		badge.Tone = ToneNeutral
	}

	name := ans.InsuranceName()
	if name == "" {
		name = "Insurance"
	}
	badge.Text = name + " " + badge.Label
	return badge
}

// NewProviderCard builds the card for p
func NewProviderCard(p entities.ProviderAnswer) ProviderCard {
	card := ProviderCard{
		Name:       p.Provider,
		Subtitle:   joinNonEmpty(" • ", p.Certification, p.Specialty),
		Badge:      strings.TrimSpace(p.AppointmentType + " visit"),
		BadgeTone:  ToneBrand,
		Department: orDefault(p.Department, "Department"),
		Address:    p.Address,
		Hours:      orDefault(p.Hours, "See office"),
		Phone:      orDefault(p.Phone, "-"),
	}
	if strings.EqualFold(p.AppointmentType, entities.AppointmentTypeEstablished) {
		card.BadgeTone = ToneSuccess
	}
	if p.SuggestedSlot != "" {
		slot := services.FormatSlot(p.SuggestedSlot)
		card.Slot = &slot
	}
	return card
}

// NewSessionView renders a snapshot
func NewSessionView(snap services.SessionSnapshot) SessionView {
	view := SessionView{
		SessionID:    snap.ID,
		PatientID:    snap.PatientID,
		Draft:        snap.Draft,
		Busy:         snap.Busy,
		Error:        snap.Error,
		Insurance:    NewInsuranceBadge(snap.Projection.Insurance),
		FilterText:   snap.FilterText,
		FilterType:   string(snap.FilterType),
		QuickPrompts: services.QuickPrompts(),
		Bubbles: pie.Map(snap.Turns, func(t entities.Turn) Bubble {
			return Bubble{Role: t.Role, Text: t.Text}
		}),
		Providers: pie.Map(snap.Providers, NewProviderCard),
	}
	if view.Providers == nil {
		view.Providers = []ProviderCard{}
	}
	if view.Busy {
		view.BusyText = BusyText
	}
	if len(view.Providers) == 0 {
		view.EmptyState = EmptyStateText
	}
	return view
}

func joinNonEmpty(sep string, parts ...string) string {
	return strings.Join(pie.Filter(parts, func(s string) bool { return s != "" }), sep)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
