package services

import (
	"strings"

	"github.com/elliotchance/pie/v2"
	"golang.org/x/text/cases"

	"github.com/zatekoja/careassist/internal/domain/entities"
	apperrors "github.com/zatekoja/careassist/pkg/errors"
)

// AppointmentTypeFilter restricts providers by appointment type
type AppointmentTypeFilter string

const (
	AppointmentTypeAll         AppointmentTypeFilter = "ALL"
	AppointmentTypeNew         AppointmentTypeFilter = entities.AppointmentTypeNew
	AppointmentTypeEstablished AppointmentTypeFilter = entities.AppointmentTypeEstablished
)

// ParseAppointmentTypeFilter accepts all/new/established in any case, plus
// the "All types" label. An empty value means all.
func ParseAppointmentTypeFilter(value string) (AppointmentTypeFilter, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all", "all types":
		return AppointmentTypeAll, nil
	case "new":
		return AppointmentTypeNew, nil
	case "established":
		return AppointmentTypeEstablished, nil
	default:
		return "", apperrors.NewValidationError("appointment type must be one of all, new, established")
	}
}

// FilterProviders returns the providers matching both the text query and the
// appointment type, in their original order. The input slice is not modified.
func FilterProviders(providers []entities.ProviderAnswer, query string, typ AppointmentTypeFilter) []entities.ProviderAnswer {
	folder := cases.Fold()
	needle := folder.String(query)

	matched := pie.Filter(providers, func(p entities.ProviderAnswer) bool {
		return matchesText(folder, p, needle) && matchesType(p, typ)
	})
	if matched == nil {
		return []entities.ProviderAnswer{}
	}
	return matched
}

func matchesText(folder cases.Caser, p entities.ProviderAnswer, needle string) bool {
	if needle == "" {
		return true
	}
	haystack := folder.String(p.Provider + " " + p.Specialty + " " + p.Department)
	return strings.Contains(haystack, needle)
}

func matchesType(p entities.ProviderAnswer, typ AppointmentTypeFilter) bool {
	if typ == "" || typ == AppointmentTypeAll {
		return true
	}
	return strings.EqualFold(p.AppointmentType, string(typ))
}
