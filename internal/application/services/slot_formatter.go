package services

import "time"

const (
	slotInputLayout   = "2006-01-02 15:04"
	slotDisplayLayout = "Mon, Jan 2, 3:04 PM"
)

// SlotDisplay is a suggested slot ready for rendering. Localized is false when
// the backend value could not be parsed and Text is the original string.
type SlotDisplay struct {
	Text      string `json:"text"`
	Localized bool   `json:"localized"`
}

// FormatSlot renders a "YYYY-MM-DD HH:MM" slot as a short weekday, month, day
// and time. The value must match the layout exactly, surrounding whitespace
// included. It never fails; unparseable input comes back unchanged.
func FormatSlot(raw string) SlotDisplay {
	t, err := time.ParseInLocation(slotInputLayout, raw, time.Local)
	if err != nil {
		return SlotDisplay{Text: raw}
	}
	return SlotDisplay{Text: t.Format(slotDisplayLayout), Localized: true}
}
