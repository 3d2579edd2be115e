package orders

import "strings"

type Status string

const (
	StatusPending       Status = "pending"
	StatusAccepted      Status = "accepted"
	StatusManufacturing Status = "manufacturing"
	StatusPrinting      Status = "printing"
	StatusPackaging     Status = "packaging"
	StatusDelivering    Status = "delivering"
	StatusFinished      Status = "finished"
	StatusCancelled     Status = "cancelled"
	StatusOnHold        Status = "on_hold"
)

// All lists the vocabulary in fulfilment order, side-states last.
var All = []Status{
	StatusPending, StatusAccepted, StatusManufacturing, StatusPrinting,
	StatusPackaging, StatusDelivering, StatusFinished,
	StatusCancelled, StatusOnHold,
}

func Valid(s Status) bool {
	for _, v := range All {
		if s == v {
			return true
		}
	}
	return false
}

// validNext adalah alur normal produksi. Edit flow sengaja TIDAK memaksa
// tabel ini — admin boleh set status apa saja; tabel hanya dipakai untuk
// warning (lihat editor.go).
var validNext = map[Status]map[Status]bool{
	StatusPending:       {StatusAccepted: true},
	StatusAccepted:      {StatusManufacturing: true},
	StatusManufacturing: {StatusPrinting: true},
	StatusPrinting:      {StatusPackaging: true},
	StatusPackaging:     {StatusDelivering: true},
	StatusDelivering:    {StatusFinished: true},
	StatusFinished:      {},
	StatusCancelled:     {},
	StatusOnHold:        {},
}

// CanTransition reports whether from→to follows the normal production flow.
// cancelled and on_hold are reachable from any non-finished state.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	if to == StatusCancelled || to == StatusOnHold {
		return from != StatusFinished
	}
	return validNext[from][to]
}

// Label is the display form: "on_hold" -> "On Hold".
func (s Status) Label() string {
	parts := strings.Split(string(s), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
