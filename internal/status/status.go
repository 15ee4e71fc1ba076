// Package status is the fixed table of investigation statuses and how each
// one is presented.
package status

import (
	"errors"
	"fmt"
)

// Status is an investigation status code as stored on a report.
type Status string

const (
	Waiting       Status = "waiting"
	Investigating Status = "investigating"
	Closed        Status = "closed"
	Dismissed     Status = "dismissed"
)

// ErrInvalidStatus is returned by Parse for codes outside the fixed set.
var ErrInvalidStatus = errors.New("invalid status")

// Presentation is what a client needs to render a status badge.
type Presentation struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var ordered = []Status{Waiting, Investigating, Closed, Dismissed}

var table = map[Status]Presentation{
	Waiting:       {Label: "Waiting investigation", Color: "primary", Icon: "fas fa-clock"},
	Investigating: {Label: "Under investigation", Color: "warning", Icon: "fas fa-search"},
	Closed:        {Label: "Investigation closed", Color: "secondary", Icon: "fas fa-check-circle"},
	Dismissed:     {Label: "Dismissed", Color: "dark", Icon: "fas fa-times-circle"},
}

// All returns the four statuses in workflow order.
func All() []Status {
	out := make([]Status, len(ordered))
	copy(out, ordered)
	return out
}

func Valid(code string) bool {
	_, ok := table[Status(code)]
	return ok
}

func Parse(code string) (Status, error) {
	if !Valid(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, code)
	}
	return Status(code), nil
}

// Describe never fails: an unknown code keeps its own text as the label and
// borrows the color and icon of Waiting.
func Describe(code string) Presentation {
	if p, ok := table[Status(code)]; ok {
		return p
	}
	fallback := table[Waiting]
	fallback.Label = code
	return fallback
}

func Label(code string) string {
	return Describe(code).Label
}
