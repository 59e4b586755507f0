package services

import (
	"errors"
	"regexp"
	"strings"
)

// Slot is one dose slot in a day.
type Slot string

const (
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
	SlotEvening   Slot = "evening"
	SlotNight     Slot = "night"
)

// slotOrder fixes the canonical within-day ordering of slots.
var slotOrder = []Slot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

var ErrEmptyTiming = errors.New("timing pattern has no active slots")

var freqCodeRe = regexp.MustCompile(`^(\d)-(\d)-(\d)$`)

// ParseTimingPattern turns a timing string into the ordered set of
// active slots for a day. Two forms are accepted:
//
//   - a dash frequency code like "1-0-1", positions meaning
//     morning / afternoon / night,
//   - named slots in any separator style, e.g. "morning, night".
//
// Unknown tokens are ignored; a pattern with no recognizable slot is an
// error. The result is always in canonical slot order with duplicates
// collapsed.
func ParseTimingPattern(timing string) ([]Slot, error) {
	timing = strings.ToLower(strings.TrimSpace(timing))
	if timing == "" {
		return nil, ErrEmptyTiming
	}

	active := map[Slot]bool{}

	if m := freqCodeRe.FindStringSubmatch(timing); m != nil {
		positions := []Slot{SlotMorning, SlotAfternoon, SlotNight}
		for i, s := range positions {
			if m[i+1] != "0" {
				active[s] = true
			}
		}
	} else {
		for _, tok := range strings.FieldsFunc(timing, func(r rune) bool {
			return r == ',' || r == '/' || r == ' ' || r == ';' || r == '+'
		}) {
			switch Slot(tok) {
			case SlotMorning, SlotAfternoon, SlotEvening, SlotNight:
				active[Slot(tok)] = true
			}
		}
	}

	var slots []Slot
	for _, s := range slotOrder {
		if active[s] {
			slots = append(slots, s)
		}
	}
	if len(slots) == 0 {
		return nil, ErrEmptyTiming
	}
	return slots, nil
}

// FormatTiming renders slots back into the stored comma form.
func FormatTiming(slots []Slot) string {
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ",")
}
