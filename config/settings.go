package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings carries the externally supplied knobs for the reminder and
// verification core. Nothing in the algorithms hardcodes these; they are
// read from the environment once and injected into the services.
type Settings struct {
	// SlotTimes maps a slot name to minutes since midnight.
	SlotTimes map[string]int
	// GraceWindow is how late a due reminder may run before it is
	// auto-marked missed.
	GraceWindow time.Duration
	// ScanInterval is the reminder scan tick period.
	ScanInterval time.Duration
	// FakeSignatures are known-counterfeit code signatures, matched
	// exactly or as a prefix, case-insensitively.
	FakeSignatures []string
	// CodeMinSuffixLen is the minimum alphanumeric length after the
	// manufacturer prefix for a code to pass the structural check.
	CodeMinSuffixLen int
}

func DefaultSettings() *Settings {
	return &Settings{
		SlotTimes: map[string]int{
			"morning":   8 * 60,
			"afternoon": 13 * 60,
			"evening":   18 * 60,
			"night":     20 * 60,
		},
		GraceWindow:      2 * time.Hour,
		ScanInterval:     time.Minute,
		FakeSignatures:   []string{"FAKE-MEDICINE", "FAKE-", "FRAUD-", "TEST-FAKE"},
		CodeMinSuffixLen: 6,
	}
}

// LoadSettings builds Settings from the environment, falling back to
// the defaults above for anything unset or unparseable.
func LoadSettings() *Settings {
	s := DefaultSettings()

	if v := os.Getenv("REMINDER_GRACE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.GraceWindow = time.Duration(n) * time.Minute
		}
	}
	if v := os.Getenv("SCAN_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.ScanInterval = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("FAKE_SIGNATURES"); v != "" {
		var sigs []string
		for _, sig := range strings.Split(v, ",") {
			if sig = strings.ToUpper(strings.TrimSpace(sig)); sig != "" {
				sigs = append(sigs, sig)
			}
		}
		if len(sigs) > 0 {
			s.FakeSignatures = sigs
		}
	}
	if v := os.Getenv("CODE_MIN_SUFFIX_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.CodeMinSuffixLen = n
		}
	}

	// SLOT_TIMES overrides individual slots: "morning=07:30,night=21:00"
	if v := os.Getenv("SLOT_TIMES"); v != "" {
		for _, pair := range strings.Split(v, ",") {
			name, clock, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok {
				continue
			}
			mins, err := parseClock(clock)
			if err != nil {
				log.Printf("Ignoring bad slot time %q: %v", pair, err)
				continue
			}
			s.SlotTimes[strings.ToLower(strings.TrimSpace(name))] = mins
		}
	}

	return s
}

// SlotMinutes returns minutes since midnight for a slot name, with a
// morning fallback for unknown slots so scheduling never fails late.
func (s *Settings) SlotMinutes(slot string) int {
	if m, ok := s.SlotTimes[slot]; ok {
		return m
	}
	return s.SlotTimes["morning"]
}

func parseClock(clock string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
