package services

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedMedicine is one dosing-plan candidate extracted from raw
// prescription text. Timing is stored in the canonical comma form.
type ParsedMedicine struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Timing   string `json:"timing"`
	Duration int    `json:"duration"`
}

// ParseResult is the full outcome of one parse. UnparsedLines counts
// logical lines that produced no candidate; an empty Medicines list is
// a valid outcome, not an error.
type ParseResult struct {
	Medicines     []ParsedMedicine `json:"medicines"`
	UnparsedLines int              `json:"unparsed_lines"`
}

// Defaults applied when a field is absent from a line.
const (
	DefaultDosage   = "as directed"
	DefaultTiming   = string(SlotMorning)
	DefaultDuration = 7
)

var (
	listMarkerRe = regexp.MustCompile(`^\d+[.)]\s+`)
	dosageRe     = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(mg|mcg|ml|tablets?|tabs?|capsules?|caps?)\b`)
	durationRe   = regexp.MustCompile(`(?i)\b(\d+)\s*(days?|weeks?)\b`)
	freqInlineRe = regexp.MustCompile(`\b\d-\d-\d\b`)
	digitRe      = regexp.MustCompile(`\d`)
	letterRe     = regexp.MustCompile(`[a-zA-Z]`)
)

// reservedWords are tokens that can never start a medicine name. A raw
// line whose first token is one of these is treated as a continuation
// of the previous logical line.
var reservedWords = map[string]bool{
	"mg": true, "mcg": true, "ml": true,
	"tablet": true, "tablets": true, "tab": true, "tabs": true,
	"capsule": true, "capsules": true, "cap": true, "caps": true,
	"morning": true, "afternoon": true, "evening": true, "night": true,
	"for": true, "day": true, "days": true, "week": true, "weeks": true,
	"daily": true, "once": true, "twice": true,
}

// ParsePrescriptionText extracts medicine candidates from noisy OCR
// output. It never fails: unrecognizable lines are skipped and tallied,
// and parsing the same text twice yields identical results.
func ParsePrescriptionText(raw string) ParseResult {
	result := ParseResult{Medicines: []ParsedMedicine{}}

	for _, line := range logicalLines(raw) {
		med, ok := parseLine(line)
		if !ok {
			result.UnparsedLines++
			continue
		}
		result.Medicines = append(result.Medicines, med)
	}
	return result
}

// logicalLines splits the blob on line breaks and merges continuation
// lines (those lacking a leading name token) into their predecessor.
func logicalLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" {
			continue
		}
		line = listMarkerRe.ReplaceAllString(line, "")
		if len(lines) > 0 && !startsWithNameToken(line) {
			lines[len(lines)-1] += " " + line
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func startsWithNameToken(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	first := strings.ToLower(strings.Trim(fields[0], ".,;:()"))
	if first == "" || digitRe.MatchString(first) {
		return false
	}
	return !reservedWords[first]
}

func parseLine(line string) (ParsedMedicine, bool) {
	name := extractName(line)
	if len(name) < 3 {
		return ParsedMedicine{}, false
	}
	return ParsedMedicine{
		Name:     name,
		Dosage:   extractDosage(line),
		Timing:   extractTiming(line),
		Duration: extractDuration(line),
	}, true
}

// extractName takes the leading alphabetic run of the line, stopping at
// the first numeric or reserved token. Capped at three words.
func extractName(line string) string {
	var parts []string
	for _, f := range strings.Fields(line) {
		w := strings.Trim(f, ".,;:()")
		if w == "" || digitRe.MatchString(w) || !letterRe.MatchString(w) {
			break
		}
		lw := strings.ToLower(w)
		if reservedWords[lw] {
			break
		}
		if lw == "take" && len(parts) == 0 {
			continue
		}
		parts = append(parts, w)
		if len(parts) == 3 {
			break
		}
	}
	name := strings.Join(parts, " ")
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

// extractDosage finds a numeric value plus a unit from the fixed
// vocabulary, tolerating "500mg", "500 mg" and "500.0 mg" alike.
func extractDosage(line string) string {
	m := dosageRe.FindStringSubmatch(line)
	if m == nil {
		return DefaultDosage
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return DefaultDosage
	}
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + canonicalUnit(m[2])
}

func canonicalUnit(unit string) string {
	switch u := strings.ToLower(unit); u {
	case "tablet", "tablets", "tab", "tabs":
		return "tablet"
	case "capsule", "capsules", "cap", "caps":
		return "capsule"
	default:
		return u
	}
}

func extractTiming(line string) string {
	if code := freqInlineRe.FindString(line); code != "" {
		if slots, err := ParseTimingPattern(code); err == nil {
			return FormatTiming(slots)
		}
	}

	lower := strings.ToLower(line)
	var slots []Slot
	for _, s := range slotOrder {
		if strings.Contains(lower, string(s)) {
			slots = append(slots, s)
		}
	}
	if len(slots) == 0 {
		return DefaultTiming
	}
	return FormatTiming(slots)
}

func extractDuration(line string) int {
	m := durationRe.FindStringSubmatch(line)
	if m == nil {
		return DefaultDuration
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return DefaultDuration
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "week") {
		n *= 7
	}
	return n
}
