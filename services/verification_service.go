package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rajwani-7/Mediguard/config"
	"github.com/rajwani-7/Mediguard/models"
)

// Verdicts a scan can resolve to.
const (
	VerdictValid      = "valid"
	VerdictFake       = "fake"
	VerdictSuspicious = "suspicious"
	VerdictUnverified = "unverified"
)

// ScanInput is the decoded payload plus whatever the user typed in
// manually. The barcode/QR decoding itself happens outside this
// service; only the resulting string arrives here.
type ScanInput struct {
	Code         string `json:"code"`
	Batch        string `json:"batch"`
	Expiry       string `json:"expiry"` // YYYY-MM-DD
	Manufacturer string `json:"manufacturer"`
	MedicineID   *uint  `json:"medicine_id"`
}

// verificationRule is one (predicate, verdict) pair. Rules are
// evaluated top to bottom and the first match wins.
type verificationRule struct {
	name    string
	verdict string
	matches func(in ScanInput, now time.Time) (bool, string)
}

// VerificationService classifies scanned codes. Classification is a
// total function: every input resolves to exactly one verdict, and
// every invocation appends exactly one audit row.
type VerificationService struct {
	store VerificationStore
	meds  MedicineStore
	rules []verificationRule
	now   func() time.Time
}

func NewVerificationService(store VerificationStore, meds MedicineStore, cfg *config.Settings) *VerificationService {
	return &VerificationService{
		store: store,
		meds:  meds,
		now:   time.Now,
		rules: []verificationRule{
			{name: "fake_signature", verdict: VerdictFake, matches: matchFakeSignature(cfg.FakeSignatures)},
			{name: "expired", verdict: VerdictFake, matches: matchExpired},
			{name: "malformed_code", verdict: VerdictSuspicious, matches: matchMalformed(cfg.CodeMinSuffixLen)},
			{name: "well_formed", verdict: VerdictValid, matches: matchWellFormed(cfg.CodeMinSuffixLen)},
		},
	}
}

// Verify runs the rule list over one scan, appends the audit row and
// returns it. Linking a medicine also stamps the verdict onto it.
func (s *VerificationService) Verify(userID uint, in ScanInput) (*models.AuthenticityLog, error) {
	now := s.now()

	verdict := VerdictUnverified
	var details []string
	for _, rule := range s.rules {
		ok, detail := rule.matches(in, now)
		if !ok {
			continue
		}
		verdict = rule.verdict
		if detail != "" {
			details = append(details, detail)
		}
		break
	}
	if verdict == VerdictUnverified {
		details = append(details, "Insufficient data to verify. Check with a pharmacist.")
	}
	if in.Batch != "" {
		details = append(details, fmt.Sprintf("Batch reported: %s", in.Batch))
	}
	if in.Manufacturer != "" {
		details = append(details, fmt.Sprintf("Manufacturer reported: %s", in.Manufacturer))
	}

	entry := &models.AuthenticityLog{
		UserID:       userID,
		MedicineID:   in.MedicineID,
		Code:         in.Code,
		Batch:        in.Batch,
		Expiry:       in.Expiry,
		Manufacturer: in.Manufacturer,
		Status:       verdict,
		Details:      strings.Join(details, "\n"),
		CreatedAt:    now,
	}
	if err := s.store.Append(entry); err != nil {
		return nil, err
	}

	if in.MedicineID != nil && s.meds != nil {
		if err := s.meds.SetVerified(*in.MedicineID, verdict); err != nil {
			return entry, fmt.Errorf("scan logged but medicine not updated: %w", err)
		}
	}
	return entry, nil
}

func (s *VerificationService) History(userID uint, limit int) ([]models.AuthenticityLog, error) {
	return s.store.ListByUser(userID, limit)
}

func matchFakeSignature(signatures []string) func(ScanInput, time.Time) (bool, string) {
	return func(in ScanInput, _ time.Time) (bool, string) {
		code := strings.ToUpper(strings.TrimSpace(in.Code))
		if code == "" {
			return false, ""
		}
		for _, sig := range signatures {
			sig = strings.ToUpper(sig)
			if code == sig || strings.HasPrefix(code, sig) {
				return true, fmt.Sprintf("Code matches known counterfeit signature %q", sig)
			}
		}
		return false, ""
	}
}

func matchExpired(in ScanInput, now time.Time) (bool, string) {
	exp, ok := parseExpiry(in.Expiry)
	if !ok {
		return false, ""
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if exp.Before(today) {
		return true, fmt.Sprintf("Medicine expired on %s", in.Expiry)
	}
	return false, ""
}

func matchMalformed(minSuffixLen int) func(ScanInput, time.Time) (bool, string) {
	return func(in ScanInput, _ time.Time) (bool, string) {
		code := strings.TrimSpace(in.Code)
		if code == "" {
			return false, ""
		}
		if !structuralOK(code, minSuffixLen) {
			return true, fmt.Sprintf("Code %q does not match the expected format", code)
		}
		return false, ""
	}
}

// matchWellFormed accepts a structurally sound code with no expiry, or
// one whose expiry parses and lies in the future. An expiry we cannot
// read leaves the scan unverified rather than valid.
func matchWellFormed(minSuffixLen int) func(ScanInput, time.Time) (bool, string) {
	return func(in ScanInput, now time.Time) (bool, string) {
		code := strings.TrimSpace(in.Code)
		if code == "" || !structuralOK(code, minSuffixLen) {
			return false, ""
		}
		if in.Expiry != "" {
			if _, ok := parseExpiry(in.Expiry); !ok {
				return false, ""
			}
		}
		return true, fmt.Sprintf("Code %s recognized", code)
	}
}

// structuralOK checks the expected shape: an alphabetic manufacturer
// prefix, a dash, and an alphanumeric remainder of minimum length.
func structuralOK(code string, minSuffixLen int) bool {
	parts := strings.Split(strings.ToUpper(code), "-")
	if len(parts) < 2 {
		return false
	}
	prefix := parts[0]
	if len(prefix) < 2 || !isAlpha(prefix) {
		return false
	}
	suffix := strings.Join(parts[1:], "")
	return len(suffix) >= minSuffixLen && isAlphanumeric(suffix)
}

func parseExpiry(expiry string) (time.Time, bool) {
	expiry = strings.TrimSpace(expiry)
	if expiry == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", expiry)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return s != ""
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return s != ""
}
