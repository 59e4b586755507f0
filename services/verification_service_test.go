package services

import (
	"strings"
	"testing"
	"time"

	"github.com/rajwani-7/Mediguard/config"
	"github.com/rajwani-7/Mediguard/models"
)

func newTestVerificationService(meds MedicineStore) (*VerificationService, *memVerificationStore) {
	store := &memVerificationStore{}
	svc := NewVerificationService(store, meds, config.DefaultSettings())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc, store
}

func TestVerifyWellFormedCode(t *testing.T) {
	svc, store := newTestVerificationService(nil)

	entry, err := svc.Verify(1, ScanInput{Code: "MG-VALID-ABC123"})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if entry.Status != VerdictValid {
		t.Errorf("verdict = %q, want valid", entry.Status)
	}
	if len(store.entries) != 1 {
		t.Errorf("audit rows = %d, want 1", len(store.entries))
	}
}

func TestVerifyFakeSignature(t *testing.T) {
	svc, _ := newTestVerificationService(nil)

	for _, code := range []string{"FAKE-MEDICINE", "fake-medicine", "FAKE-XYZ-999", "FRAUD-AB1234"} {
		entry, err := svc.Verify(1, ScanInput{Code: code})
		if err != nil {
			t.Fatalf("Verify(%q): %v", code, err)
		}
		if entry.Status != VerdictFake {
			t.Errorf("verdict(%q) = %q, want fake", code, entry.Status)
		}
	}
}

func TestVerifyMalformedCode(t *testing.T) {
	svc, _ := newTestVerificationService(nil)

	for _, code := range []string{"BATCH123", "X-ABC123456", "MG-AB", "MG-ABC 123"} {
		entry, err := svc.Verify(1, ScanInput{Code: code})
		if err != nil {
			t.Fatalf("Verify(%q): %v", code, err)
		}
		if entry.Status != VerdictSuspicious {
			t.Errorf("verdict(%q) = %q, want suspicious", code, entry.Status)
		}
	}
}

func TestVerifyExpired(t *testing.T) {
	svc, _ := newTestVerificationService(nil)

	entry, err := svc.Verify(1, ScanInput{Code: "MG-VALID-ABC123", Expiry: "2024-01-01"})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if entry.Status != VerdictFake {
		t.Errorf("verdict = %q, want fake for expired medicine", entry.Status)
	}
	if !strings.Contains(entry.Details, "expired") {
		t.Errorf("details = %q, want expiry mention", entry.Details)
	}
}

func TestVerifyBlacklistBeatsFutureExpiry(t *testing.T) {
	svc, _ := newTestVerificationService(nil)

	entry, err := svc.Verify(1, ScanInput{Code: "FAKE-ABCDEF", Expiry: "2030-01-01"})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if entry.Status != VerdictFake {
		t.Errorf("verdict = %q, want fake despite valid expiry", entry.Status)
	}
}

func TestVerifyEmptyCodeUnverified(t *testing.T) {
	svc, store := newTestVerificationService(nil)

	entry, err := svc.Verify(1, ScanInput{Batch: "B-877"})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if entry.Status != VerdictUnverified {
		t.Errorf("verdict = %q, want unverified", entry.Status)
	}
	if !strings.Contains(entry.Details, "pharmacist") {
		t.Errorf("details = %q, want pharmacist advice", entry.Details)
	}
	if !strings.Contains(entry.Details, "B-877") {
		t.Errorf("details = %q, want batch echoed", entry.Details)
	}
	if len(store.entries) != 1 {
		t.Errorf("unverified scan must still be logged, rows = %d", len(store.entries))
	}
}

func TestVerifyUnparseableExpiryUnverified(t *testing.T) {
	svc, _ := newTestVerificationService(nil)

	entry, err := svc.Verify(1, ScanInput{Code: "MG-VALID-ABC123", Expiry: "June 2027"})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if entry.Status != VerdictUnverified {
		t.Errorf("verdict = %q, want unverified for unreadable expiry", entry.Status)
	}
}

func TestVerifySameInputSameVerdict(t *testing.T) {
	svc, store := newTestVerificationService(nil)

	in := ScanInput{Code: "MG-VALID-ABC123", Batch: "B1", Expiry: "2030-05-01"}
	first, err := svc.Verify(1, in)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	second, err := svc.Verify(1, in)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if first.Status != second.Status || first.Details != second.Details {
		t.Errorf("repeat scan diverged: %q vs %q", first.Status, second.Status)
	}
	if len(store.entries) != 2 {
		t.Errorf("each scan must append its own row, rows = %d", len(store.entries))
	}
}

func TestVerifyStampsLinkedMedicine(t *testing.T) {
	meds := newMemMedicineStore()
	meds.meds[5] = &models.Medicine{Name: "Paracetamol", Verified: VerdictUnverified}
	svc, _ := newTestVerificationService(meds)

	id := uint(5)
	entry, err := svc.Verify(1, ScanInput{Code: "FAKE-MEDICINE", MedicineID: &id})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if entry.Status != VerdictFake {
		t.Fatalf("verdict = %q", entry.Status)
	}
	med, _ := meds.Get(5)
	if med.Verified != VerdictFake {
		t.Errorf("medicine verdict = %q, want fake", med.Verified)
	}
}

func TestVerifyHistoryNewestFirst(t *testing.T) {
	svc, _ := newTestVerificationService(nil)

	if _, err := svc.Verify(1, ScanInput{Code: "MG-VALID-ABC123"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Verify(1, ScanInput{Code: "FAKE-MEDICINE"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Verify(2, ScanInput{Code: "BATCH123"}); err != nil {
		t.Fatal(err)
	}

	logs, err := svc.History(1, 20)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("history rows = %d, want 2", len(logs))
	}
	if logs[0].Status != VerdictFake || logs[1].Status != VerdictValid {
		t.Errorf("history not newest first: %q, %q", logs[0].Status, logs[1].Status)
	}
}
