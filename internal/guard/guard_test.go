package guard

import "testing"

func TestScan_CleanDescription(t *testing.T) {
	findings := Scan("Summarize the quarterly report and email it to the team")
	for _, f := range findings {
		if f.Triggered {
			t.Errorf("clean description triggered %s: %s", f.Category, f.Detail)
		}
	}
}

func TestScan_HarmBattery(t *testing.T) {
	cases := []struct {
		desc string
		want float64
	}{
		{"delete all production backups", 0.9},
		{"this change is irreversible", 0.7},
		{"restart the service without telling the on-call engineer", 0.8},
	}
	for _, tc := range cases {
		f := findCategory(t, Scan(tc.desc), CategoryHarm)
		if !f.Triggered {
			t.Errorf("%q: harm battery did not trigger", tc.desc)
			continue
		}
		if f.Confidence != tc.want {
			t.Errorf("%q: confidence %f, want %f", tc.desc, f.Confidence, tc.want)
		}
	}
}

func TestScan_HighestConfidencePatternWins(t *testing.T) {
	// Matches both "cover up" (0.9) and "mislead" (0.85).
	f := findCategory(t, Scan("cover up the misleading numbers"), CategoryDeception)
	if f.Confidence != 0.9 {
		t.Errorf("confidence %f, want the higher 0.9", f.Confidence)
	}
}

func TestScan_Overreach(t *testing.T) {
	f := findCategory(t, Scan("bypass the approval process to ship faster"), CategoryOverreach)
	if !f.Triggered {
		t.Error("overreach battery should trigger on control bypass")
	}
}

func TestFlagged_ThresholdGates(t *testing.T) {
	desc := "grab extra permissions just in case" // overreach 0.4
	if Flagged(desc, 0.5) {
		t.Error("0.4 finding should not flag at threshold 0.5")
	}
	if !Flagged(desc, 0.3) {
		t.Error("0.4 finding should flag at threshold 0.3")
	}
}

func findCategory(t *testing.T, findings []Finding, cat Category) Finding {
	t.Helper()
	for _, f := range findings {
		if f.Category == cat {
			return f
		}
	}
	t.Fatalf("no finding for category %s", cat)
	return Finding{}
}
