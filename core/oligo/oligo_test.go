package oligo

import "testing"

func TestValidateNormalizes(t *testing.T) {
	got, err := Validate(" gtg Yca gcm gcc gcg gta a ")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got != "GTGYCAGCMGCCGCGGTAA" {
		t.Errorf("normalize failed: %q", got)
	}
}

func TestValidateRejectsNonIUPAC(t *testing.T) {
	for _, bad := range []string{"ACGU", "ACG-T", "AXGT", ""} {
		if _, err := Validate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestRevComp(t *testing.T) {
	cases := map[string]string{
		"ACGT":  "ACGT",
		"GGACT": "AGTCC",
		"RYSWN": "NWSRY",
		"A":     "T",
	}
	for in, want := range cases {
		if got := RevComp(in); got != want {
			t.Errorf("RevComp(%q)=%q want %q", in, got, want)
		}
	}
}

func TestRevCompInvolution(t *testing.T) {
	for _, s := range []string{"ACGT", "GTGYCAGCMGCCGCGGTAA", "GGACTACNVGGGTWTCTAAT"} {
		if got := RevComp(RevComp(s)); got != s {
			t.Errorf("RevComp twice on %q gave %q", s, got)
		}
	}
}

func TestDegeneracy(t *testing.T) {
	cases := map[string]int{
		"ACGT": 1,
		"ACGR": 2,
		"NN":   16,
		"RYB":  12,
		"":     0,
		"AXG":  0,
	}
	for in, want := range cases {
		if got := Degeneracy(in); got != want {
			t.Errorf("Degeneracy(%q)=%d want %d", in, got, want)
		}
	}
}
