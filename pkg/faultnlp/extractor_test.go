package faultnlp

import "testing"

func TestExtract_FullTriple(t *testing.T) {
	m := Extract("vaillant ecotec plus f28 ignition fault")
	if m.Maker != "Vaillant" {
		t.Errorf("maker = %q", m.Maker)
	}
	if m.Model != "ecoTEC Plus" {
		t.Errorf("model = %q", m.Model)
	}
	if m.Code != "F28" {
		t.Errorf("code = %q", m.Code)
	}
	if m.Confidence != 1.0 {
		t.Errorf("confidence = %v", m.Confidence)
	}
}

func TestExtract_AliasResolution(t *testing.T) {
	cases := map[string]string{
		"worcester greenstar ea229":  "Worcester Bosch",
		"worcester bosch error e9":   "Worcester Bosch",
		"glow worm f1":               "Glow-worm",
		"glowworm flashing light":    "Glow-worm",
		"my saunier boiler is dead":  "Saunier Duval",
	}
	for text, want := range cases {
		if m := Extract(text); m.Maker != want {
			t.Errorf("Extract(%q).Maker = %q, want %q", text, m.Maker, want)
		}
	}
}

func TestExtract_NumericCode(t *testing.T) {
	m := Extract("atag boiler showing 10")
	if m.Maker != "ATAG" || m.Code != "10" {
		t.Errorf("got maker=%q code=%q", m.Maker, m.Code)
	}
}

func TestExtract_CodeNormalization(t *testing.T) {
	cases := map[string]string{
		"ideal l 2 fault":  "L2",
		"vaillant f-28":    "F28",
		"baxi e119":        "E119",
	}
	for text, want := range cases {
		if m := Extract(text); m.Code != want {
			t.Errorf("Extract(%q).Code = %q, want %q", text, m.Code, want)
		}
	}
}

func TestExtract_NoMatches(t *testing.T) {
	m := Extract("my heating is broken")
	if m.Maker != "" || m.Model != "" || m.Code != "" {
		t.Errorf("expected empty match, got %+v", m)
	}
	if m.Confidence != 0 {
		t.Errorf("confidence = %v", m.Confidence)
	}
}

func TestExtract_MakerNotSubstringOfWord(t *testing.T) {
	// "grant" must not be extracted from "migrants".
	if m := Extract("migrants heating issue 42"); m.Maker != "" {
		t.Errorf("expected no maker, got %q", m.Maker)
	}
}
