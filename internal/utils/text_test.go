package utils

import "testing"

func TestRound1(t *testing.T) {
	cases := map[float64]float64{
		72.34:  72.3,
		72.35:  72.4,
		80.0:   80.0,
		0:      0,
		99.999: 100.0,
	}
	for in, want := range cases {
		if got := Round1(in); got != want {
			t.Errorf("Round1(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5) != 0 {
		t.Errorf("expected negative values to clamp to 0")
	}
	if Clamp(120) != 100 {
		t.Errorf("expected values above 100 to clamp to 100")
	}
	if Clamp(55.5) != 55.5 {
		t.Errorf("expected in-band values to pass through")
	}
}

func TestStripFences(t *testing.T) {
	fenced := "```json\n{\"a\": 1}\n```"
	if got := StripFences(fenced); got != `{"a": 1}` {
		t.Errorf("StripFences(%q) = %q", fenced, got)
	}

	plain := `{"a": 1}`
	if got := StripFences(plain); got != plain {
		t.Errorf("expected unfenced text unchanged, got %q", got)
	}

	if got := StripFences("  hello  "); got != "hello" {
		t.Errorf("expected surrounding whitespace trimmed, got %q", got)
	}
}

func TestFirstNumber(t *testing.T) {
	if v, ok := FirstNumber("Score: 85 out of 100"); !ok || v != 85 {
		t.Errorf("FirstNumber = %v, %v", v, ok)
	}
	if v, ok := FirstNumber("72.5"); !ok || v != 72.5 {
		t.Errorf("FirstNumber = %v, %v", v, ok)
	}
	if _, ok := FirstNumber("no digits here"); ok {
		t.Errorf("expected no number found")
	}
}

func TestDedupe(t *testing.T) {
	in := []string{"Good structure", "good structure", "Clear code", "", "Depth", "Edge cases", "Naming", "Extra"}
	out := Dedupe(in, 5)
	if len(out) != 5 {
		t.Fatalf("expected cap of 5, got %d: %v", len(out), out)
	}
	if out[0] != "Good structure" || out[1] != "Clear code" {
		t.Errorf("expected first occurrences preserved in order, got %v", out)
	}

	if got := Dedupe([]string{"a", "b", "a"}, 0); len(got) != 2 {
		t.Errorf("expected no cap when limit <= 0, got %v", got)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one two  three\nfour"); got != 4 {
		t.Errorf("WordCount = %d, want 4", got)
	}
}
