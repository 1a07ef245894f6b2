package weave

import "testing"

func TestWeave_Table(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		phrases []string
		want    string
		linked  int
	}{
		{
			name:    "case preserved",
			text:    "I visited Paris last year",
			phrases: []string{"paris"},
			want:    "I visited [[Paris]] last year",
			linked:  1,
		},
		{
			name:    "literal metacharacters",
			text:    "see v1.0 and v1x0",
			phrases: []string{"v1.0"},
			want:    "see [[v1.0]] and v1x0",
			linked:  1,
		},
		{
			name:    "no partial word",
			text:    "AIs are cool",
			phrases: []string{"AI"},
			want:    "AIs are cool",
			linked:  0,
		},
		{
			name:    "underscore and digits are word characters",
			text:    "AI_x and 2AI and AI2 but AI.",
			phrases: []string{"AI"},
			want:    "AI_x and 2AI and AI2 but [[AI]].",
			linked:  1,
		},
		{
			name:    "every unlinked occurrence wrapped",
			text:    "Go is fun. go, GO!",
			phrases: []string{"go"},
			want:    "[[Go]] is fun. [[go]], [[GO]]!",
			linked:  3,
		},
		{
			name:    "existing link suppresses all occurrences",
			text:    "[[Machine Learning]] and machine learning again",
			phrases: []string{"machine learning"},
			want:    "[[Machine Learning]] and machine learning again",
			linked:  0,
		},
		{
			name:    "existing link check is case-insensitive",
			text:    "[[NEURAL NET]] vs Neural Net",
			phrases: []string{"neural net"},
			want:    "[[NEURAL NET]] vs Neural Net",
			linked:  0,
		},
		{
			name:    "match inside an existing link is left alone",
			text:    "[[Big AI]] meets AI",
			phrases: []string{"Big"},
			want:    "[[Big AI]] meets AI",
			linked:  0,
		},
		{
			name:    "match at the end of an existing link is left alone",
			text:    "[[Big AI]] meets AI",
			phrases: []string{"AI"},
			want:    "[[Big AI]] meets [[AI]]",
			linked:  1,
		},
		{
			name:    "longer phrase first, then its substring",
			text:    "AI Ethics matter. AI is here.",
			phrases: []string{"AI Ethics", "AI"},
			want:    "[[AI Ethics]] matter. [[AI]] is here.",
			linked:  2,
		},
		{
			name:    "substring first hides the longer phrase",
			text:    "AI Ethics matter. AI is here.",
			phrases: []string{"AI", "AI Ethics"},
			want:    "[[AI]] Ethics matter. [[AI]] is here.",
			linked:  2,
		},
		{
			name:    "duplicate phrase in list is a no-op the second time",
			text:    "Rust and rust",
			phrases: []string{"Rust", "rust"},
			want:    "[[Rust]] and [[rust]]",
			linked:  2,
		},
		{
			name:    "blank phrases skipped",
			text:    "alpha beta",
			phrases: []string{"", "   ", "beta"},
			want:    "alpha [[beta]]",
			linked:  1,
		},
		{
			name:    "parentheses and plus signs are literal",
			text:    "C++ (v2) and C (v2)",
			phrases: []string{"(v2)"},
			want:    "C++ [[(v2)]] and C [[(v2)]]",
			linked:  2,
		},
		{
			name:    "multi-byte neighbours",
			text:    "Zürich café",
			phrases: []string{"café"},
			want:    "Zürich [[café]]",
			linked:  1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Weave(tc.text, tc.phrases)
			if got.Text != tc.want {
				t.Fatalf("text mismatch:\n got: %q\nwant: %q", got.Text, tc.want)
			}
			if got.Linked != tc.linked {
				t.Fatalf("linked=%d want %d", got.Linked, tc.linked)
			}
		})
	}
}

func TestWeave_EmptyPhraseListReturnsInputUnchanged(t *testing.T) {
	doc := "# Title\n\nSome [[link]] and text.\n"
	got := Weave(doc, nil)
	if got.Text != doc || got.Linked != 0 {
		t.Fatalf("expected unchanged input, got %q linked=%d", got.Text, got.Linked)
	}
}

func TestWeave_NoMatchesIsByteIdentical(t *testing.T) {
	doc := "nothing to see\r\nhere\n"
	got := Weave(doc, []string{"absent phrase", "missing"})
	if got.Text != doc || got.Linked != 0 {
		t.Fatalf("expected byte-identical output, got %q linked=%d", got.Text, got.Linked)
	}
}

func TestWeave_SecondPassLinksNothing(t *testing.T) {
	doc := "Alan Turing studied computability. Turing machines and alan turing."
	phrases := []string{"Alan Turing", "Turing machines", "computability"}
	first := Weave(doc, phrases)
	if first.Linked == 0 {
		t.Fatalf("expected first pass to link something")
	}
	second := Weave(first.Text, phrases)
	if second.Linked != 0 {
		t.Fatalf("second pass linked %d", second.Linked)
	}
	if second.Text != first.Text {
		t.Fatalf("second pass changed text:\n%q\n%q", first.Text, second.Text)
	}
}

// Any existing link for a phrase blocks wrapping of its other occurrences.
// Kept deliberately coarse.
func TestWeave_LinkedPhraseLeavesEveryOccurrenceUntouched(t *testing.T) {
	doc := "Kyoto. [[kyoto]]. Trip to KYOTO."
	got := Weave(doc, []string{"Kyoto"})
	if got.Text != doc || got.Linked != 0 {
		t.Fatalf("expected no change, got %q linked=%d", got.Text, got.Linked)
	}
}

func TestWeave_RejectedCandidateDoesNotHideLaterOverlap(t *testing.T) {
	// "a a" at offset 2 follows "[[" and is rejected; the overlapping
	// occurrence starting at offset 4 still qualifies.
	got := Weave("[[a a a", []string{"a a"})
	if got.Text != "[[a [[a a]]" || got.Linked != 1 {
		t.Fatalf("got %q linked=%d", got.Text, got.Linked)
	}
}

func TestWeave_DoesNotMutateInput(t *testing.T) {
	doc := "Paris and Rome"
	_ = Weave(doc, []string{"Paris", "Rome"})
	if doc != "Paris and Rome" {
		t.Fatalf("input modified")
	}
}
