package similarity_test

import (
	"testing"

	"github.com/goliatone/go-formfill/pkg/match/similarity"
)

var testPhrases = []similarity.Phrase{
	{Key: "name.first", Text: "first name"},
	{Key: "name.last", Text: "last name"},
	{Key: "email", Text: "email address"},
	{Key: "address.street", Text: "street address"},
	{Key: "address.postal", Text: "postal code"},
	{Key: "phone", Text: "phone number"},
}

func TestFuzzyIndexExact(t *testing.T) {
	ix := similarity.NewFuzzyIndex(testPhrases)

	got := ix.Query("first name", 3)
	if len(got) == 0 {
		t.Fatal("expected candidates for exact phrase")
	}
	if got[0].Key != "name.first" {
		t.Fatalf("top candidate = %q, want name.first", got[0].Key)
	}
	if got[0].Similarity != 1.0 {
		t.Fatalf("exact similarity = %v, want 1.0", got[0].Similarity)
	}
}

func TestFuzzyIndexTypo(t *testing.T) {
	ix := similarity.NewFuzzyIndex(testPhrases)

	got := ix.Query("frist name", 3)
	if len(got) == 0 || got[0].Key != "name.first" {
		t.Fatalf("typo query candidates = %+v, want name.first on top", got)
	}
	if got[0].Similarity >= 1.0 || got[0].Similarity <= 0 {
		t.Fatalf("typo similarity = %v, want within (0,1)", got[0].Similarity)
	}
}

func TestFuzzyIndexLocationAgnostic(t *testing.T) {
	ix := similarity.NewFuzzyIndex(testPhrases)

	got := ix.Query("enter first name below", 3)
	if len(got) == 0 || got[0].Key != "name.first" {
		t.Fatalf("windowed query candidates = %+v, want name.first on top", got)
	}
}

func TestFuzzyIndexRejectsDistant(t *testing.T) {
	ix := similarity.NewFuzzyIndex(testPhrases)

	for _, c := range ix.Query("favorite color", 5) {
		if c.Key == "name.first" && c.Similarity > 0.8 {
			t.Fatalf("unrelated query matched strongly: %+v", c)
		}
	}
}

func TestRankedIndexRanksOverlap(t *testing.T) {
	ix := similarity.NewRankedIndex(testPhrases)

	got := ix.Query("street address where you currently live", 3)
	if len(got) == 0 {
		t.Fatal("expected ranked candidates")
	}
	if got[0].Key != "address.street" {
		t.Fatalf("top ranked = %q, want address.street", got[0].Key)
	}
	if got[0].Similarity <= 0 || got[0].Similarity > 1 {
		t.Fatalf("similarity out of range: %v", got[0].Similarity)
	}
}

func TestRankedIndexNoOverlap(t *testing.T) {
	ix := similarity.NewRankedIndex(testPhrases)
	if got := ix.Query("quantum flux capacitor", 3); len(got) != 0 {
		t.Fatalf("expected no candidates, got %+v", got)
	}
}

func TestQueryLimit(t *testing.T) {
	fuzzyIx := similarity.NewFuzzyIndex(testPhrases)
	if got := fuzzyIx.Query("name", 1); len(got) > 1 {
		t.Fatalf("fuzzy limit ignored: %d candidates", len(got))
	}
	rankedIx := similarity.NewRankedIndex(testPhrases)
	if got := rankedIx.Query("name address code", 2); len(got) > 2 {
		t.Fatalf("ranked limit ignored: %d candidates", len(got))
	}
}

func TestMeaningfulLength(t *testing.T) {
	if got := similarity.MeaningfulLength("first name"); got != 9 {
		t.Fatalf("MeaningfulLength = %d, want 9", got)
	}
}
