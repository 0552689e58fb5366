package match

import (
	"sort"
	"strings"
)

// ScoreResult is the outcome of scoring two users against each other.
// ACanTeachB holds the names A teaches that B wants to learn, BCanTeachA the
// symmetric list, CommonSkills their union.
type ScoreResult struct {
	Score        float64
	CommonSkills []string
	ACanTeachB   []string
	BCanTeachA   []string
}

// ComputeScore derives the compatibility score of two users from their
// declared skill names. Names compare case-insensitively. The score is
//
//	100 × (|aCanTeachB| + |bCanTeachA|) / (|aT|+|aL|+|bT|+|bL|)
//
// clamped to [0,100], with 0 when neither user declared any skills.
// Pure function: no I/O, deterministic output ordering.
func ComputeScore(aTeaching, aLearning, bTeaching, bLearning []string) ScoreResult {
	aT := toSet(aTeaching)
	aL := toSet(aLearning)
	bT := toSet(bTeaching)
	bL := toSet(bLearning)

	aCanTeachB := intersect(aT, bL)
	bCanTeachA := intersect(bT, aL)

	common := make(map[string]struct{}, len(aCanTeachB)+len(bCanTeachA))
	for _, s := range aCanTeachB {
		common[s] = struct{}{}
	}
	for _, s := range bCanTeachA {
		common[s] = struct{}{}
	}

	denominator := len(aT) + len(aL) + len(bT) + len(bL)

	var score float64
	if denominator > 0 {
		score = 100 * float64(len(aCanTeachB)+len(bCanTeachA)) / float64(denominator)
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return ScoreResult{
		Score:        score,
		CommonSkills: sorted(common),
		ACanTeachB:   aCanTeachB,
		BCanTeachA:   bCanTeachA,
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func intersect(a, b map[string]struct{}) []string {
	// non-nil so the lists serialize as [] rather than null
	out := []string{}
	for s := range a {
		if _, ok := b[s]; ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
