package match

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestComputeScoreOneSided(t *testing.T) {
	// A teaches Go, B wants to learn Go, nothing else declared
	result := ComputeScore([]string{"Go"}, nil, nil, []string{"Go"})

	if result.Score != 50 {
		t.Fatalf("expected score 50, got %v", result.Score)
	}
	if !reflect.DeepEqual(result.ACanTeachB, []string{"go"}) {
		t.Fatalf("unexpected a_can_teach_b: %v", result.ACanTeachB)
	}
	if len(result.BCanTeachA) != 0 {
		t.Fatalf("expected empty b_can_teach_a, got %v", result.BCanTeachA)
	}
	if !reflect.DeepEqual(result.CommonSkills, []string{"go"}) {
		t.Fatalf("unexpected common skills: %v", result.CommonSkills)
	}
}

func TestComputeScoreMutual(t *testing.T) {
	result := ComputeScore(
		[]string{"Go"}, []string{"Spanish"},
		[]string{"Spanish"}, []string{"Go"},
	)

	if result.Score != 50 {
		t.Fatalf("expected score 50, got %v", result.Score)
	}
	if !reflect.DeepEqual(result.CommonSkills, []string{"go", "spanish"}) {
		t.Fatalf("unexpected common skills: %v", result.CommonSkills)
	}
}

func TestComputeScoreNoSkills(t *testing.T) {
	result := ComputeScore(nil, nil, nil, nil)
	if result.Score != 0 {
		t.Fatalf("expected score 0 for empty inputs, got %v", result.Score)
	}
	if len(result.CommonSkills) != 0 {
		t.Fatalf("expected no common skills, got %v", result.CommonSkills)
	}
}

func TestComputeScoreNoOverlap(t *testing.T) {
	result := ComputeScore(
		[]string{"Go"}, []string{"Piano"},
		[]string{"French"}, []string{"Yoga"},
	)
	if result.Score != 0 {
		t.Fatalf("expected score 0, got %v", result.Score)
	}
}

func TestComputeScoreEmptyListsSerializeAsArrays(t *testing.T) {
	result := ComputeScore(
		[]string{"Go"}, nil,
		[]string{"French"}, nil,
	)
	for name, list := range map[string][]string{
		"CommonSkills": result.CommonSkills,
		"ACanTeachB":   result.ACanTeachB,
		"BCanTeachA":   result.BCanTeachA,
	} {
		if list == nil {
			t.Fatalf("expected %s to be an empty slice, not nil", name)
		}
		out, err := json.Marshal(list)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		if string(out) != "[]" {
			t.Fatalf("expected %s to serialize as [], got %s", name, out)
		}
	}
}

func TestComputeScoreCaseInsensitive(t *testing.T) {
	a := ComputeScore([]string{"GO"}, nil, nil, []string{"go"})
	b := ComputeScore([]string{"go"}, nil, nil, []string{"Go"})
	if a.Score != b.Score || a.Score != 50 {
		t.Fatalf("expected case-insensitive score 50, got %v and %v", a.Score, b.Score)
	}
}

func TestComputeScoreIgnoresDuplicatesAndBlanks(t *testing.T) {
	result := ComputeScore(
		[]string{"Go", "go", " Go ", ""}, nil,
		nil, []string{"go"},
	)
	// A's teaching set collapses to {go}: 100 * 1 / 2
	if result.Score != 50 {
		t.Fatalf("expected score 50, got %v", result.Score)
	}
}

func TestComputeScoreBounds(t *testing.T) {
	for _, tc := range [][4][]string{
		{{"a", "b", "c"}, {"d"}, {"x"}, {"a", "b", "c"}},
		{{"a"}, {"b"}, {"b"}, {"a"}},
		{{"a", "b"}, nil, nil, {"a", "b"}},
	} {
		result := ComputeScore(tc[0], tc[1], tc[2], tc[3])
		if result.Score < 0 || result.Score > 100 {
			t.Fatalf("score out of bounds: %v for %v", result.Score, tc)
		}
	}
}
