package model

import "testing"

func TestComputeTotalPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []int
		want   int
	}{
		{"explicit points", []int{2, 3, 5}, 10},
		{"missing points count as one", []int{2, 0, -1}, 4},
		{"no questions", nil, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			quiz := &Quiz{}
			for _, p := range tc.points {
				quiz.Questions = append(quiz.Questions, Question{Points: p})
			}
			quiz.ComputeTotalPoints()
			if quiz.TotalPoints != tc.want {
				t.Errorf("totalPoints = %d, want %d", quiz.TotalPoints, tc.want)
			}
		})
	}
}

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"algebra", "fractions"}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if value != "algebra,fractions" {
		t.Errorf("value = %q", value)
	}

	var scanned StringList
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(scanned) != 2 || scanned[0] != "algebra" || scanned[1] != "fractions" {
		t.Errorf("scanned = %v", scanned)
	}

	var empty StringList
	if err := empty.Scan(""); err != nil {
		t.Fatalf("scan empty failed: %v", err)
	}
	if empty != nil {
		t.Errorf("empty string should scan to nil, got %v", empty)
	}
}

func TestParseTagList(t *testing.T) {
	tags := ParseTagList(" math , , grade-6 ")
	if len(tags) != 2 || tags[0] != "math" || tags[1] != "grade-6" {
		t.Errorf("tags = %v", tags)
	}
	if ParseTagList("") != nil {
		t.Error("empty input should yield nil")
	}
}
