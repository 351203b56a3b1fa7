package tender

import (
	"strings"
	"testing"
)

func TestParseListLiteral(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single quotes", input: "['English', 'Spanish']", want: []string{"English", "Spanish"}},
		{name: "double quotes", input: `["Hike", "Museum"]`, want: []string{"Hike", "Museum"}},
		{name: "integers", input: "[3, 4]", want: []string{"3", "4"}},
		{name: "single element", input: "['Hike']", want: []string{"Hike"}},
		{name: "empty list", input: "[]", want: nil},
		{name: "empty cell", input: "", want: nil},
		{name: "whitespace cell", input: "   ", want: nil},
		{name: "pandas nan", input: "nan", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseListLiteral(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestParseListLiteralMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{name: "not a list", input: "English, Spanish"},
		{name: "missing closing bracket", input: "['English'"},
		{name: "unterminated string", input: "['English]"},
		{name: "missing separator", input: "['a' 'b']"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseListLiteral(tc.input); err == nil {
				t.Fatalf("expected an error for %q", tc.input)
			}
		})
	}
}

func TestDecodeUserRecord(t *testing.T) {
	row := map[string]string{
		"userId":              "7",
		"userName":            "Amira",
		"userType":            "traveler",
		"interests":           "['Hike', 'Museum']",
		"languages":           "['English']",
		"travelStyle":         "luxury",
		"preferredActivities": "['Safari']",
		"preferredCountries":  "['Japan', 'Peru']",
		"dislikedUserIds":     "[2, 9]",
	}

	var user User
	if err := decodeRecord(row, &user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", user.UserID)
	}
	if user.UserType != UserTypeTraveler {
		t.Fatalf("unexpected user type: %q", user.UserType)
	}
	if len(user.Interests) != 2 || user.Interests[1] != "Museum" {
		t.Fatalf("unexpected interests: %v", user.Interests)
	}
	if len(user.DislikedUserIDs) != 2 || user.DislikedUserIDs[0] != 2 || user.DislikedUserIDs[1] != 9 {
		t.Fatalf("unexpected disliked ids: %v", user.DislikedUserIDs)
	}
}

func TestDecodeUserRecordEmptySets(t *testing.T) {
	row := map[string]string{
		"userId":   "1",
		"userName": "Ben",
		"userType": "guide",
	}

	var user User
	if err := decodeRecord(row, &user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(user.Interests) != 0 || len(user.DislikedUserIDs) != 0 {
		t.Fatalf("expected empty sets, got %v / %v", user.Interests, user.DislikedUserIDs)
	}
}

func TestDecodeUserRecordMalformedList(t *testing.T) {
	row := map[string]string{
		"userId":    "1",
		"userName":  "Ben",
		"userType":  "guide",
		"interests": "['Hike'",
	}

	var user User
	err := decodeRecord(row, &user)
	if err == nil {
		t.Fatalf("expected an error for malformed list literal")
	}
	if !strings.Contains(err.Error(), "list literal") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeUserRecordNonIntegerDislikes(t *testing.T) {
	row := map[string]string{
		"userId":          "1",
		"userName":        "Ben",
		"userType":        "guide",
		"dislikedUserIds": "['two']",
	}

	var user User
	if err := decodeRecord(row, &user); err == nil {
		t.Fatalf("expected an error for non-integer disliked ids")
	}
}

func TestReadRowsMissingColumn(t *testing.T) {
	csv := "userId,userName\n1,Ben\n"

	_, err := readRows(strings.NewReader(csv), "userId", "userName", "userType")
	if err == nil {
		t.Fatalf("expected an error for missing column")
	}
	if !strings.Contains(err.Error(), "userType") {
		t.Fatalf("unexpected error: %v", err)
	}
}
