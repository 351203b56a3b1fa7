package tender

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const usersCSV = `userId,userName,userType,interests,languages,travelStyle,preferredActivities,preferredCountries,dislikedUserIds
1,Ben,traveler,"['Hike', 'Museum']",['English'],budget,['Safari'],"['Japan', 'Peru']",[2]
2,Gia,guide,['Beach'],"['English', 'Spanish']",luxury,[],[],[]
`

func TestLoadUsersFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	if err := os.WriteFile(path, []byte(usersCSV), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	client := New(context.Background(), zap.NewNop())

	users, err := client.LoadUsers(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if users.Len() != 2 {
		t.Fatalf("expected 2 users, got %d", users.Len())
	}

	ben := users.FindByID(1)
	if ben == nil {
		t.Fatalf("expected user 1")
	}
	if ben.UserType != UserTypeTraveler {
		t.Fatalf("unexpected user type: %q", ben.UserType)
	}
	if len(ben.Interests) != 2 || ben.Interests[0] != "Hike" {
		t.Fatalf("unexpected interests: %v", ben.Interests)
	}
	if len(ben.DislikedUserIDs) != 1 || ben.DislikedUserIDs[0] != 2 {
		t.Fatalf("unexpected disliked ids: %v", ben.DislikedUserIDs)
	}
	if ben.Persona == "" {
		t.Fatalf("expected persona to be derived at load time")
	}

	gia := users.FindByID(2)
	if gia == nil || len(gia.PreferredCountries) != 0 {
		t.Fatalf("expected empty preferred countries, got %+v", gia)
	}
}

func TestLoadUsersFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected a user agent header")
		}
		w.Write([]byte(usersCSV))
	}))
	defer server.Close()

	client := New(context.Background(), zap.NewNop())

	users, err := client.LoadUsers(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.Len() != 2 {
		t.Fatalf("expected 2 users, got %d", users.Len())
	}
}

func TestLoadUsersBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(context.Background(), zap.NewNop())

	if _, err := client.LoadUsers(server.URL); err == nil {
		t.Fatalf("expected an error for non-200 response")
	}
}

func TestLoadUsersMalformedRowIsFatal(t *testing.T) {
	csv := "userId,userName,userType,interests\n1,Ben,traveler,\"['Hike'\"\n"
	path := filepath.Join(t.TempDir(), "users.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	client := New(context.Background(), zap.NewNop())

	_, err := client.LoadUsers(path)
	if err == nil {
		t.Fatalf("expected an error for malformed list literal")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("expected the row number in the error, got: %v", err)
	}
}

func TestLoadActivities(t *testing.T) {
	csv := `city,country,activities
Cairo,Egypt,"['Pyramids Tour', 'Market Walk']"
Bali,Indonesia,['Beach Day']
`
	path := filepath.Join(t.TempDir(), "activities.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	client := New(context.Background(), zap.NewNop())

	activities, err := client.LoadActivities(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if activities.Len() != 2 {
		t.Fatalf("expected 2 activities, got %d", activities.Len())
	}
	if activities.Items[0].Key() != "Cairo-Egypt" {
		t.Fatalf("unexpected key: %q", activities.Items[0].Key())
	}
	if len(activities.Items[0].Activities) != 2 {
		t.Fatalf("unexpected activities: %v", activities.Items[0].Activities)
	}
}
