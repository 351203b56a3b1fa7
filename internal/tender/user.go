package tender

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// UserType is one of the two complementary roles on the platform.
type UserType string

const (
	UserTypeTraveler UserType = "traveler"
	UserTypeGuide    UserType = "guide"
)

// Complement returns the opposite role the user is matched against.
func (t UserType) Complement() (UserType, error) {
	switch t {
	case UserTypeTraveler:
		return UserTypeGuide, nil
	case UserTypeGuide:
		return UserTypeTraveler, nil
	default:
		return "", fmt.Errorf("unknown user type: %q", string(t))
	}
}

type Users struct {
	Items []*User
}

type User struct {
	UserID              int      `csv:"userId"`
	UserName            string   `csv:"userName"`
	UserType            UserType `csv:"userType"`
	Interests           []string `csv:"interests"`
	Languages           []string `csv:"languages"`
	TravelStyle         string   `csv:"travelStyle"`
	PreferredActivities []string `csv:"preferredActivities"`
	PreferredCountries  []string `csv:"preferredCountries"`
	DislikedUserIDs     []int    `csv:"dislikedUserIds"`

	// Persona is derived from interests, never read from the source data.
	Persona string `csv:"-"`
}

type ExcludedUsers struct {
	Items []*ExcludedUser
}

type ExcludedUser struct {
	ID         int
	Name       string
	ExcludedAt time.Time
}

func (u *Users) Len() int {
	return len(u.Items)
}

func (u *Users) FindByID(id int) *User {
	for _, user := range u.Items {
		if user.UserID == id {
			return user
		}
	}
	return nil
}

func (u *Users) Names() []string {
	names := make([]string, 0, len(u.Items))
	for _, user := range u.Items {
		names = append(names, user.UserName)
	}
	return names
}

// Clone returns a new collection sharing the same user records. Filters
// mutate the item slice, so queries run on a clone to keep the loaded
// collection intact.
func (u *Users) Clone() *Users {
	items := make([]*User, len(u.Items))
	copy(items, u.Items)
	return &Users{Items: items}
}

// KeepRole removes every user whose type differs from the given role,
// preserving order. It returns the ids of removed users.
func (u *Users) KeepRole(role UserType) []int {
	var excluded []int
	kept := u.Items[:0:0]
	for _, user := range u.Items {
		if user.UserType == role {
			kept = append(kept, user)
			continue
		}
		excluded = append(excluded, user.UserID)
	}
	u.Items = kept
	return excluded
}

// ExcludeIDs removes users with the given ids, preserving order. It returns
// the ids actually removed.
func (u *Users) ExcludeIDs(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}

	drop := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	var excluded []int
	kept := u.Items[:0:0]
	for _, user := range u.Items {
		if _, ok := drop[user.UserID]; ok {
			excluded = append(excluded, user.UserID)
			continue
		}
		kept = append(kept, user)
	}
	u.Items = kept
	return excluded
}

func (u *Users) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "users_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(u); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByPersona groups users by their persona.
func (u *Users) ReportByPersona() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, user := range u.Items {
		key := user.Persona
		if key == "" {
			key = DefaultPersona
		}
		report[key] = append(report[key], map[string]string{
			"name":         user.UserName,
			"id":           fmt.Sprintf("%d", user.UserID),
			"travel style": user.TravelStyle,
			"languages":    fmt.Sprintf("%v", user.Languages),
		})
	}
	return report
}

func (u *Users) ToExcluded() *ExcludedUsers {
	excluded := &ExcludedUsers{}
	for _, user := range u.Items {
		excluded.Items = append(excluded.Items, &ExcludedUser{
			ID:         user.UserID,
			Name:       user.UserName,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

func GetExcludedUsersFromFile(path string) (*ExcludedUsers, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedUsers{}, nil
	}

	var excluded ExcludedUsers
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedUsers) Append(s *ExcludedUsers) {
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedUsers) IDs() []int {
	ids := make([]int, 0, len(e.Items))
	for _, user := range e.Items {
		ids = append(ids, user.ID)
	}
	return ids
}

func (e *ExcludedUsers) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return err
	}
	return nil
}
