// Package swipes keeps the in-memory record of a swipe session. Nothing
// is persisted between invocations.
package swipes

import (
	"github.com/galalqassas/tender-matcher/internal/tender"
)

type Swipe struct {
	UserID int
	Card   *tender.Activity
	Liked  bool
}

type Log struct {
	entries []*Swipe
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Record(userID int, card *tender.Activity, liked bool) {
	l.entries = append(l.entries, &Swipe{UserID: userID, Card: card, Liked: liked})
}

func (l *Log) Len() int {
	return len(l.entries)
}

// Likes returns the number of liked swipes recorded for the user.
func (l *Log) Likes(userID int) int {
	count := 0
	for _, swipe := range l.entries {
		if swipe.UserID == userID && swipe.Liked {
			count++
		}
	}
	return count
}

// RecentLikes returns up to n most recently liked cards for the user,
// oldest first.
func (l *Log) RecentLikes(userID, n int) []*tender.Activity {
	var liked []*tender.Activity
	for _, swipe := range l.entries {
		if swipe.UserID == userID && swipe.Liked {
			liked = append(liked, swipe.Card)
		}
	}

	if n > 0 && len(liked) > n {
		liked = liked[len(liked)-n:]
	}
	return liked
}
