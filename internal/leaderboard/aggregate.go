// Package leaderboard turns raw log entries into per-name standings.
package leaderboard

import "calboard/internal/database"

// Log is the per-entry view returned inside a User.
type Log struct {
	Date     string  `json:"date"`
	Calories int64   `json:"calories"`
	Proof    *string `json:"proof"`
}

type User struct {
	Name          string `json:"name"`
	TotalCalories int64  `json:"totalCalories"`
	Logs          []Log  `json:"logs"`
}

// Aggregate groups entries by name. Users appear in the order their name is
// first seen, and each user's logs keep input order. The result is never nil.
func Aggregate(entries []database.LogEntry) []User {
	users := make([]User, 0)
	index := make(map[string]int)

	for _, e := range entries {
		i, ok := index[e.Name]
		if !ok {
			i = len(users)
			index[e.Name] = i
			users = append(users, User{Name: e.Name, Logs: make([]Log, 0, 1)})
		}
		users[i].TotalCalories += e.Calories
		users[i].Logs = append(users[i].Logs, Log{
			Date:     e.Date,
			Calories: e.Calories,
			Proof:    e.Proof,
		})
	}
	return users
}
