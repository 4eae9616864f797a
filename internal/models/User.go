package models

import (
	"sort"
	"strings"
)

const (
	RoleAdmin   = "admin"
	RoleTrusted = "trusted"
)

type User struct {
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
	Name         string `json:"name"`
}

// Users is the on-disk credential mapping, keyed by lowercase username.
type Users map[string]*User

type Contact struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (u Users) CountRole(role string) int {
	n := 0
	for _, info := range u {
		if info != nil && info.Role == role {
			n++
		}
	}
	return n
}

func (u Users) HasRole(role string) bool {
	return u.CountRole(role) > 0
}

// Trusted returns the trusted contacts sorted by username.
func (u Users) Trusted() []Contact {
	contacts := make([]Contact, 0, len(u))
	for username, info := range u {
		if info != nil && info.Role == RoleTrusted {
			contacts = append(contacts, Contact{Username: username, Name: info.Name})
		}
	}
	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].Username < contacts[j].Username
	})
	return contacts
}
