package domain

import "strings"

// City is a place where cleanings are performed.
type City struct {
	ID   int    `json:"Id"`
	Name string `json:"Name"`
}

// SameName reports whether name refers to this city, ignoring case and
// surrounding whitespace.
func (c *City) SameName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name))
}
