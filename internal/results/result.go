// Package results records FLAMES computations and serves them back as
// history. It owns the flames_results table and the JSON endpoints over it.
package results

import (
	"time"

	"github.com/JaimeStill/flames/internal/flames"
)

// MaxNameLength is the width of the PostgreSQL name columns. SQLite stores
// names of any length.
const MaxNameLength = 80

// Result is one stored computation.
type Result struct {
	ID        int64        `json:"id"`
	Name1     string       `json:"name1"`
	Name2     string       `json:"name2"`
	Result    flames.Label `json:"result"`
	CreatedAt time.Time    `json:"created_at"`
}

// PlayCommand carries the two raw names exactly as submitted.
type PlayCommand struct {
	Name1 string `json:"name1"`
	Name2 string `json:"name2"`
}

// Validate rejects a command with an empty name. Names are not trimmed: a
// whitespace-only name is accepted and normalizes to nothing.
func (c PlayCommand) Validate() error {
	if c.Name1 == "" || c.Name2 == "" {
		return ErrMissingName
	}
	return nil
}
