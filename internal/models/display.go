package models

import "time"

// Display is one update of the sidebar: the per-guild nickname and the
// global status line.
type Display struct {
	Identity     string    `json:"identity"`
	Status       string    `json:"status"`
	Ticker       string    `json:"ticker"`
	Denomination string    `json:"denomination"`
	PublishedAt  time.Time `json:"publishedAt"`
}

// Same reports whether two displays would render identically.
func (d Display) Same(o Display) bool {
	return d.Identity == o.Identity && d.Status == o.Status
}
