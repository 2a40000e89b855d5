package models

// AccountEntry is one row of the admin accounts listing.
type AccountEntry struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     int64  `json:"role"`
}

// StatusInfo is the public status probe: Initialized reports whether the
// platform has completed first-time setup (at least one account exists).
type StatusInfo struct {
	Initialized bool   `json:"initialized"`
	Version     string `json:"version"`
}
