package models

// ScopeKind distinguishes the two GitHub billing scopes.
type ScopeKind string

const (
	ScopeEnterprise   ScopeKind = "enterprise"
	ScopeOrganization ScopeKind = "organization"
)

// Scope identifies the enterprise or organization under which teams and
// seats are enumerated.
type Scope struct {
	Kind ScopeKind `json:"kind"`
	Name string    `json:"name"`
}

// Team is a team within an enterprise or organization scope.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SeatAssignee is the user a Copilot seat is assigned to.
type SeatAssignee struct {
	Login string `json:"login"`
	Email string `json:"email"`
}

// SeatTeam is the team a seat was assigned through.
type SeatTeam struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Seat is one Copilot billing seat record as returned by the API.
// Timestamps stay as the raw strings the API returns; the report carries
// them through unparsed.
type Seat struct {
	CreatedAt               string        `json:"created_at"`
	PendingCancellationDate string        `json:"pending_cancellation_date"`
	LastActivityAt          string        `json:"last_activity_at"`
	LastActivityEditor      string        `json:"last_activity_editor"`
	Assignee                *SeatAssignee `json:"assignee"`
	AssigningTeam           *SeatTeam     `json:"assigning_team"`
}

// Login returns the assignee login, or empty if the seat has no assignee.
func (s *Seat) Login() string {
	if s.Assignee == nil {
		return ""
	}
	return s.Assignee.Login
}

// SeatsPage is one page of the billing seats endpoint.
type SeatsPage struct {
	TotalSeats int    `json:"total_seats"`
	Seats      []Seat `json:"seats"`
}

// UserProfile is the subset of a public user profile used for enrichment.
type UserProfile struct {
	Login     string `json:"login"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// APIStats aggregates request-level counters across a run.
type APIStats struct {
	Requests       int `json:"requests"`
	Retries        int `json:"retries"`
	RateLimitWaits int `json:"rate_limit_waits"`
}
