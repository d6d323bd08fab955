package models

// SentinelNA fills any per-field datum that is missing from a row.
const SentinelNA = "N/A"

// SentinelNoTeam marks an assignee with no entry in the membership index.
// Distinct from SentinelNA: the field was looked up and the user was absent.
const SentinelNoTeam = "null"

// MembershipIndex maps a username to the teams it belongs to, in discovery
// order. A user on several teams accumulates one entry per team; duplicates
// are preserved on purpose.
type MembershipIndex map[string][]string

// Add records that login belongs to teamName.
func (idx MembershipIndex) Add(login, teamName string) {
	if login == "" {
		return
	}
	idx[login] = append(idx[login], teamName)
}

// TeamNames returns the team list for login and whether the login is known.
func (idx MembershipIndex) TeamNames(login string) ([]string, bool) {
	teams, ok := idx[login]
	return teams, ok
}

// ReportRow is one normalized seat entry. Fields not used by a report
// variant are left empty and never rendered; fields used but missing hold
// SentinelNA.
type ReportRow struct {
	Organization            string `json:"organization,omitempty"`
	Username                string `json:"username"`
	Email                   string `json:"email"`
	CreatedAt               string `json:"created_at"`
	LastActivityAt          string `json:"last_activity_at"`
	LastActiveEditor        string `json:"last_active_editor,omitempty"`
	EditorVersion           string `json:"editor_version,omitempty"`
	Plugin                  string `json:"plugin,omitempty"`
	PluginVersion           string `json:"plugin_version,omitempty"`
	PendingCancellationDate string `json:"pending_cancellation_date,omitempty"`
	TeamSlug                string `json:"team_slug,omitempty"`
	TeamNames               string `json:"team_names,omitempty"`
}

// Artifact describes a staged report file ready for upload and mailing.
type Artifact struct {
	LocalPath string `json:"local_path"`
	Filename  string `json:"filename"`
	ObjectKey string `json:"object_key"`
	RowCount  int    `json:"row_count"`
}
