package models

import "time"

// Voting window status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Sync status constants
const (
	SyncSynced   = "synced"
	SyncUnsynced = "unsynced"
)

// Document is the single JSON blob holding all voting state.
// It is the exact shape stored in the remote bin.
type Document struct {
	Nominations       map[string]int    `json:"nominations"`
	Nominators        []string          `json:"nominators"`
	WriteInCandidates []string          `json:"write_in_candidates"`
	NominationReasons map[string]string `json:"nomination_reasons"`
}

// NewDocument returns the empty bootstrap document.
func NewDocument() Document {
	return Document{
		Nominations:       map[string]int{},
		Nominators:        []string{},
		WriteInCandidates: []string{},
		NominationReasons: map[string]string{},
	}
}

// Normalize replaces nil fields with empty values and re-establishes the
// invariant that every write-in candidate has a nominations entry.
func (d *Document) Normalize() {
	if d.Nominations == nil {
		d.Nominations = map[string]int{}
	}
	if d.Nominators == nil {
		d.Nominators = []string{}
	}
	if d.WriteInCandidates == nil {
		d.WriteInCandidates = []string{}
	}
	if d.NominationReasons == nil {
		d.NominationReasons = map[string]string{}
	}
	for _, name := range d.WriteInCandidates {
		if _, ok := d.Nominations[name]; !ok {
			d.Nominations[name] = 0
		}
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{
		Nominations:       make(map[string]int, len(d.Nominations)),
		Nominators:        append([]string{}, d.Nominators...),
		WriteInCandidates: append([]string{}, d.WriteInCandidates...),
		NominationReasons: make(map[string]string, len(d.NominationReasons)),
	}
	for k, v := range d.Nominations {
		out.Nominations[k] = v
	}
	for k, v := range d.NominationReasons {
		out.NominationReasons[k] = v
	}
	return out
}

// HasNominator reports whether name already appears in the nominator list.
func (d Document) HasNominator(name string) bool {
	for _, n := range d.Nominators {
		if n == name {
			return true
		}
	}
	return false
}

// HasWriteIn reports whether name is already a write-in candidate.
func (d Document) HasWriteIn(name string) bool {
	for _, n := range d.WriteInCandidates {
		if n == name {
			return true
		}
	}
	return false
}

// Request types

type NominationRequest struct {
	Nominator string `json:"nominator"`
	Candidate string `json:"candidate"`
	Reason    string `json:"reason,omitempty"`
	WriteIn   bool   `json:"write_in,omitempty"`
}

// ResetRequest optionally carries a new voting deadline; nil keeps the
// current one.
type ResetRequest struct {
	Deadline *time.Time `json:"deadline,omitempty"`
}

// Response types

type NominationResponse struct {
	Candidate string `json:"candidate"`
	Votes     int    `json:"votes"`
	Synced    bool   `json:"synced"`
	Warning   string `json:"warning,omitempty"`
}

type BallotResponse struct {
	Document   Document   `json:"document"`
	Roster     []string   `json:"roster"`
	Status     string     `json:"status"`
	SyncStatus string     `json:"sync_status"`
	LastSynced string     `json:"last_synced,omitempty"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	ClosesIn   string     `json:"closes_in,omitempty"`
}

type RefreshResponse struct {
	SyncStatus string `json:"sync_status"`
	Warning    string `json:"warning,omitempty"`
}

// Standing is one row of the live results, sorted by votes.
type Standing struct {
	Candidate string `json:"candidate"`
	Votes     int    `json:"votes"`
	WriteIn   bool   `json:"write_in"`
	Reason    string `json:"reason,omitempty"`
}

type BallotStats struct {
	TotalVotes int `json:"total_votes"`
	Nominators int `json:"nominators"`
	Candidates int `json:"candidates"`
	WriteIns   int `json:"write_ins"`
}

type ResultsResponse struct {
	Standings  []Standing  `json:"standings"`
	Leaders    []string    `json:"leaders"`
	TopVotes   int         `json:"top_votes"`
	Tie        bool        `json:"tie"`
	Stats      BallotStats `json:"stats"`
	Status     string      `json:"status"`
	SyncStatus string      `json:"sync_status"`
}

type NominatorListResponse struct {
	Nominators []string `json:"nominators"`
	Count      int      `json:"count"`
}

type ResetResponse struct {
	Message string `json:"message"`
	Synced  bool   `json:"synced"`
	Warning string `json:"warning,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
