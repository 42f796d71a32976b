package models

// Project is a votable item from the catalog. The set of projects is fixed
// and known in advance; the API rejects keys that are not in the catalog.
type Project struct {
	Key  string `yaml:"key" json:"key"`
	Name string `yaml:"name" json:"name"`
}

// VoteState is the authoritative ledger state for one project as seen by one
// visitor: the shared count plus whether this visitor currently has a vote on.
type VoteState struct {
	Count int  `json:"count"`
	Voted bool `json:"voted"`
}
