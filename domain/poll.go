package domain

import "time"

// Draft is the ordered list of poll options being assembled in the modal.
// It only exists inside interaction payloads; the server never stores it.
// Duplicate entries are allowed and kept distinct by position.
type Draft []string

// PollSubmission is the candidate poll assembled from a submitted modal,
// attributed to the user who submitted it. It lives only between decode
// and commit.
type PollSubmission struct {
	Title      string    `json:"title"`
	DueAt      time.Time `json:"dueAt"`
	Options    Draft     `json:"options"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
}

// PollOption is a single selectable entry of a persisted poll. Index is a
// dense 0-based position assigned at commit time.
type PollOption struct {
	Option string `json:"option" bson:"option"`
	Index  int    `json:"index" bson:"index"`
}

// PollRecord is the durable projection of a validated submission. It is
// created exactly once and never updated by this service.
type PollRecord struct {
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Options     []PollOption `json:"options" bson:"options"`
	AuthorID    string       `json:"authorId" bson:"userId"`
	DueDate     time.Time    `json:"dueDate" bson:"dueDate"`
}

// Record converts a validated submission into its durable form, numbering
// options in submitted order.
func (s PollSubmission) Record() PollRecord {
	opts := make([]PollOption, len(s.Options))
	for i, o := range s.Options {
		opts[i] = PollOption{Option: o, Index: i}
	}
	return PollRecord{
		Title:    s.Title,
		Options:  opts,
		AuthorID: s.AuthorID,
		DueDate:  s.DueAt,
	}
}
