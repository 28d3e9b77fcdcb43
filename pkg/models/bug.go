package models

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// BugRecord is a read-only snapshot of a bug fetched from the issue tracker
type BugRecord struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	ReproSteps string `json:"repro_steps"`
	RCADetail  string `json:"rca_detail"`
}

// QueryText is the text used to look up similar bugs. The RCA is left out
// because an open bug does not have one yet.
func (b *BugRecord) QueryText() string {
	return fmt.Sprintf("Title: %s\nRepro: %s", b.Title, b.ReproSteps)
}

// DocumentText is the text embedded for a resolved bug
func (b *BugRecord) DocumentText() string {
	return fmt.Sprintf("Title: %s\nRepro: %s\nRCA: %s", b.Title, b.ReproSteps, b.RCADetail)
}

// ToDocument builds the indexed document for a resolved bug
func (b *BugRecord) ToDocument() *IngestedDocument {
	return &IngestedDocument{
		BugID: b.ID,
		Title: b.Title,
		Text:  b.DocumentText(),
	}
}

// IngestedDocument is one bug as stored in the vector index
type IngestedDocument struct {
	BugID int    `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// PointUUID returns the index key for the document within a source
func (d *IngestedDocument) PointUUID(source string) string {
	return BugUUID(source, d.BugID)
}

// BugUUID generates a deterministic UUID from the tracker identity and bug id,
// so that re-ingesting a bug overwrites its previous point.
func BugUUID(source string, id int) string {
	data := source + "#" + strconv.Itoa(id)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(data)).String()
}
