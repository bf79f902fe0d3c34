package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// ProgramKey identifies one program row.
	ProgramKey(id int64) string
	// ExplanationKey identifies the explanation for a stored pair of
	// programs: "explain:<idA>-<idB>".
	ExplanationKey(idA, idB int64) string
	// ContentExplanationKey identifies the explanation for programs that
	// have no stored ids, by a digest of their content.
	ContentExplanationKey(digest string) string
	// ArtifactKey identifies a rendered document.
	ArtifactKey(requestHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change a document's bytes.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Date   string `json:"date"`
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) ProgramKey(id int64) string {
	return fmt.Sprintf("program:%d", id)
}

func (DefaultKeyer) ExplanationKey(idA, idB int64) string {
	return fmt.Sprintf("explain:%d-%d", idA, idB)
}

func (DefaultKeyer) ContentExplanationKey(digest string) string {
	return "explain:content:" + digest
}

func (DefaultKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", requestHash, opts)
}
