package object

import "github.com/loosegit/loosegit/ident"

// Object is the tagged variant produced by decoding a loose object.
// Blob and Tree carry no parsed body in this core; they exist only so
// callers can branch on what they asked the store to read.
type Object struct {
	ID     ident.Identifier
	Header Header
	Commit *CommitRecord
}

// AsCommit returns the decoded commit record, or false if this Object
// is not a commit.
func (o Object) AsCommit() (CommitRecord, bool) {
	if o.Commit == nil {
		return CommitRecord{}, false
	}
	return *o.Commit, true
}
