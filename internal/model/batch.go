package model

// BatchSuccess records one successfully fetched batch entry.
type BatchSuccess struct {
	Index int    `json:"index"`
	Path  string `json:"-"`
	Name  string `json:"name"`
}

// BatchFailure records one failed batch entry with its reason.
type BatchFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// BatchResult accumulates per-entry outcomes during a batch download.
// Entries keep the order of the original selection list regardless of when
// they completed.
type BatchResult struct {
	Succeeded []BatchSuccess `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

// AddSuccess appends a resolved file for the given selection index.
func (r *BatchResult) AddSuccess(index int, path, name string) {
	r.Succeeded = append(r.Succeeded, BatchSuccess{Index: index, Path: path, Name: name})
}

// AddFailure appends a failure reason for the given selection index.
func (r *BatchResult) AddFailure(index int, reason string) {
	r.Failed = append(r.Failed, BatchFailure{Index: index, Reason: reason})
}
