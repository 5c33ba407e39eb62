package trustanchor

// AnswerSet is an ordered collection of records sharing one Key. A set
// is immutable after construction and never empty: Extend returns a
// new set and leaves the receiver untouched.
//
// Because sets are never mutated in place, a caller may keep using a
// set obtained from the store even after the store was flushed or
// reloaded; the store only drops its own reference.
type AnswerSet struct {
	records []*Record
}

func newAnswerSet(records ...*Record) *AnswerSet {
	return &AnswerSet{records: records}
}

// Extend returns a new set with rec appended. Insertion order is
// preserved and duplicates are not collapsed.
func (a *AnswerSet) Extend(rec *Record) *AnswerSet {
	records := make([]*Record, 0, len(a.records)+1)
	records = append(records, a.records...)
	records = append(records, rec)

	return &AnswerSet{records: records}
}

// Len returns the number of records in the set.
func (a *AnswerSet) Len() int {
	return len(a.records)
}

// Records returns a copy of the record list, in insertion order.
func (a *AnswerSet) Records() []*Record {
	records := make([]*Record, len(a.records))
	copy(records, a.records)

	return records
}
