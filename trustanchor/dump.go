package trustanchor

import "sort"

// DumpPositive returns the canonical textual form of every stored
// positive record, grouped by key.
func (s *Store) DumpPositive() []string {
	var result []string

	for _, set := range s.positiveByKey {
		for _, rec := range set.Records() {
			result = append(result, rec.String())
		}
	}

	sort.Strings(result)

	return result
}

// DumpNegative returns every negative anchor name. Names are canonical
// and therefore always carry the trailing root label dot.
func (s *Store) DumpNegative() []string {
	result := make([]string, 0, len(s.negativeByName))

	for name := range s.negativeByName {
		result = append(result, name)
	}

	sort.Strings(result)

	return result
}

// logDump writes the store contents to the log. Observability only, it
// has no effect on lookups.
func (s *Store) logDump() {
	s.log.Info("positive trust anchors:")

	for _, line := range s.DumpPositive() {
		s.log.Info(line)
	}

	negatives := s.DumpNegative()
	if len(negatives) == 0 {
		return
	}

	s.log.Info("negative trust anchors:")

	for _, name := range negatives {
		s.log.Info(name)
	}
}
