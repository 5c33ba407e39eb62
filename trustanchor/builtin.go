package trustanchor

import (
	"encoding/hex"
	"fmt"

	"github.com/miekg/dns"
)

// The root zone KSK DS record from
// https://data.iana.org/root-anchors/root-anchors.xml
const (
	rootKeyTag    = 19036
	rootDigestHex = "49AAC11D7B6F6446702E54A1607371607A1A41855200FD2CE1CDDE32F24E8FB5"
)

// addBuiltin seeds the compiled-in root DS anchor. It is skipped
// entirely when any entry already exists for (IN, DS, "."): an
// administrator-supplied root anchor fully preempts the builtin, the
// two are never merged.
//
// This is the only step of Load whose failure is fatal; a resolver
// without a usable root anchor cannot run safely.
func (s *Store) addBuiltin() error {
	key := NewKey(dns.ClassINET, dns.TypeDS, ".")

	if _, ok := s.positiveByKey[key]; ok {
		return nil
	}

	digest, err := hex.DecodeString(rootDigestHex)
	if err != nil {
		return fmt.Errorf("invalid builtin root digest: %w", err)
	}

	rec, err := NewDS(".", rootKeyTag, dns.RSASHA256, dns.SHA256, digest)
	if err != nil {
		return err
	}

	s.positiveByKey[key] = newAnswerSet(rec)

	return nil
}
