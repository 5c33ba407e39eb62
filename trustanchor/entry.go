package trustanchor

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/miekg/dns"
)

// PositiveEntry is one line of a *.positive anchor file, holding a
// single DS or DNSKEY trust anchor record.
type PositiveEntry struct {
	record *Record
}

// Record returns the parsed trust anchor record.
func (e *PositiveEntry) Record() *Record {
	return e.record
}

// UnmarshalText parses a single trimmed, non-comment line:
//
//	<domain> IN DS     <key tag> <algorithm> <digest type> <hex digest>
//	<domain> IN DNSKEY <flags> 3 <algorithm> <base64 key>
//
// Keyword matching is case insensitive and the domain may be quoted.
// Algorithms and digest types are given as mnemonic or number.
func (e *PositiveEntry) UnmarshalText(data []byte) error {
	fields, err := splitQuoted(string(data))
	if err != nil {
		return err
	}

	if len(fields) < 3 {
		return errors.New("missing class or type")
	}

	domain, class, rrType := fields[0], fields[1], fields[2]
	params := fields[3:]

	if !isValidDomain(domain) {
		return fmt.Errorf("invalid domain name %q", domain)
	}

	if !strings.EqualFold(class, "IN") {
		return fmt.Errorf("RR class %q is not supported", class)
	}

	var rec *Record

	switch {
	case strings.EqualFold(rrType, "DS"):
		rec, err = parseDS(domain, params)
	case strings.EqualFold(rrType, "DNSKEY"):
		rec, err = parseDNSKEY(domain, params)
	default:
		return fmt.Errorf("RR type %q is not supported", rrType)
	}

	if err != nil {
		return err
	}

	e.record = rec

	return nil
}

func parseDS(domain string, params []string) (*Record, error) {
	if len(params) < 4 {
		return nil, errors.New("missing DS parameters")
	}

	if len(params) > 4 {
		return nil, fmt.Errorf("trailing garbage %q", params[4])
	}

	keyTag, err := strconv.ParseUint(params[0], 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid DS key tag %q", params[0])
	}

	algorithm, ok := algorithmFromString(params[1])
	if !ok {
		return nil, fmt.Errorf("unknown DS algorithm %q", params[1])
	}

	digestType, ok := digestTypeFromString(params[2])
	if !ok {
		return nil, fmt.Errorf("unknown DS digest type %q", params[2])
	}

	digest, err := hex.DecodeString(params[3])
	if err != nil {
		return nil, fmt.Errorf("invalid DS digest %q", params[3])
	}

	return NewDS(domain, uint16(keyTag), algorithm, digestType, digest)
}

func parseDNSKEY(domain string, params []string) (*Record, error) {
	if len(params) < 4 {
		return nil, errors.New("missing DNSKEY parameters")
	}

	if len(params) > 4 {
		return nil, fmt.Errorf("trailing garbage %q", params[4])
	}

	flags, err := strconv.ParseUint(params[0], 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid DNSKEY flags %q", params[0])
	}

	if params[1] != "3" {
		return nil, fmt.Errorf("DNSKEY protocol is %q, must be 3", params[1])
	}

	algorithm, ok := algorithmFromString(params[2])
	if !ok {
		return nil, fmt.Errorf("unknown DNSKEY algorithm %q", params[2])
	}

	publicKey, err := base64.StdEncoding.DecodeString(params[3])
	if err != nil {
		return nil, fmt.Errorf("invalid DNSKEY key data %q", params[3])
	}

	return NewDNSKEY(domain, uint16(flags), dnskeyProtocol, algorithm, publicKey)
}

// NegativeEntry is one line of a *.negative anchor file: a single,
// optionally quoted domain name that is exempt from DNSSEC validation.
type NegativeEntry struct {
	// Name in canonical form.
	Name string
}

// UnmarshalText parses a single trimmed, non-comment line.
func (e *NegativeEntry) UnmarshalText(data []byte) error {
	fields, err := splitQuoted(string(data))
	if err != nil {
		return err
	}

	if len(fields) == 0 {
		return errors.New("missing domain name")
	}

	if len(fields) > 1 {
		return fmt.Errorf("trailing garbage %q", fields[1])
	}

	if !isValidDomain(fields[0]) {
		return fmt.Errorf("invalid domain name %q", fields[0])
	}

	e.Name = dns.CanonicalName(fields[0])

	return nil
}

// splitQuoted splits s at whitespace. A field, or part of one, may be
// wrapped in single or double quotes to contain whitespace; the quotes
// themselves are removed.
func splitQuoted(s string) ([]string, error) {
	var (
		fields  []string
		cur     strings.Builder
		quote   rune // 0 = not inside quotes
		inField bool
	)

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inField = true
		case unicode.IsSpace(r):
			if inField {
				fields = append(fields, cur.String())
				cur.Reset()

				inField = false
			}
		default:
			cur.WriteRune(r)

			inField = true
		}
	}

	if quote != 0 {
		return nil, errors.New("unbalanced quotes")
	}

	if inField {
		fields = append(fields, cur.String())
	}

	return fields, nil
}

// algorithmFromString resolves a DNSSEC algorithm given as mnemonic
// ("RSASHA256", also tolerating hyphenated spellings like
// "RSA-SHA-256") or as its number.
func algorithmFromString(s string) (uint8, bool) {
	upper := strings.ToUpper(s)

	if v, ok := dns.StringToAlgorithm[upper]; ok {
		return v, true
	}

	if v, ok := dns.StringToAlgorithm[strings.ReplaceAll(upper, "-", "")]; ok {
		return v, true
	}

	if v, err := strconv.ParseUint(s, 10, 8); err == nil {
		return uint8(v), true
	}

	return 0, false
}

// digestTypeFromString resolves a DS digest type the same way
// ("SHA256", "SHA-256" or "2").
func digestTypeFromString(s string) (uint8, bool) {
	upper := strings.ToUpper(s)

	if v, ok := dns.StringToHash[upper]; ok {
		return v, true
	}

	if v, ok := dns.StringToHash[strings.ReplaceAll(upper, "-", "")]; ok {
		return v, true
	}

	if v, err := strconv.ParseUint(s, 10, 8); err == nil {
		return uint8(v), true
	}

	return 0, false
}
