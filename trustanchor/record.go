package trustanchor

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// dnskeyProtocol is the only protocol value RFC 4034 permits for DNSKEY.
const dnskeyProtocol = 3

// Key is the lookup identity of a record set: class, type and owner
// name. The name is always in canonical (lowercase, fully qualified)
// form so Key values compare with plain equality.
type Key struct {
	Class uint16
	Type  uint16
	Name  string
}

// NewKey builds a Key, normalizing the name.
func NewKey(class, rrType uint16, name string) Key {
	return Key{
		Class: class,
		Type:  rrType,
		Name:  dns.CanonicalName(name),
	}
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s %s", k.Name, dns.ClassToString[k.Class], dns.TypeToString[k.Type])
}

// Record is a single trust anchor: a DS or DNSKEY resource record that
// is trusted a priori and therefore always flagged as authenticated,
// bypassing chain validation. Records are immutable once constructed.
type Record struct {
	rr            dns.RR
	authenticated bool
}

// NewDS creates a DS trust anchor record.
func NewDS(name string, keyTag uint16, algorithm, digestType uint8, digest []byte) (*Record, error) {
	if !isValidDomain(name) {
		return nil, fmt.Errorf("invalid domain name %q", name)
	}

	rr := &dns.DS{
		Hdr:        rrHeader(name, dns.TypeDS),
		KeyTag:     keyTag,
		Algorithm:  algorithm,
		DigestType: digestType,
		Digest:     strings.ToUpper(hex.EncodeToString(digest)),
	}

	return &Record{rr: rr, authenticated: true}, nil
}

// NewDNSKEY creates a DNSKEY trust anchor record. The protocol must be 3.
func NewDNSKEY(name string, flags uint16, protocol, algorithm uint8, publicKey []byte) (*Record, error) {
	if !isValidDomain(name) {
		return nil, fmt.Errorf("invalid domain name %q", name)
	}

	if protocol != dnskeyProtocol {
		return nil, fmt.Errorf("DNSKEY protocol is %d, must be %d", protocol, dnskeyProtocol)
	}

	rr := &dns.DNSKEY{
		Hdr:       rrHeader(name, dns.TypeDNSKEY),
		Flags:     flags,
		Protocol:  protocol,
		Algorithm: algorithm,
		PublicKey: base64.StdEncoding.EncodeToString(publicKey),
	}

	return &Record{rr: rr, authenticated: true}, nil
}

func rrHeader(name string, rrType uint16) dns.RR_Header {
	return dns.RR_Header{
		Name:   dns.CanonicalName(name),
		Rrtype: rrType,
		Class:  dns.ClassINET,
	}
}

// RR returns the underlying resource record.
func (r *Record) RR() dns.RR {
	return r.rr
}

// Key returns the lookup identity of the record.
func (r *Record) Key() Key {
	h := r.rr.Header()

	// the header name is canonical since construction
	return Key{Class: h.Class, Type: h.Rrtype, Name: h.Name}
}

// Authenticated reports whether the record may bypass signature chain
// validation. Always true for trust anchors.
func (r *Record) Authenticated() bool {
	return r.authenticated
}

// String returns the canonical zone file representation.
func (r *Record) String() string {
	return r.rr.String()
}

func isValidDomain(name string) bool {
	if name == "." {
		return true
	}

	if len(name) == 0 {
		return false
	}

	_, ok := dns.IsDomainName(name)

	return ok
}
