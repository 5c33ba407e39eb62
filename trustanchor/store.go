// Package trustanchor owns the DNSSEC root-of-trust material a
// validating resolver consults: positive trust anchors (DS and DNSKEY
// record sets) and negative trust anchors (domains exempt from
// validation).
package trustanchor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/trustdns/anchord/conffiles"
	"github.com/trustdns/anchord/config"
	"github.com/trustdns/anchord/evt"
	"github.com/trustdns/anchord/log"
	"github.com/trustdns/anchord/trustanchor/parsers"
)

const (
	loggerPrefix = "trust_anchor"

	positiveSuffix = ".positive"
	negativeSuffix = ".negative"
)

// anchorFileKind selects the per-suffix line grammar.
type anchorFileKind int

const (
	positiveAnchorFiles anchorFileKind = iota
	negativeAnchorFiles
)

func (k anchorFileKind) String() string {
	names := [...]string{
		"positive",
		"negative",
	}

	return names[k]
}

func (k anchorFileKind) suffix() string {
	suffixes := [...]string{
		positiveSuffix,
		negativeSuffix,
	}

	return suffixes[k]
}

// Store holds the trust anchors. It is populated once during startup
// and is read-mostly afterwards: it performs no internal locking, so a
// reload concurrent with lookups needs coordination by the caller.
type Store struct {
	cfg config.TrustAnchors
	log *logrus.Entry

	positiveByKey  map[Key]*AnswerSet
	negativeByName map[string]struct{}

	skipped []error
}

// Stats describes the current store contents.
type Stats struct {
	PositiveKeys    int
	PositiveRecords int
	NegativeNames   int
	SkippedLines    int
}

// NewStore creates an empty store searching the directories from cfg.
func NewStore(cfg config.TrustAnchors) *Store {
	return &Store{
		cfg:            cfg,
		log:            log.PrefixedLog(loggerPrefix),
		positiveByKey:  make(map[Key]*AnswerSet),
		negativeByName: make(map[string]struct{}),
	}
}

// Load populates the store: all *.positive files, then all *.negative
// files, best effort. A malformed line or an unreadable file is logged
// and skipped without affecting the rest. The builtin root anchor is
// installed afterwards; its failure is the only fatal one.
//
// The content of the store is dumped to the log when configured, and
// an AnchorStoreLoaded event is published.
func (s *Store) Load(ctx context.Context) error {
	s.loadFiles(ctx, positiveAnchorFiles)
	s.loadFiles(ctx, negativeAnchorFiles)

	if err := s.addBuiltin(); err != nil {
		return fmt.Errorf("failed to add builtin trust anchor: %w", err)
	}

	if s.cfg.DumpOnLoad {
		s.logDump()
	}

	stats := s.Stats()
	evt.Bus().Publish(evt.AnchorStoreLoaded, stats.PositiveKeys, stats.NegativeNames, stats.SkippedLines)

	return nil
}

// Flush drops all anchors; the store returns to the empty state and
// may be loaded again. AnswerSets handed out earlier stay valid for
// their holders.
func (s *Store) Flush() {
	s.positiveByKey = make(map[Key]*AnswerSet)
	s.negativeByName = make(map[string]struct{})
	s.skipped = nil
}

// LookupPositive returns the anchor set stored under key. Only DS and
// DNSKEY keys are served: any other type reports a miss even if an
// entry exists for it.
func (s *Store) LookupPositive(key Key) (*AnswerSet, bool) {
	if key.Type != dns.TypeDS && key.Type != dns.TypeDNSKEY {
		return nil, false
	}

	key.Name = dns.CanonicalName(key.Name)

	set, ok := s.positiveByKey[key]

	return set, ok
}

// LookupNegative reports whether name is a negative anchor. The match
// is exact after normalization, no ancestor walking: an entry for
// "example.com" does not cover "sub.example.com".
func (s *Store) LookupNegative(name string) bool {
	_, ok := s.negativeByName[dns.CanonicalName(name)]

	return ok
}

// Stats returns the current counts.
func (s *Store) Stats() Stats {
	records := 0
	for _, set := range s.positiveByKey {
		records += set.Len()
	}

	return Stats{
		PositiveKeys:    len(s.positiveByKey),
		PositiveRecords: records,
		NegativeNames:   len(s.negativeByName),
		SkippedLines:    len(s.skipped),
	}
}

// SkippedLines returns all lines ignored during Load as one aggregated
// error, or nil if everything parsed.
func (s *Store) SkippedLines() error {
	return multierror.Append(nil, s.skipped...).ErrorOrNil()
}

func (s *Store) loadFiles(ctx context.Context, kind anchorFileKind) {
	files, err := conffiles.Enumerate(kind.suffix(), s.cfg.Directories)
	if err != nil {
		s.log.Warnf("failed to enumerate %s anchor files: %v", kind, err)

		return
	}

	for _, path := range files {
		if err := s.loadFile(ctx, kind, path); err != nil {
			s.log.Warnf("failed to read %s, ignoring: %v", path, err)
		}
	}
}

func (s *Store) loadFile(ctx context.Context, kind anchorFileKind, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// the file vanished between enumeration and open
			return nil
		}

		return err
	}
	defer f.Close()

	switch kind {
	case positiveAnchorFiles:
		return s.parsePositive(ctx, f, path)
	case negativeAnchorFiles:
		return s.parseNegative(ctx, f, path)
	}

	return nil
}

func (s *Store) parsePositive(ctx context.Context, r io.Reader, path string) error {
	p := parsers.AllowErrors(parsers.LinesAs[*PositiveEntry](r), parsers.NoErrorLimit)
	p.OnErr(func(err error) {
		s.skipLine(path, err)
	})

	return parsers.ForEach[*PositiveEntry](ctx, p, func(entry *PositiveEntry) error {
		s.insert(entry.Record())

		return nil
	})
}

func (s *Store) parseNegative(ctx context.Context, r io.Reader, path string) error {
	p := parsers.AllowErrors(parsers.LinesAs[*NegativeEntry](r), parsers.NoErrorLimit)
	p.OnErr(func(err error) {
		s.skipLine(path, err)
	})

	return parsers.ForEach[*NegativeEntry](ctx, p, func(entry *NegativeEntry) error {
		s.insertNegative(entry.Name)

		return nil
	})
}

// insert stores rec under its key: a new singleton set, or the
// existing set extended by appending (no deduplication). Replacing the
// map entry leaves previously returned sets untouched.
func (s *Store) insert(rec *Record) {
	key := rec.Key()

	if existing, ok := s.positiveByKey[key]; ok {
		s.positiveByKey[key] = existing.Extend(rec)
	} else {
		s.positiveByKey[key] = newAnswerSet(rec)
	}
}

// insertNegative is idempotent: inserting a name twice is a no-op.
func (s *Store) insertNegative(name string) {
	s.negativeByName[name] = struct{}{}
}

func (s *Store) skipLine(path string, err error) {
	err = fmt.Errorf("%s: %w", path, err)

	s.log.Warnf("ignoring invalid anchor line: %v", err)
	s.skipped = append(s.skipped, err)

	evt.Bus().Publish(evt.AnchorLineSkipped, path, err.Error())
}
