package trustanchor

import (
	"github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AnswerSet", func() {
	newRecord := func(keyTag uint16) *Record {
		rec, err := NewDS("example.com", keyTag, dns.RSASHA256, dns.SHA256, []byte{0xAB, 0xCD})
		Expect(err).Should(Succeed())

		return rec
	}

	Describe("Extend", func() {
		It("should leave the receiver untouched", func() {
			first := newAnswerSet(newRecord(1))

			second := first.Extend(newRecord(2))

			Expect(first.Len()).Should(Equal(1))
			Expect(second.Len()).Should(Equal(2))
		})

		It("should preserve insertion order and keep duplicates", func() {
			rec := newRecord(7)

			set := newAnswerSet(rec).Extend(rec)

			Expect(set.Len()).Should(Equal(2))
			Expect(set.Records()[0]).Should(BeIdenticalTo(set.Records()[1]))
		})
	})

	Describe("Records", func() {
		It("should return a copy", func() {
			set := newAnswerSet(newRecord(1), newRecord(2))

			records := set.Records()
			records[0] = nil

			Expect(set.Records()[0]).ShouldNot(BeNil())
		})
	})
})
