package trustanchor

import (
	"strings"

	"github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testDigest = "49AAC11D7B6F6446702E54A1607371607A1A41855200FD2CE1CDDE32F24E8FB5"

var _ = Describe("PositiveEntry", func() {
	var (
		entry *PositiveEntry
		err   error
	)

	parse := func(line string) {
		entry = new(PositiveEntry)
		err = entry.UnmarshalText([]byte(line))
	}

	Describe("DS lines", func() {
		When("the line is valid", func() {
			It("should round-trip all fields", func() {
				parse("example.com IN DS 12345 RSASHA256 SHA-256 " + strings.ToLower(testDigest))
				Expect(err).Should(Succeed())

				ds, ok := entry.Record().RR().(*dns.DS)
				Expect(ok).Should(BeTrue())
				Expect(ds.KeyTag).Should(Equal(uint16(12345)))
				Expect(ds.Algorithm).Should(Equal(uint8(dns.RSASHA256)))
				Expect(ds.DigestType).Should(Equal(uint8(dns.SHA256)))
				Expect(ds.Digest).Should(Equal(testDigest))

				Expect(entry.Record().Key()).Should(Equal(
					NewKey(dns.ClassINET, dns.TypeDS, "example.com")))
				Expect(entry.Record().Authenticated()).Should(BeTrue())
			})

			It("should accept numeric algorithm and digest type", func() {
				parse("example.com IN DS 1 8 2 ABCD")
				Expect(err).Should(Succeed())

				ds := entry.Record().RR().(*dns.DS)
				Expect(ds.Algorithm).Should(Equal(uint8(8)))
				Expect(ds.DigestType).Should(Equal(uint8(2)))
				Expect(ds.Digest).Should(Equal("ABCD"))
			})

			It("should accept a quoted domain and lowercase keywords", func() {
				parse(`"EXAMPLE.com" in ds 1 RSASHA256 SHA256 ABCD`)
				Expect(err).Should(Succeed())
				Expect(entry.Record().Key().Name).Should(Equal("example.com."))
			})

			It("should accept the root domain", func() {
				parse(". IN DS 19036 RSASHA256 SHA-256 " + testDigest)
				Expect(err).Should(Succeed())
				Expect(entry.Record().Key().Name).Should(Equal("."))
			})
		})

		When("the line is invalid", func() {
			It("should reject a non-numeric key tag", func() {
				parse("example.com IN DS tag RSASHA256 SHA256 ABCD")
				Expect(err).Should(MatchError(ContainSubstring("key tag")))
			})

			It("should reject a key tag above 16 bits", func() {
				parse("example.com IN DS 65536 RSASHA256 SHA256 ABCD")
				Expect(err).Should(MatchError(ContainSubstring("key tag")))
			})

			It("should reject an unknown algorithm", func() {
				parse("example.com IN DS 1 NOSUCHALG SHA256 ABCD")
				Expect(err).Should(MatchError(ContainSubstring("algorithm")))
			})

			It("should reject an unknown digest type", func() {
				parse("example.com IN DS 1 RSASHA256 NOSUCHDIGEST ABCD")
				Expect(err).Should(MatchError(ContainSubstring("digest type")))
			})

			It("should reject a non-hex digest", func() {
				parse("example.com IN DS 1 RSASHA256 SHA256 XYZ!")
				Expect(err).Should(MatchError(ContainSubstring("digest")))
			})

			It("should reject missing parameters", func() {
				parse("example.com IN DS 1 RSASHA256 SHA256")
				Expect(err).Should(MatchError(ContainSubstring("missing DS parameters")))
			})

			It("should reject trailing tokens", func() {
				parse("example.com IN DS 1 RSASHA256 SHA256 ABCD extra")
				Expect(err).Should(MatchError(ContainSubstring("trailing garbage")))
			})
		})
	})

	Describe("DNSKEY lines", func() {
		When("the line is valid", func() {
			It("should round-trip all fields", func() {
				parse(". IN DNSKEY 257 3 RSASHA256 AwEAAaz/")
				Expect(err).Should(Succeed())

				dnskey, ok := entry.Record().RR().(*dns.DNSKEY)
				Expect(ok).Should(BeTrue())
				Expect(dnskey.Flags).Should(Equal(uint16(257)))
				Expect(dnskey.Protocol).Should(Equal(uint8(3)))
				Expect(dnskey.Algorithm).Should(Equal(uint8(dns.RSASHA256)))
				Expect(dnskey.PublicKey).Should(Equal("AwEAAaz/"))
			})
		})

		When("the line is invalid", func() {
			It("should reject any protocol other than 3", func() {
				parse(". IN DNSKEY 257 2 RSASHA256 AwEAAaz/")
				Expect(err).Should(MatchError(ContainSubstring("protocol")))
			})

			It("should reject non-numeric flags", func() {
				parse(". IN DNSKEY KSK 3 RSASHA256 AwEAAaz/")
				Expect(err).Should(MatchError(ContainSubstring("flags")))
			})

			It("should reject invalid base64 key data", func() {
				parse(". IN DNSKEY 257 3 RSASHA256 not-base64!")
				Expect(err).Should(MatchError(ContainSubstring("key data")))
			})

			It("should reject trailing tokens", func() {
				parse(". IN DNSKEY 257 3 RSASHA256 AwEAAaz/ extra")
				Expect(err).Should(MatchError(ContainSubstring("trailing garbage")))
			})
		})
	})

	Describe("common validation", func() {
		It("should reject an invalid domain name", func() {
			parse(strings.Repeat("a", 70) + ".com IN DS 1 RSASHA256 SHA256 ABCD")
			Expect(err).Should(MatchError(ContainSubstring("invalid domain name")))
		})

		It("should reject an unsupported class", func() {
			parse("example.com CH DS 1 RSASHA256 SHA256 ABCD")
			Expect(err).Should(MatchError(ContainSubstring("class")))
		})

		It("should reject an unsupported RR type", func() {
			parse("example.com IN A 192.0.2.1")
			Expect(err).Should(MatchError(ContainSubstring(`RR type "A" is not supported`)))
		})

		It("should reject a missing type", func() {
			parse("example.com IN")
			Expect(err).Should(MatchError(ContainSubstring("missing class or type")))
		})

		It("should reject unbalanced quotes", func() {
			parse(`"example.com IN DS 1 RSASHA256 SHA256 ABCD`)
			Expect(err).Should(MatchError(ContainSubstring("unbalanced quotes")))
		})
	})
})

var _ = Describe("NegativeEntry", func() {
	var (
		entry *NegativeEntry
		err   error
	)

	parse := func(line string) {
		entry = new(NegativeEntry)
		err = entry.UnmarshalText([]byte(line))
	}

	It("should normalize a plain domain", func() {
		parse("Example.COM")
		Expect(err).Should(Succeed())
		Expect(entry.Name).Should(Equal("example.com."))
	})

	It("should accept a quoted domain", func() {
		parse(`"example.com"`)
		Expect(err).Should(Succeed())
		Expect(entry.Name).Should(Equal("example.com."))
	})

	It("should reject trailing tokens", func() {
		parse("example.com extra")
		Expect(err).Should(MatchError(ContainSubstring("trailing garbage")))
	})

	It("should reject an invalid domain", func() {
		parse(strings.Repeat("a", 70) + ".com")
		Expect(err).Should(MatchError(ContainSubstring("invalid domain name")))
	})
})
