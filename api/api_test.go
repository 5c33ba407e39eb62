package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/trustdns/anchord/config"
	"github.com/trustdns/anchord/helpertest"
	"github.com/trustdns/anchord/trustanchor"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testDigest = "49AAC11D7B6F6446702E54A1607371607A1A41855200FD2CE1CDDE32F24E8FB5"

var _ = Describe("StoreEndpoint", func() {
	var router *chi.Mux

	BeforeEach(func() {
		tmpDir := helpertest.NewTmpFolder("api")
		Expect(tmpDir.Error).Should(Succeed())
		DeferCleanup(tmpDir.Clean)

		Expect(tmpDir.CreateStringFile("site.positive",
			"example.com IN DS 1111 RSASHA256 SHA-256 "+testDigest,
		).Error).Should(Succeed())

		Expect(tmpDir.CreateStringFile("site.negative",
			"insecure.example",
		).Error).Should(Succeed())

		store := trustanchor.NewStore(config.TrustAnchors{Directories: []string{tmpDir.Path}})
		Expect(store.Load(context.Background())).Should(Succeed())

		router = chi.NewRouter()
		RegisterEndpoint(router, store)
	})

	Describe("GET /api/anchors", func() {
		It("should list all anchors and stats", func() {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/anchors", nil))

			Expect(recorder.Code).Should(Equal(http.StatusOK))
			Expect(recorder.Header().Get(contentTypeHeader)).Should(Equal(jsonContentType))

			var response AnchorsResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&response)).Should(Succeed())

			Expect(response.Positive).Should(ContainElement(ContainSubstring("1111")))
			Expect(response.Positive).Should(ContainElement(ContainSubstring("19036"))) // builtin root anchor
			Expect(response.Negative).Should(ConsistOf("insecure.example."))
			Expect(response.SkippedLines).Should(BeZero())
		})
	})

	Describe("GET /api/anchors/negative/{name}", func() {
		It("should report a match for a stored name", func() {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder,
				httptest.NewRequest(http.MethodGet, "/api/anchors/negative/insecure.example", nil))

			Expect(recorder.Code).Should(Equal(http.StatusOK))

			var response NegativeLookupResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&response)).Should(Succeed())
			Expect(response.Match).Should(BeTrue())
		})

		It("should report a miss for subdomains", func() {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder,
				httptest.NewRequest(http.MethodGet, "/api/anchors/negative/sub.insecure.example", nil))

			var response NegativeLookupResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&response)).Should(Succeed())
			Expect(response.Match).Should(BeFalse())
		})
	})
})
