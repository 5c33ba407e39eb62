package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/trustdns/anchord/evt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Metrics", Ordered, func() {
	readMetrics := func() string {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/metrics", nil)

		Exporter().ServeHTTP(recorder, request)
		Expect(recorder.Code).Should(Equal(http.StatusOK))

		body, err := io.ReadAll(recorder.Body)
		Expect(err).Should(Succeed())

		return string(body)
	}

	// collectors and event listeners may only be registered once
	BeforeAll(func() {
		StartCollection()
	})

	When("the anchor store publishes a loaded event", func() {
		It("should update the anchor gauges", func() {
			evt.Bus().Publish(evt.AnchorStoreLoaded, 5, 2, 0)

			body := readMetrics()
			Expect(body).Should(ContainSubstring("anchord_positive_anchors 5"))
			Expect(body).Should(ContainSubstring("anchord_negative_anchors 2"))
		})
	})

	When("anchor lines are skipped", func() {
		It("should count them", func() {
			evt.Bus().Publish(evt.AnchorLineSkipped, "/etc/dnssec-trust-anchors.d/root.positive", "line 3: bad digest")

			body := readMetrics()
			Expect(body).Should(ContainSubstring("anchord_skipped_lines_total"))
		})
	})
})
