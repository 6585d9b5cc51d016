package booking

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/david-mangena/e-commerce-site/internal/bookingapi"
	"github.com/david-mangena/e-commerce-site/internal/models"
)

var _ = Describe("Authentication", func() {
	Context("When requesting a token", func() {
		It("should return a token for valid credentials", func() {
			// Given: the admin credentials
			// When: I post them to the auth endpoint
			resp, auth, err := client.CreateToken(ctx, data.AuthCredentials)

			// Then: a token is returned
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(auth.Token).NotTo(BeEmpty())
		})

		DescribeTable("should answer bad credentials with a reason and no token",
			func(creds models.Credentials) {
				resp, auth, err := client.CreateToken(ctx, creds)

				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				Expect(auth.Token).To(BeEmpty())
				Expect(auth.Reason).To(Equal("Bad credentials"))
			},
			Entry("invalid credentials", models.Credentials{Username: "invalid", Password: "invalid"}),
			Entry("missing username", models.Credentials{Password: "password123"}),
			Entry("missing password", models.Credentials{Username: "admin"}),
		)
	})

	Context("When authenticating through a session", func() {
		It("should store the token for later mutations", func() {
			// Given: a session that has not authenticated
			_, err := session.Token()
			Expect(err).To(MatchError(bookingapi.ErrNotAuthenticated))

			// When: I authenticate
			token := authenticate()

			// Then: the session holds the same token
			stored, err := session.Token()
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(Equal(token))
		})

		It("should return an alphanumeric token", func() {
			token := authenticate()

			Expect(string(token)).To(MatchRegexp(`^[a-zA-Z0-9]+$`))
			Expect(token.Cookie()).To(Equal("token=" + string(token)))
		})

		It("should fail without a token for bad credentials", func() {
			bad := bookingapi.NewSession(client, models.Credentials{Username: "admin", Password: "wrong"})

			_, err := bad.Authenticate(ctx)
			Expect(err).To(MatchError(bookingapi.ErrTokenNotReceived))

			_, err = bad.Token()
			Expect(err).To(MatchError(bookingapi.ErrNotAuthenticated))
		})
	})
})
