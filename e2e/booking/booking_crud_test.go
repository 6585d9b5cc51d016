package booking

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/utils/ptr"

	"github.com/david-mangena/e-commerce-site/internal/bookingapi"
	"github.com/david-mangena/e-commerce-site/internal/models"
)

// unknownBookingID is never issued by the service during a run
const unknownBookingID = 999999999

var _ = Describe("Booking CRUD", func() {
	Describe("Creating bookings", func() {
		It("should create a valid booking", func() {
			created := createBooking(data.ValidBooking)

			Expect(created.Booking).To(Equal(data.ValidBooking))
		})

		It("should create a booking without optional fields", func() {
			minimal := data.ValidBooking
			minimal.AdditionalNeeds = ""

			created := createBooking(minimal)

			Expect(created.Booking.FirstName).To(Equal(minimal.FirstName))
			Expect(created.Booking.AdditionalNeeds).To(BeEmpty())
		})

		It("should keep special characters in names", func() {
			special := data.ValidBooking
			special.FirstName = "José"
			special.LastName = "O'Brien-Smith"

			created := createBooking(special)

			Expect(created.Booking.FirstName).To(Equal("José"))
			Expect(created.Booking.LastName).To(Equal("O'Brien-Smith"))
		})
	})

	Describe("Reading bookings", func() {
		var created *models.CreatedBooking

		BeforeEach(func() {
			created = createBooking(data.ValidBooking)
		})

		It("should list all bookings", func() {
			resp, refs, err := client.GetAllBookings(ctx, models.BookingFilter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(refs).To(ContainElement(models.BookingRef{BookingID: created.BookingID}))
		})

		It("should get a booking by id", func() {
			resp, booking, err := client.GetBooking(ctx, created.BookingID)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(*booking).To(Equal(data.ValidBooking))
		})

		It("should filter bookings by name", func() {
			filter := models.BookingFilter{
				FirstName: data.ValidBooking.FirstName,
				LastName:  data.ValidBooking.LastName,
			}

			_, refs, err := client.GetAllBookings(ctx, filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(refs).To(ContainElement(models.BookingRef{BookingID: created.BookingID}))
		})

		It("should filter bookings by dates", func() {
			filter := models.BookingFilter{
				CheckIn:  data.ValidBooking.BookingDates.CheckIn,
				CheckOut: data.ValidBooking.BookingDates.CheckOut,
			}

			resp, _, err := client.GetAllBookings(ctx, filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})

		It("should return 404 for an unknown booking", func() {
			resp, booking, err := client.GetBooking(ctx, unknownBookingID)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			Expect(booking).To(BeNil())
		})
	})

	Describe("Updating bookings", func() {
		var created *models.CreatedBooking

		BeforeEach(func() {
			created = createBooking(data.ValidBooking)
		})

		It("should replace a booking with a valid token", func() {
			authenticate()

			resp, booking, err := session.UpdateBooking(ctx, created.BookingID, data.UpdateBooking, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(*booking).To(Equal(data.UpdateBooking))

			_, stored, err := client.GetBooking(ctx, created.BookingID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored).To(Equal(data.UpdateBooking))
		})

		It("should reject an invalid token with 403", func() {
			resp, booking, err := client.UpdateBooking(ctx, created.BookingID, data.UpdateBooking, "invalid-token")

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			Expect(booking).To(BeNil())
		})

		It("should answer 405 for an unknown booking", func() {
			authenticate()

			resp, _, err := session.UpdateBooking(ctx, unknownBookingID, data.UpdateBooking, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusMethodNotAllowed))
		})

		It("should fail before sending when no token is available", func() {
			_, _, err := session.UpdateBooking(ctx, created.BookingID, data.UpdateBooking, "")

			Expect(err).To(MatchError(bookingapi.ErrTokenRequired))
		})
	})

	Describe("Partially updating bookings", func() {
		var created *models.CreatedBooking

		BeforeEach(func() {
			created = createBooking(data.ValidBooking)
		})

		It("should change only the given fields", func() {
			authenticate()

			resp, booking, err := session.PartialUpdateBooking(ctx, created.BookingID, data.PartialUpdateBooking, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(booking.FirstName).To(Equal(*data.PartialUpdateBooking.FirstName))
			Expect(booking.LastName).To(Equal(*data.PartialUpdateBooking.LastName))
			Expect(booking.TotalPrice).To(Equal(data.ValidBooking.TotalPrice))
			Expect(booking.BookingDates).To(Equal(data.ValidBooking.BookingDates))
		})

		It("should update a single numeric field", func() {
			authenticate()

			patch := models.BookingPatch{TotalPrice: ptr.To(999), DepositPaid: ptr.To(false)}
			_, booking, err := session.PartialUpdateBooking(ctx, created.BookingID, patch, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(booking.TotalPrice).To(Equal(999))
			Expect(booking.DepositPaid).To(BeFalse())
			Expect(booking.FirstName).To(Equal(data.ValidBooking.FirstName))
		})

		It("should reject an invalid token with 403", func() {
			resp, booking, err := client.PartialUpdateBooking(ctx, created.BookingID, data.PartialUpdateBooking, "invalid-token")

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			Expect(booking).To(BeNil())
		})
	})

	Describe("Deleting bookings", func() {
		var created *models.CreatedBooking

		BeforeEach(func() {
			created = createBooking(data.ValidBooking)
		})

		It("should delete with 201 and then answer 404", func() {
			authenticate()

			resp, err := session.DeleteBooking(ctx, created.BookingID, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			resp, booking, err := client.GetBooking(ctx, created.BookingID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			Expect(booking).To(BeNil())
		})

		It("should reject an invalid token with 403", func() {
			resp, err := client.DeleteBooking(ctx, created.BookingID, "invalid-token")

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
		})

		It("should answer 405 for an unknown booking", func() {
			authenticate()

			resp, err := session.DeleteBooking(ctx, unknownBookingID, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusMethodNotAllowed))
		})

		It("should answer 405 when deleting twice", func() {
			authenticate()

			resp, err := session.DeleteBooking(ctx, created.BookingID, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			resp, err = session.DeleteBooking(ctx, created.BookingID, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusMethodNotAllowed))
		})
	})

	Describe("Sending mutations without a token", func() {
		var created *models.CreatedBooking

		BeforeEach(func() {
			created = createBooking(data.ValidBooking)
		})

		DescribeTable("should answer 403",
			func(method string, payload func() interface{}) {
				resp, err := client.Do(ctx, method, client.Endpoints().Booking(created.BookingID), payload(), "")

				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			},
			Entry("PUT", http.MethodPut, func() interface{} { return data.UpdateBooking }),
			Entry("PATCH", http.MethodPatch, func() interface{} { return data.PartialUpdateBooking }),
			Entry("DELETE", http.MethodDelete, func() interface{} { return nil }),
		)
	})
})
