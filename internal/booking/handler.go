package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/IsroilovA/gym-class-management/internal/api"
	"github.com/IsroilovA/gym-class-management/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// BookClass godoc
// @Summary      Book a class
// @Description  Reserves a spot in the given class for the authenticated member.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      201      {object}  Booking
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Failure      503      {object}  gin.H
// @Router       /classes/{classID}/book [post]
func (h *Handler) BookClass(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Member not authenticated"})
		return
	}

	classID, err := strconv.ParseInt(c.Param("classID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	b, err := h.svc.BookClass(c.Request.Context(), memberID, classID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Description  Cancels a booking owned by the authenticated member.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Member not authenticated"})
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := h.svc.CancelBooking(c.Request.Context(), memberID, bookingID); err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully"})
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Description  Returns bookings of the authenticated member, newest first.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithClass
// @Failure      500  {object}  gin.H
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Member not authenticated"})
		return
	}

	bookings, err := h.svc.ListMemberBookings(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ClassRoster godoc
// @Summary      Class roster
// @Description  Returns all bookings for a class with member details. Staff only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {array}   BookingWithMember
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /staff/classes/{classID}/roster [get]
func (h *Handler) ClassRoster(c *gin.Context) {
	classID, err := strconv.ParseInt(c.Param("classID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	roster, err := h.svc.ClassRoster(c.Request.Context(), classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch roster"})
		return
	}

	c.JSON(http.StatusOK, roster)
}

// RevalidateBooking godoc
// @Summary      Revalidate booking
// @Description  Re-runs the booking rules for an existing booking, excluding it from its own counts. Staff only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /staff/bookings/{bookingID}/revalidate [post]
func (h *Handler) RevalidateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := h.svc.RevalidateBooking(c.Request.Context(), bookingID); err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking is valid"})
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrClassNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": UserMessage(err)})
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": UserMessage(err)})
	case errors.Is(err, ErrClassAlreadyStarted):
		c.JSON(http.StatusBadRequest, gin.H{"error": UserMessage(err)})
	case errors.Is(err, ErrDuplicateBooking), errors.Is(err, ErrIntegrityViolation), errors.Is(err, ErrClassFull):
		c.JSON(http.StatusConflict, gin.H{"error": UserMessage(err)})
	case errors.Is(err, ErrLockTimeout):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": UserMessage(err)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
