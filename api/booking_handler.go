package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	bk "github.com/hanksha/fitclass-booking/booking"
	"github.com/hanksha/fitclass-booking/session"
)

//go:generate mockgen -source=booking_handler.go -destination=mocks/booking_handler.go -package=mocks

type BookingService interface {
	FetchClasses(ctx context.Context) ([]bk.FitnessClass, error)
	FetchUserBookings(ctx context.Context, userID string) ([]bk.Booking, error)
	BookClass(ctx context.Context, userID, token, classID string) (bk.Booking, error)
	CancelBooking(ctx context.Context, userID, token, bookingID string) error
	Dashboard(ctx context.Context, userID string) (bk.Dashboard, error)
}

type BookingHandler struct {
	service BookingService
}

type bookClassRequest struct {
	ClassID string `json:"classId" binding:"required"`
}

func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterClasses mounts the public class list.
func (h *BookingHandler) RegisterClasses(rg *gin.RouterGroup) {
	rg.GET("", h.ListClasses)
}

// Register mounts the booking routes. They expect a session.User under
// "user", see SessionAuth.
func (h *BookingHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListBookings)
	rg.GET("/dashboard", h.Dashboard)
	rg.POST("", h.Book)
	rg.PUT("/:id/cancel", h.Cancel)
}

func (h *BookingHandler) ListClasses(c *gin.Context) {
	if classes, err := h.service.FetchClasses(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve classes",
		})
	} else {
		c.IndentedJSON(http.StatusOK, classes)
	}
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	user := c.MustGet("user").(session.User)
	bookings, err := h.service.FetchUserBookings(c.Request.Context(), user.ID)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrNoUser) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve bookings",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Dashboard(c *gin.Context) {
	user := c.MustGet("user").(session.User)
	dashboard, err := h.service.Dashboard(c.Request.Context(), user.ID)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve dashboard",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, dashboard)
}

func (h *BookingHandler) Book(c *gin.Context) {
	user := c.MustGet("user").(session.User)
	var req bookClassRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	booking, err := h.service.BookClass(c.Request.Context(), user.ID, user.Token, req.ClassID)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrDuplicateBooking) {
			c.JSON(http.StatusConflict, gin.H{"error": "You already have this booking!"})
		} else if errors.Is(err, bk.ErrClassFull) {
			c.JSON(http.StatusConflict, gin.H{"error": "class is full"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to book class"})
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	user := c.MustGet("user").(session.User)
	id := c.Param("id")

	err := h.service.CancelBooking(c.Request.Context(), user.ID, user.Token, id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrInvalidBookingState) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid booking state",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to cancel booking",
			})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}
