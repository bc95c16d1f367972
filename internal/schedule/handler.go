package schedule

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

// ListClasses godoc
// @Summary      List upcoming classes
// @Description  Returns classes scheduled from now on, with booking counts and availability.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ClassWithAvailability
// @Failure      500  {object}  gin.H
// @Router       /classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	classes, err := h.svc.ListUpcomingClasses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// GetClass godoc
// @Summary      Class detail
// @Description  Returns a single class with availability and whether the caller already booked it.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {object}  ClassDetail
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /classes/{classID} [get]
func (h *Handler) GetClass(c *gin.Context) {
	classID, err := strconv.ParseInt(c.Param("classID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	memberID, _ := auth.GetMemberID(c)

	detail, err := h.svc.GetClassDetail(c.Request.Context(), classID, memberID)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch class"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ListTrainers godoc
// @Summary      List trainers
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Trainer
// @Failure      500  {object}  gin.H
// @Router       /trainers [get]
func (h *Handler) ListTrainers(c *gin.Context) {
	trainers, err := h.svc.ListTrainers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trainers"})
		return
	}

	c.JSON(http.StatusOK, trainers)
}

// CreateTrainer godoc
// @Summary      Create trainer
// @Description  Creates a new trainer. Staff only.
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTrainerRequest  true  "Trainer data"
// @Success      201      {object}  Trainer
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /staff/trainers [post]
func (h *Handler) CreateTrainer(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trainer, err := h.svc.CreateTrainer(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trainer"})
		return
	}

	c.JSON(http.StatusCreated, trainer)
}

// DeleteTrainer godoc
// @Summary      Delete trainer
// @Description  Deletes a trainer. Classes assigned to the trainer are kept and unassigned. Staff only.
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /staff/trainers/{trainerID} [delete]
func (h *Handler) DeleteTrainer(c *gin.Context) {
	trainerID, err := strconv.ParseInt(c.Param("trainerID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	if err := h.svc.DeleteTrainer(c.Request.Context(), trainerID); err != nil {
		if errors.Is(err, ErrTrainerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trainer"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Trainer deleted"})
}

// CreateClass godoc
// @Summary      Create class
// @Description  Creates a new gym class. Staff only.
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateClassRequest  true  "Class data"
// @Success      201      {object}  GymClass
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /staff/classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := h.svc.CreateClass(c.Request.Context(), req)
	if err != nil {
		h.respondClassError(c, err, "Failed to create class")
		return
	}

	c.JSON(http.StatusCreated, class)
}

// UpdateClass godoc
// @Summary      Update class
// @Description  Updates an existing gym class. Staff only.
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        classID  path      int                 true  "Class ID"
// @Param        request  body      CreateClassRequest  true  "Class data"
// @Success      200      {object}  GymClass
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /staff/classes/{classID} [put]
func (h *Handler) UpdateClass(c *gin.Context) {
	classID, err := strconv.ParseInt(c.Param("classID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := h.svc.UpdateClass(c.Request.Context(), classID, req)
	if err != nil {
		h.respondClassError(c, err, "Failed to update class")
		return
	}

	c.JSON(http.StatusOK, class)
}

// DeleteClass godoc
// @Summary      Delete class
// @Description  Deletes a class and all its bookings. Staff only.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /staff/classes/{classID} [delete]
func (h *Handler) DeleteClass(c *gin.Context) {
	classID, err := strconv.ParseInt(c.Param("classID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	if err := h.svc.DeleteClass(c.Request.Context(), classID); err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete class"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Class deleted"})
}

// RemainingSpotsReport godoc
// @Summary      Remaining spots report
// @Description  Lists all classes with booking counts and remaining spots (clamped at zero). Staff only.
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ClassSpotsReport
// @Failure      500  {object}  gin.H
// @Router       /staff/reports/remaining-spots [get]
func (h *Handler) RemainingSpotsReport(c *gin.Context) {
	report, err := h.svc.RemainingSpotsReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) respondClassError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidDuration), errors.Is(err, ErrInvalidCapacity), errors.Is(err, ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrTrainerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
	case errors.Is(err, ErrClassNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
