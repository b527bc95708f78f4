package handlers

import (
	"errors"
	"net/http"
	"time"

	availabilityRepo "comoencasa/database/repository/availability"
	providerRepo "comoencasa/database/repository/provider"
	userRepo "comoencasa/database/repository/user"
	"comoencasa/models"
	"comoencasa/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// adminSessionTTL bounds how long an admin dashboard token stays valid.
const adminSessionTTL = 12 * time.Hour

// AdminHandler serves the dashboard: admin login, therapist management and
// weekly schedule editing.
type AdminHandler struct {
	UserRepo         userRepo.UserRepository
	ProviderRepo     providerRepo.ProviderRepository
	AvailabilityRepo availabilityRepo.AvailabilityRepository
}

// NewAdminHandler constructs the admin handler.
func NewAdminHandler(users userRepo.UserRepository, providers providerRepo.ProviderRepository, availability availabilityRepo.AvailabilityRepository) *AdminHandler {
	return &AdminHandler{
		UserRepo:         users,
		ProviderRepo:     providers,
		AvailabilityRepo: availability,
	}
}

// Login authenticates an admin account and issues a dashboard token.
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	user, err := h.UserRepo.GetByEmail(c.Request.Context(), input.Email)
	if err != nil || user.Role != models.RoleAdmin {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateToken(user.ID, models.RoleAdmin, adminSessionTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CreateTherapist registers a new bookable therapist.
// POST /api/admin/therapists
func (h *AdminHandler) CreateTherapist(c *gin.Context) {
	var input struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Bio      string `json:"bio,omitempty"`
		PhotoURL string `json:"photo_url,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	provider := &models.Provider{
		ID:       uuid.NewString(),
		FullName: input.FullName,
		Email:    input.Email,
		Bio:      input.Bio,
		PhotoURL: input.PhotoURL,
		Active:   true,
	}
	if err := h.ProviderRepo.Create(c.Request.Context(), provider); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create therapist", err.Error())
		return
	}

	utils.GetLogger().Info("therapist created",
		zap.String("providerID", provider.ID), zap.String("email", provider.Email))
	c.JSON(http.StatusCreated, provider)
}

// ListTherapists lists all therapists currently accepting bookings.
// GET /api/admin/therapists
func (h *AdminHandler) ListTherapists(c *gin.Context) {
	providers, err := h.ProviderRepo.ListActive(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list therapists", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"therapists": providers})
}

// SetTherapistState activates or deactivates a therapist. Deactivation takes
// the therapist out of slot computation immediately; existing appointments
// are untouched.
// PATCH /api/admin/therapists/:id/state
func (h *AdminHandler) SetTherapistState(c *gin.Context) {
	var input struct {
		Active *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id := c.Param("id")
	if err := h.ProviderRepo.SetActive(c.Request.Context(), id, *input.Active); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "therapist not found", id)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update therapist", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "is_active": *input.Active})
}

// GetSchedule returns a therapist's weekly availability windows.
// GET /api/admin/therapists/:id/schedule
func (h *AdminHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.ProviderRepo.GetByID(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "therapist not found", id)
		return
	}

	windows, err := h.AvailabilityRepo.WindowsForProvider(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load schedule", err.Error())
		return
	}
	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}
	c.JSON(http.StatusOK, gin.H{"provider_id": id, "windows": windows})
}

// ReplaceSchedule swaps a therapist's whole weekly schedule for the submitted
// windows. The dashboard always sends the full week, so the previous windows
// are dropped wholesale rather than diffed.
// PUT /api/admin/therapists/:id/schedule
func (h *AdminHandler) ReplaceSchedule(c *gin.Context) {
	var input struct {
		Windows []struct {
			Weekday   int    `json:"weekday"`
			StartTime string `json:"start_time" binding:"required"`
			EndTime   string `json:"end_time" binding:"required"`
		} `json:"windows"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id := c.Param("id")
	if _, err := h.ProviderRepo.GetByID(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "therapist not found", id)
		return
	}

	windows := make([]models.AvailabilityWindow, 0, len(input.Windows))
	for _, w := range input.Windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			utils.JSONError(c, http.StatusBadRequest, "invalid weekday", "expected 0 (Sunday) to 6 (Saturday)")
			return
		}
		start, err := time.Parse(utils.TimeLayout, w.StartTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid start_time", w.StartTime)
			return
		}
		end, err := time.Parse(utils.TimeLayout, w.EndTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid end_time", w.EndTime)
			return
		}
		if !start.Before(end) {
			utils.JSONError(c, http.StatusBadRequest, "empty window", w.StartTime+"-"+w.EndTime)
			return
		}
		windows = append(windows, models.AvailabilityWindow{
			ProviderID: id,
			Weekday:    w.Weekday,
			StartTime:  w.StartTime,
			EndTime:    w.EndTime,
		})
	}

	if err := h.AvailabilityRepo.ReplaceForProvider(c.Request.Context(), id, windows); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to replace schedule", err.Error())
		return
	}

	utils.GetLogger().Info("schedule replaced",
		zap.String("providerID", id), zap.Int("windows", len(windows)))
	c.JSON(http.StatusOK, gin.H{"provider_id": id, "windows": len(windows)})
}
