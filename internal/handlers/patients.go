package handlers

import (
	"time"

	"hospital-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PatientHandler handles patient profile requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// GetMyProfile returns the authenticated patient's profile.
func (h *PatientHandler) GetMyProfile(c *gin.Context) {
	actor, ok := ResolveActor(h.DB, c)
	if !ok {
		return
	}
	if actor.Patient == nil {
		utils.NotFound(c, "Patient profile not found")
		return
	}

	utils.Success(c, "Patient profile fetched successfully", actor.Patient)
}

// UpdatePatientProfileRequest carries the patient-editable profile fields.
type UpdatePatientProfileRequest struct {
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      *string    `json:"gender" binding:"omitempty,oneof=M F O U"`
	Phone       *string    `json:"phone"`
}

// UpdateMyProfile updates the authenticated patient's own profile.
func (h *PatientHandler) UpdateMyProfile(c *gin.Context) {
	var req UpdatePatientProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actor, ok := ResolveActor(h.DB, c)
	if !ok {
		return
	}
	if actor.Patient == nil {
		utils.NotFound(c, "Patient profile not found")
		return
	}

	patient := actor.Patient
	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}

	if err := h.DB.Save(patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient profile: "+err.Error())
		return
	}

	utils.Success(c, "Patient profile updated successfully", patient)
}
