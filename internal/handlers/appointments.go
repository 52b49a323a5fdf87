package handlers

import (
	"errors"
	"time"

	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	msgSlotTaken  = "This slot is already booked."
	msgPastTime   = "Appointment time must be in the future."
	msgApptAbsent = "Appointment not found"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB    *gorm.DB
	Clock utils.Clock
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, clock utils.Clock) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Clock: clock}
}

// CreateAppointmentRequest represents the request body for booking a slot.
// The patient is always taken from the authenticated caller, never the body.
type CreateAppointmentRequest struct {
	DoctorID        string    `json:"doctorId" binding:"required,uuid"`
	AppointmentTime time.Time `json:"appointmentTime" binding:"required"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
	Duration        int       `json:"duration" binding:"omitempty,gt=0"`
}

// CreateAppointment books a slot for the authenticated patient.
//
// Validation order: role (route middleware), future time, slot free. The
// slot existence check is only a fast path; the composite unique index on
// (doctor_id, appointment_time) is the authoritative arbiter, and a
// duplicate-key error from the insert gets the same slot-taken response.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actor, ok := ResolveActor(h.DB, c)
	if !ok {
		return
	}
	if actor.Patient == nil {
		utils.Forbidden(c, "No patient profile is associated with this account.")
		return
	}

	if !req.AppointmentTime.After(h.Clock.Now()) {
		utils.BadRequest(c, msgPastTime)
		return
	}

	// Verify the doctor reference points at a directory record
	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	var count int64
	if err := h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_time = ?", req.DoctorID, req.AppointmentTime).
		Count(&count).Error; err != nil {
		utils.InternalServerError(c, "Database error checking slot: "+err.Error())
		return
	}
	if count > 0 {
		utils.BadRequest(c, msgSlotTaken)
		return
	}

	duration := req.Duration
	if duration == 0 {
		duration = 30
	}

	appointment := models.Appointment{
		PatientID:       actor.Patient.ID,
		DoctorID:        req.DoctorID,
		AppointmentTime: req.AppointmentTime,
		Status:          models.StatusPending,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Duration:        duration,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race for the slot after the fast-path check passed
			utils.BadRequest(c, msgSlotTaken)
			return
		}
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetMyAppointments lists the authenticated patient's own appointments in
// creation order. Callers without a patient profile get an empty list.
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	actor, ok := ResolveActor(h.DB, c)
	if !ok {
		return
	}

	appointments := []models.Appointment{}
	if actor.Role == models.RolePatient && actor.Patient != nil {
		if err := h.DB.Where("patient_id = ?", actor.Patient.ID).
			Order("created_at asc").Find(&appointments).Error; err != nil {
			utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
			return
		}
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetDoctorAppointments lists appointments addressed to any doctor record
// linked to the authenticated caller. No linked record means an empty list,
// not an error.
func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	actor, ok := ResolveActor(h.DB, c)
	if !ok {
		return
	}

	appointments := []models.Appointment{}
	if actor.Role == models.RoleDoctor && len(actor.DoctorIDs) > 0 {
		if err := h.DB.Where("doctor_id IN ?", actor.DoctorIDs).
			Order("created_at asc").Find(&appointments).Error; err != nil {
			utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
			return
		}
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// loadVisibleAppointment fetches an appointment the actor may see. Records
// outside the actor's scope read as not found so existence is never leaked.
func (h *AppointmentHandler) loadVisibleAppointment(c *gin.Context, actor *Actor) (*models.Appointment, bool) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return nil, false
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, msgApptAbsent)
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	if !actor.CanSee(&appointment) {
		utils.NotFound(c, msgApptAbsent)
		return nil, false
	}

	return &appointment, true
}

// GetAppointmentByID fetches a single appointment, visible only to the
// owning patient or the assigned doctor.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	actor, ok := ResolveActor(h.DB, c)
	if !ok {
		return
	}

	appointment, ok := h.loadVisibleAppointment(c, actor)
	if !ok {
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentRequest carries the client-writable fields. Absent fields
// are left untouched.
type UpdateAppointmentRequest struct {
	AppointmentTime *time.Time                `json:"appointmentTime"`
	Status          *models.AppointmentStatus `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	Reason          *string                   `json:"reason"`
	Notes           *string                   `json:"notes"`
	Duration        *int                      `json:"duration" binding:"omitempty,gt=0"`
}

// UpdateAppointment applies a partial update to a visible appointment.
//
// TODO: define a status transition policy; any of the three statuses can
// currently be written, so CANCELLED is not terminal.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actor, ok := ResolveActor(h.DB, c)
	if !ok {
		return
	}

	appointment, ok := h.loadVisibleAppointment(c, actor)
	if !ok {
		return
	}

	if req.AppointmentTime != nil {
		if !req.AppointmentTime.After(h.Clock.Now()) {
			utils.BadRequest(c, msgPastTime)
			return
		}
		appointment.AppointmentTime = *req.AppointmentTime
	}
	if req.Status != nil {
		appointment.Status = *req.Status
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.Duration != nil {
		appointment.Duration = *req.Duration
	}

	if err := h.DB.Save(appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, msgSlotTaken)
			return
		}
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment updated successfully", appointment)
}

// DeleteAppointment hard-deletes a visible appointment. Nothing cascades.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	actor, ok := ResolveActor(h.DB, c)
	if !ok {
		return
	}

	appointment, ok := h.loadVisibleAppointment(c, actor)
	if !ok {
		return
	}

	if err := h.DB.Delete(appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}
