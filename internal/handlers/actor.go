package handlers

import (
	"errors"

	"hospital-app-server/internal/middleware"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Actor is the caller identity resolved once per request: an explicit role
// tag plus the domain records linked to the login. Handlers dispatch on the
// role tag, never on which optional field happens to be set.
type Actor struct {
	UserID    string
	Role      models.Role
	Patient   *models.Patient // nil unless a patient profile exists
	DoctorIDs []string        // directory records linked to this login
}

// CanSee reports whether the actor has visibility into an appointment:
// the owning patient or a doctor the appointment is addressed to.
func (a *Actor) CanSee(appt *models.Appointment) bool {
	switch a.Role {
	case models.RolePatient:
		return a.Patient != nil && a.Patient.ID == appt.PatientID
	case models.RoleDoctor:
		for _, id := range a.DoctorIDs {
			if id == appt.DoctorID {
				return true
			}
		}
	}
	return false
}

// ResolveActor loads the caller's linked patient profile or doctor records
// for the role carried in the token. On failure it writes the error response
// and returns false.
func ResolveActor(db *gorm.DB, c *gin.Context) (*Actor, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	actor := &Actor{UserID: userID, Role: role}

	switch role {
	case models.RolePatient:
		var patient models.Patient
		err := db.Where("user_id = ?", userID).First(&patient).Error
		if err == nil {
			actor.Patient = &patient
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalServerError(c, "Database error resolving patient profile: "+err.Error())
			return nil, false
		}
	case models.RoleDoctor:
		var ids []string
		if err := db.Model(&models.Doctor{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
			utils.InternalServerError(c, "Database error resolving doctor records: "+err.Error())
			return nil, false
		}
		actor.DoctorIDs = ids
	}

	return actor, true
}
