package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender codes accepted on a patient profile
const (
	GenderMale        = "M"
	GenderFemale      = "F"
	GenderOther       = "O"
	GenderUndisclosed = "U"
)

// Patient represents the clinical profile attached to a PATIENT user
type Patient struct {
	BaseModel
	UserID           string     `gorm:"size:36;uniqueIndex" json:"userId"`
	HospitalBranchID *string    `gorm:"size:36;index" json:"hospitalBranchId,omitempty"`
	UniversalID      string     `gorm:"size:20;uniqueIndex" json:"universalId"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	Gender           string     `gorm:"size:10" json:"gender,omitempty"`
	Phone            string     `gorm:"size:20" json:"phone,omitempty"`
	Address          string     `gorm:"type:text" json:"address,omitempty"`
	EmergencyContact string     `gorm:"size:255" json:"emergencyContact,omitempty"`
	MedicalHistory   string     `gorm:"type:text" json:"medicalHistory,omitempty"`

	// Relations
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	HospitalBranch *HospitalBranch `gorm:"foreignKey:HospitalBranchID" json:"-"`
	Appointments   []Appointment   `gorm:"foreignKey:PatientID" json:"-"`
}

// GenerateUniversalID returns an 8-character uppercase alphanumeric patient ID.
func GenerateUniversalID() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// AfterCreate auto-creates the Patient profile for newly registered
// PATIENT users, mirroring account and profile creation in one transaction.
func (u *User) AfterCreate(tx *gorm.DB) error {
	if u.Role != RolePatient {
		return nil
	}
	patient := Patient{
		UserID:      u.ID,
		UniversalID: GenerateUniversalID(),
	}
	return tx.Create(&patient).Error
}
