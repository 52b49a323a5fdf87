package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment represents a scheduled visit between a patient and a doctor.
//
// The composite unique index on (doctor_id, appointment_time) is the
// authoritative guard against double booking: the handler's existence check
// is only a fast path, and a duplicate-key error from the insert is mapped
// to the same slot-taken response.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index" json:"patientId"`
	DoctorID        string            `gorm:"size:36;uniqueIndex:idx_doctor_slot" json:"doctorId"`
	AppointmentTime time.Time         `gorm:"uniqueIndex:idx_doctor_slot" json:"appointmentTime"`
	Status          AppointmentStatus `gorm:"size:10;default:'PENDING'" json:"status"`
	Reason          string            `gorm:"type:text" json:"reason"`
	Notes           string            `gorm:"type:text" json:"notes"`
	Duration        int               `gorm:"default:30" json:"duration"` // minutes

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}
