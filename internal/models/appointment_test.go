package models_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"hospital-app-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.Migrate(db))
	return db
}

func seedBooking(t *testing.T, db *gorm.DB) (*models.Patient, *models.Doctor) {
	t.Helper()
	user := models.User{Email: "patient@example.com", FullName: "Patient User", Role: models.RolePatient}
	require.NoError(t, user.SetPassword("testpass123"))
	require.NoError(t, db.Create(&user).Error)

	var patient models.Patient
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&patient).Error)

	hospital := models.Hospital{Name: "Test Hospital", Email: "hospital@example.com", Address: "123 St", Phone: "1234567890"}
	require.NoError(t, db.Create(&hospital).Error)
	branch := models.HospitalBranch{HospitalID: hospital.ID, Name: "Main Branch", Address: "123 St", Phone: "1234567890", City: "City", State: "State"}
	require.NoError(t, db.Create(&branch).Error)
	doctor := models.Doctor{BranchID: branch.ID, Name: "Dr. Who", Specialization: "General", AvailableTimes: `["Mon 9-11am"]`}
	require.NoError(t, db.Create(&doctor).Error)

	return &patient, &doctor
}

// The composite unique index is the authoritative double-booking guard:
// inserting a second appointment for the same (doctor, time) pair must fail
// with a translated duplicate-key error, independent of any handler check.
func TestDoctorSlotUniqueConstraint(t *testing.T) {
	db := openTestDB(t)
	patient, doctor := seedBooking(t, db)

	slot := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	first := models.Appointment{PatientID: patient.ID, DoctorID: doctor.ID, AppointmentTime: slot}
	require.NoError(t, db.Create(&first).Error)

	second := models.Appointment{PatientID: patient.ID, DoctorID: doctor.ID, AppointmentTime: slot}
	err := db.Create(&second).Error
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "expected duplicate-key error, got: %v", err)

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// A different slot for the same doctor is fine
	third := models.Appointment{PatientID: patient.ID, DoctorID: doctor.ID, AppointmentTime: slot.Add(time.Hour)}
	require.NoError(t, db.Create(&third).Error)
}

// Two racing inserts for the same slot end with exactly one row.
func TestDoctorSlotUniqueUnderConcurrency(t *testing.T) {
	db := openTestDB(t)
	patient, doctor := seedBooking(t, db)

	slot := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			appt := models.Appointment{PatientID: patient.ID, DoctorID: doctor.ID, AppointmentTime: slot}
			errs[i] = db.Create(&appt).Error
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one insert must lose the race")

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAppointmentDefaults(t *testing.T) {
	db := openTestDB(t)
	patient, doctor := seedBooking(t, db)

	appt := models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentTime: time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC),
		Status:          models.StatusPending,
		Duration:        45,
	}
	require.NoError(t, db.Create(&appt).Error)
	assert.NotEmpty(t, appt.ID, "UUID assigned by the create hook")

	var stored models.Appointment
	require.NoError(t, db.First(&stored, "id = ?", appt.ID).Error)
	assert.Equal(t, 45, stored.Duration)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.False(t, stored.CreatedAt.IsZero())
}
