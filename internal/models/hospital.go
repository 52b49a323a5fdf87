package models

// Hospital represents a registered hospital organisation
type Hospital struct {
	BaseModel
	Name       string `gorm:"size:255;not null" json:"name"`
	Email      string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Address    string `gorm:"type:text" json:"address"`
	Phone      string `gorm:"size:20" json:"phone"`
	IsVerified bool   `gorm:"default:false" json:"isVerified"`

	// Relations
	Branches []HospitalBranch `gorm:"foreignKey:HospitalID" json:"-"`
}

// HospitalBranch represents a physical branch of a hospital
type HospitalBranch struct {
	BaseModel
	HospitalID string `gorm:"size:36;index" json:"hospitalId"`
	Name       string `gorm:"size:255;not null" json:"name"`
	Address    string `gorm:"type:text" json:"address"`
	Phone      string `gorm:"size:20" json:"phone"`
	City       string `gorm:"size:100" json:"city"`
	State      string `gorm:"size:100" json:"state"`

	// Relations
	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"-"`
	Doctors  []Doctor `gorm:"foreignKey:BranchID" json:"-"`
}

// Doctor represents a practitioner in the hospital directory.
// UserID links the directory record to a DOCTOR login when one exists.
type Doctor struct {
	BaseModel
	BranchID       string  `gorm:"size:36;index" json:"branchId"`
	UserID         *string `gorm:"size:36;index" json:"userId,omitempty"`
	Name           string  `gorm:"size:255;not null" json:"name"`
	Specialization string  `gorm:"size:255" json:"specialization"`
	AvailableTimes string  `gorm:"type:text" json:"availableTimes"` // JSON or comma-separated slots
	ContactInfo    string  `gorm:"size:255" json:"contactInfo,omitempty"`

	// Relations
	Branch       HospitalBranch `gorm:"foreignKey:BranchID" json:"-"`
	User         *User          `gorm:"foreignKey:UserID" json:"-"`
	Appointments []Appointment  `gorm:"foreignKey:DoctorID" json:"-"`
}
