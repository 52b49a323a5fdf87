package handlers

import (
	"errors"

	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HospitalHandler handles the hospital directory: hospitals, branches and doctors.
type HospitalHandler struct {
	DB *gorm.DB
}

// NewHospitalHandler creates a new HospitalHandler.
func NewHospitalHandler(db *gorm.DB) *HospitalHandler {
	return &HospitalHandler{DB: db}
}

// CreateHospitalRequest represents the request body for registering a hospital.
type CreateHospitalRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

// CreateHospital registers a hospital.
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var req CreateHospitalRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	hospital := models.Hospital{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := h.DB.Create(&hospital).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, "A hospital with this email already exists")
			return
		}
		utils.InternalServerError(c, "Failed to create hospital: "+err.Error())
		return
	}

	utils.Created(c, "Hospital created successfully", hospital)
}

// GetHospitals lists all hospitals.
func (h *HospitalHandler) GetHospitals(c *gin.Context) {
	hospitals := []models.Hospital{}
	if err := h.DB.Order("created_at asc").Find(&hospitals).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch hospitals: "+err.Error())
		return
	}
	utils.Success(c, "Hospitals fetched successfully", hospitals)
}

// GetHospitalByID fetches a single hospital with its branches.
func (h *HospitalHandler) GetHospitalByID(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Hospital ID format")
		return
	}

	var hospital models.Hospital
	if err := h.DB.Preload("Branches").First(&hospital, "id = ?", hospitalID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Hospital not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Hospital fetched successfully", hospital)
}

// UpdateHospitalRequest represents the writable hospital fields.
type UpdateHospitalRequest struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	Phone      *string `json:"phone"`
	IsVerified *bool   `json:"isVerified"`
}

// UpdateHospital applies a partial update to a hospital.
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	var req UpdateHospitalRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	hospitalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Hospital ID format")
		return
	}

	var hospital models.Hospital
	if err := h.DB.First(&hospital, "id = ?", hospitalID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Hospital not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != nil {
		hospital.Name = *req.Name
	}
	if req.Address != nil {
		hospital.Address = *req.Address
	}
	if req.Phone != nil {
		hospital.Phone = *req.Phone
	}
	if req.IsVerified != nil {
		hospital.IsVerified = *req.IsVerified
	}

	if err := h.DB.Save(&hospital).Error; err != nil {
		utils.InternalServerError(c, "Failed to update hospital: "+err.Error())
		return
	}

	utils.Success(c, "Hospital updated successfully", hospital)
}

// DeleteHospital removes a hospital from the directory.
func (h *HospitalHandler) DeleteHospital(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Hospital ID format")
		return
	}

	result := h.DB.Delete(&models.Hospital{}, "id = ?", hospitalID.String())
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete hospital: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Hospital not found")
		return
	}

	utils.Success(c, "Hospital deleted successfully", nil)
}

// CreateBranchRequest represents the request body for adding a branch.
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
}

// CreateBranch adds a branch under a hospital.
func (h *HospitalHandler) CreateBranch(c *gin.Context) {
	var req CreateBranchRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	hospitalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Hospital ID format")
		return
	}

	var hospital models.Hospital
	if err := h.DB.First(&hospital, "id = ?", hospitalID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Hospital not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	branch := models.HospitalBranch{
		HospitalID: hospital.ID,
		Name:       req.Name,
		Address:    req.Address,
		Phone:      req.Phone,
		City:       req.City,
		State:      req.State,
	}

	if err := h.DB.Create(&branch).Error; err != nil {
		utils.InternalServerError(c, "Failed to create branch: "+err.Error())
		return
	}

	utils.Created(c, "Branch created successfully", branch)
}

// GetBranches lists the branches of a hospital.
func (h *HospitalHandler) GetBranches(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Hospital ID format")
		return
	}

	branches := []models.HospitalBranch{}
	if err := h.DB.Where("hospital_id = ?", hospitalID.String()).
		Order("created_at asc").Find(&branches).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch branches: "+err.Error())
		return
	}

	utils.Success(c, "Branches fetched successfully", branches)
}

// CreateDoctorRequest represents the request body for adding a doctor to a branch.
type CreateDoctorRequest struct {
	UserID         *string `json:"userId" binding:"omitempty,uuid"`
	Name           string  `json:"name" binding:"required"`
	Specialization string  `json:"specialization" binding:"required"`
	AvailableTimes string  `json:"availableTimes"`
	ContactInfo    string  `json:"contactInfo"`
}

// CreateDoctor adds a doctor record under a branch, optionally linked to a
// DOCTOR login so that login can see its appointments.
func (h *HospitalHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Branch ID format")
		return
	}

	var branch models.HospitalBranch
	if err := h.DB.First(&branch, "id = ?", branchID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Branch not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.UserID != nil {
		var user models.User
		if err := h.DB.Where("id = ? AND role = ?", *req.UserID, models.RoleDoctor).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.BadRequest(c, "Linked user not found or is not a doctor")
			} else {
				utils.InternalServerError(c, "Database error verifying user: "+err.Error())
			}
			return
		}
	}

	doctor := models.Doctor{
		BranchID:       branch.ID,
		UserID:         req.UserID,
		Name:           req.Name,
		Specialization: req.Specialization,
		AvailableTimes: req.AvailableTimes,
		ContactInfo:    req.ContactInfo,
	}

	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	utils.Created(c, "Doctor created successfully", doctor)
}

// GetDoctors lists the doctor directory, optionally filtered by branch.
func (h *HospitalHandler) GetDoctors(c *gin.Context) {
	query := h.DB.Order("created_at asc")
	if branchID := c.Query("branchId"); branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}

	doctors := []models.Doctor{}
	if err := query.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// UpdateDoctorRequest represents the writable doctor directory fields.
type UpdateDoctorRequest struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	AvailableTimes *string `json:"availableTimes"`
	ContactInfo    *string `json:"contactInfo"`
	UserID         *string `json:"userId" binding:"omitempty,uuid"`
}

// UpdateDoctor applies a partial update to a doctor record.
func (h *HospitalHandler) UpdateDoctor(c *gin.Context) {
	var req UpdateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.AvailableTimes != nil {
		doctor.AvailableTimes = *req.AvailableTimes
	}
	if req.ContactInfo != nil {
		doctor.ContactInfo = *req.ContactInfo
	}
	if req.UserID != nil {
		doctor.UserID = req.UserID
	}

	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor updated successfully", doctor)
}

// DeleteDoctor removes a doctor record from the directory.
func (h *HospitalHandler) DeleteDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	result := h.DB.Delete(&models.Doctor{}, "id = ?", doctorID.String())
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete doctor: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Doctor not found")
		return
	}

	utils.Success(c, "Doctor deleted successfully", nil)
}
