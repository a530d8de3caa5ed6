package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"angaza/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StaffCount  int64  `json:"staff_count"`
}

type CreateStaffRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Position     string `json:"position"`
	DepartmentID string `json:"department_id"`
	HiredAt      string `json:"hired_at"` // RFC3339, defaults to now
}

type UpdateStaffRequest struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Position     string `json:"position"`
	DepartmentID string `json:"department_id"`
}

type StaffResponse struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Position       string `json:"position"`
	DepartmentID   string `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	HiredAt        string `json:"hired_at"`
}

// --- Interface ---

type OrganizationService interface {
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, id string, req CreateDepartmentRequest) (*DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	ListStaff(ctx context.Context, page, limit int) ([]StaffResponse, int64, error)
	CreateStaff(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error)
	UpdateStaff(ctx context.Context, id string, req UpdateStaffRequest) (*StaffResponse, error)
	DeleteStaff(ctx context.Context, id string) error
}

type organizationService struct {
	db *gorm.DB
}

func NewOrganizationService(db *gorm.DB) OrganizationService {
	return &organizationService{db: db}
}

// --- Implementation ---

func toStaffResponse(s model.Staff) StaffResponse {
	resp := StaffResponse{
		ID:       s.ID.String(),
		FullName: s.FullName,
		Email:    s.Email,
		Phone:    s.Phone,
		Position: s.Position,
		HiredAt:  s.HiredAt.Format(time.RFC3339),
	}
	if s.DepartmentID != nil {
		resp.DepartmentID = s.DepartmentID.String()
	}
	if s.Department != nil {
		resp.DepartmentName = s.Department.Name
	}
	return resp
}

func (s *organizationService) ListDepartments(ctx context.Context) ([]DepartmentResponse, error) {
	var departments []model.Department
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch departments: %w", err)
	}

	res := make([]DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		var staffCount int64
		if err := s.db.WithContext(ctx).Model(&model.Staff{}).
			Where("department_id = ?", d.ID).Count(&staffCount).Error; err != nil {
			return nil, err
		}
		res = append(res, DepartmentResponse{
			ID:          d.ID.String(),
			Name:        d.Name,
			Description: d.Description,
			StaffCount:  staffCount,
		})
	}
	return res, nil
}

func (s *organizationService) CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	var existing model.Department
	if err := s.db.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: department %q", ErrDuplicate, req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	department := model.Department{Name: req.Name, Description: req.Description}
	if err := s.db.WithContext(ctx).Create(&department).Error; err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return &DepartmentResponse{
		ID:          department.ID.String(),
		Name:        department.Name,
		Description: department.Description,
	}, nil
}

func (s *organizationService) UpdateDepartment(ctx context.Context, id string, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	departmentID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid department id", ErrInvalidInput)
	}

	var department model.Department
	if err := s.db.WithContext(ctx).First(&department, "id = ?", departmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: department", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	department.Name = req.Name
	department.Description = req.Description
	if err := s.db.WithContext(ctx).Save(&department).Error; err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	return &DepartmentResponse{
		ID:          department.ID.String(),
		Name:        department.Name,
		Description: department.Description,
	}, nil
}

// DeleteDepartment refuses to remove a department that still has staff
func (s *organizationService) DeleteDepartment(ctx context.Context, id string) error {
	departmentID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid department id", ErrInvalidInput)
	}

	var department model.Department
	if err := s.db.WithContext(ctx).First(&department, "id = ?", departmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: department", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	var staffCount int64
	if err := s.db.WithContext(ctx).Model(&model.Staff{}).
		Where("department_id = ?", departmentID).Count(&staffCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if staffCount > 0 {
		return fmt.Errorf("%w: department %q has %d staff member(s)", ErrInUse, department.Name, staffCount)
	}

	return s.db.WithContext(ctx).Delete(&department).Error
}

func (s *organizationService) ListStaff(ctx context.Context, page, limit int) ([]StaffResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var staff []model.Staff
	var total int64

	if err := s.db.WithContext(ctx).Model(&model.Staff{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := s.db.WithContext(ctx).Preload("Department").
		Order("full_name ASC").Offset(offset).Limit(limit).Find(&staff).Error; err != nil {
		return nil, 0, err
	}

	res := make([]StaffResponse, 0, len(staff))
	for _, member := range staff {
		res = append(res, toStaffResponse(member))
	}
	return res, total, nil
}

func (s *organizationService) CreateStaff(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error) {
	var existing model.Staff
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: staff email", ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	hiredAt := time.Now()
	if req.HiredAt != "" {
		parsed, parseErr := time.Parse(time.RFC3339, req.HiredAt)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: hired_at must be RFC3339", ErrInvalidInput)
		}
		hiredAt = parsed
	}

	member := model.Staff{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Position: req.Position,
		HiredAt:  hiredAt,
	}

	if req.DepartmentID != "" {
		departmentID, err := s.resolveDepartment(ctx, req.DepartmentID)
		if err != nil {
			return nil, err
		}
		member.DepartmentID = departmentID
	}

	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}

	resp := toStaffResponse(member)
	return &resp, nil
}

func (s *organizationService) UpdateStaff(ctx context.Context, id string, req UpdateStaffRequest) (*StaffResponse, error) {
	staffID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid staff id", ErrInvalidInput)
	}

	var member model.Staff
	if err := s.db.WithContext(ctx).First(&member, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: staff member", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.FullName != "" {
		member.FullName = req.FullName
	}
	if req.Phone != "" {
		member.Phone = req.Phone
	}
	if req.Position != "" {
		member.Position = req.Position
	}
	if req.DepartmentID != "" {
		departmentID, err := s.resolveDepartment(ctx, req.DepartmentID)
		if err != nil {
			return nil, err
		}
		member.DepartmentID = departmentID
	}

	if err := s.db.WithContext(ctx).Save(&member).Error; err != nil {
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}

	resp := toStaffResponse(member)
	return &resp, nil
}

func (s *organizationService) DeleteStaff(ctx context.Context, id string) error {
	staffID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid staff id", ErrInvalidInput)
	}

	result := s.db.WithContext(ctx).Where("id = ?", staffID).Delete(&model.Staff{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: staff member", ErrNotFound)
	}
	return nil
}

func (s *organizationService) resolveDepartment(ctx context.Context, id string) (*uuid.UUID, error) {
	departmentID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid department id", ErrInvalidInput)
	}
	var department model.Department
	if err := s.db.WithContext(ctx).First(&department, "id = ?", departmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: department", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &departmentID, nil
}
