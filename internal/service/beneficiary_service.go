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

type CreateBeneficiaryRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Phone         string `json:"phone"`
	Location      string `json:"location"`
	HouseholdSize int    `json:"household_size" binding:"omitempty,min=1"`
	ProgramID     string `json:"program_id"`
	RegisteredAt  string `json:"registered_at"` // RFC3339, defaults to now
}

type UpdateBeneficiaryRequest struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Location      string `json:"location"`
	HouseholdSize *int   `json:"household_size" binding:"omitempty,min=1"`
	Status        string `json:"status" binding:"omitempty,oneof=active inactive"`
	ProgramID     string `json:"program_id"`
}

type BeneficiaryResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Location      string `json:"location"`
	HouseholdSize int    `json:"household_size"`
	Status        string `json:"status"`
	ProgramID     string `json:"program_id,omitempty"`
	ProgramName   string `json:"program_name,omitempty"`
	RegisteredAt  string `json:"registered_at"`
}

// --- Interface ---

type BeneficiaryService interface {
	ListBeneficiaries(ctx context.Context, page, limit int, search string) ([]BeneficiaryResponse, int64, error)
	GetBeneficiary(ctx context.Context, id string) (*BeneficiaryResponse, error)
	CreateBeneficiary(ctx context.Context, req CreateBeneficiaryRequest) (*BeneficiaryResponse, error)
	UpdateBeneficiary(ctx context.Context, id string, req UpdateBeneficiaryRequest) (*BeneficiaryResponse, error)
	DeleteBeneficiary(ctx context.Context, id string) error
}

type beneficiaryService struct {
	db *gorm.DB
}

func NewBeneficiaryService(db *gorm.DB) BeneficiaryService {
	return &beneficiaryService{db: db}
}

// --- Implementation ---

func toBeneficiaryResponse(b model.Beneficiary) BeneficiaryResponse {
	resp := BeneficiaryResponse{
		ID:            b.ID.String(),
		FullName:      b.FullName,
		Phone:         b.Phone,
		Location:      b.Location,
		HouseholdSize: b.HouseholdSize,
		Status:        b.Status,
		RegisteredAt:  b.RegisteredAt.Format(time.RFC3339),
	}
	if b.ProgramID != nil {
		resp.ProgramID = b.ProgramID.String()
	}
	if b.Program != nil {
		resp.ProgramName = b.Program.Name
	}
	return resp
}

func (s *beneficiaryService) ListBeneficiaries(ctx context.Context, page, limit int, search string) ([]BeneficiaryResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var beneficiaries []model.Beneficiary
	var total int64

	db := s.db.WithContext(ctx).Model(&model.Beneficiary{})
	if search != "" {
		db = db.Where("full_name LIKE ?", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Program").Order("created_at desc").Offset(offset).Limit(limit).Find(&beneficiaries).Error; err != nil {
		return nil, 0, err
	}

	res := make([]BeneficiaryResponse, 0, len(beneficiaries))
	for _, b := range beneficiaries {
		res = append(res, toBeneficiaryResponse(b))
	}
	return res, total, nil
}

func (s *beneficiaryService) GetBeneficiary(ctx context.Context, id string) (*BeneficiaryResponse, error) {
	beneficiaryID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid beneficiary id", ErrInvalidInput)
	}

	var beneficiary model.Beneficiary
	if err := s.db.WithContext(ctx).Preload("Program").First(&beneficiary, "id = ?", beneficiaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: beneficiary", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	resp := toBeneficiaryResponse(beneficiary)
	return &resp, nil
}

func (s *beneficiaryService) CreateBeneficiary(ctx context.Context, req CreateBeneficiaryRequest) (*BeneficiaryResponse, error) {
	registeredAt := time.Now()
	if req.RegisteredAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.RegisteredAt)
		if err != nil {
			return nil, fmt.Errorf("%w: registered_at must be RFC3339", ErrInvalidInput)
		}
		registeredAt = parsed
	}

	householdSize := req.HouseholdSize
	if householdSize == 0 {
		householdSize = 1
	}

	beneficiary := model.Beneficiary{
		FullName:      req.FullName,
		Phone:         req.Phone,
		Location:      req.Location,
		HouseholdSize: householdSize,
		Status:        model.BeneficiaryActive,
		RegisteredAt:  registeredAt,
	}

	if req.ProgramID != "" {
		programID, err := s.resolveProgram(ctx, req.ProgramID)
		if err != nil {
			return nil, err
		}
		beneficiary.ProgramID = programID
	}

	if err := s.db.WithContext(ctx).Create(&beneficiary).Error; err != nil {
		return nil, fmt.Errorf("failed to create beneficiary: %w", err)
	}

	resp := toBeneficiaryResponse(beneficiary)
	return &resp, nil
}

func (s *beneficiaryService) UpdateBeneficiary(ctx context.Context, id string, req UpdateBeneficiaryRequest) (*BeneficiaryResponse, error) {
	beneficiaryID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid beneficiary id", ErrInvalidInput)
	}

	var beneficiary model.Beneficiary
	if err := s.db.WithContext(ctx).First(&beneficiary, "id = ?", beneficiaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: beneficiary", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.FullName != "" {
		beneficiary.FullName = req.FullName
	}
	if req.Phone != "" {
		beneficiary.Phone = req.Phone
	}
	if req.Location != "" {
		beneficiary.Location = req.Location
	}
	if req.HouseholdSize != nil {
		beneficiary.HouseholdSize = *req.HouseholdSize
	}
	if req.Status != "" {
		beneficiary.Status = req.Status
	}
	if req.ProgramID != "" {
		programID, err := s.resolveProgram(ctx, req.ProgramID)
		if err != nil {
			return nil, err
		}
		beneficiary.ProgramID = programID
	}

	if err := s.db.WithContext(ctx).Save(&beneficiary).Error; err != nil {
		return nil, fmt.Errorf("failed to update beneficiary: %w", err)
	}

	return s.GetBeneficiary(ctx, id)
}

func (s *beneficiaryService) DeleteBeneficiary(ctx context.Context, id string) error {
	beneficiaryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid beneficiary id", ErrInvalidInput)
	}

	var beneficiary model.Beneficiary
	if err := s.db.WithContext(ctx).First(&beneficiary, "id = ?", beneficiaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: beneficiary", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.db.WithContext(ctx).Delete(&beneficiary).Error
}

func (s *beneficiaryService) resolveProgram(ctx context.Context, id string) (*uuid.UUID, error) {
	programID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid program id", ErrInvalidInput)
	}
	var program model.Program
	if err := s.db.WithContext(ctx).First(&program, "id = ?", programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: program", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &programID, nil
}
