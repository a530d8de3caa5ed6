package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"angaza/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateDonationRequest struct {
	DonorName string `json:"donor_name" binding:"required"`
	Amount    string `json:"amount" binding:"required"` // Decimal string
	Currency  string `json:"currency"`
	ProjectID string `json:"project_id"`
	Notes     string `json:"notes"`
	DonatedAt string `json:"donated_at"` // RFC3339, defaults to now
}

type DonationResponse struct {
	ID        string `json:"id"`
	DonorName string `json:"donor_name"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	ProjectID string `json:"project_id,omitempty"`
	Notes     string `json:"notes"`
	DonatedAt string `json:"donated_at"`
}

type CreateGrantRequest struct {
	Grantor     string `json:"grantor" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency"`
	ProjectID   string `json:"project_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Notes       string `json:"notes"`
}

type UpdateGrantRequest struct {
	Status string `json:"status" binding:"required,oneof=applied awarded disbursed closed"`
	Notes  string `json:"notes"`
}

type GrantResponse struct {
	ID          string `json:"id"`
	Grantor     string `json:"grantor"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	ProjectID   string `json:"project_id,omitempty"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end,omitempty"`
	Notes       string `json:"notes"`
}

type CreatePartnerRequest struct {
	Name         string `json:"name" binding:"required"`
	Type         string `json:"type"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
}

type PartnerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// FundingSummary totals donations and grants for the finance overview
type FundingSummary struct {
	TotalDonations  int    `json:"total_donations"`
	DonatedAmount   string `json:"donated_amount"`
	TotalGrants     int    `json:"total_grants"`
	AwardedAmount   string `json:"awarded_amount"`
	DisbursedAmount string `json:"disbursed_amount"`
}

// --- Interface ---

type FundingService interface {
	ListDonations(ctx context.Context, page, limit int) ([]DonationResponse, int64, error)
	GetDonation(ctx context.Context, id string) (*DonationResponse, error)
	CreateDonation(ctx context.Context, req CreateDonationRequest) (*DonationResponse, error)
	DeleteDonation(ctx context.Context, id string) error

	ListGrants(ctx context.Context, page, limit int) ([]GrantResponse, int64, error)
	GetGrant(ctx context.Context, id string) (*GrantResponse, error)
	CreateGrant(ctx context.Context, req CreateGrantRequest) (*GrantResponse, error)
	UpdateGrant(ctx context.Context, id string, req UpdateGrantRequest) (*GrantResponse, error)
	DeleteGrant(ctx context.Context, id string) error

	ListPartners(ctx context.Context) ([]PartnerResponse, error)
	CreatePartner(ctx context.Context, req CreatePartnerRequest) (*PartnerResponse, error)
	DeletePartner(ctx context.Context, id string) error

	Summary(ctx context.Context) (*FundingSummary, error)
}

type fundingService struct {
	db *gorm.DB
}

func NewFundingService(db *gorm.DB) FundingService {
	return &fundingService{db: db}
}

// --- Implementation ---

func toDonationResponse(d model.Donation) DonationResponse {
	resp := DonationResponse{
		ID:        d.ID.String(),
		DonorName: d.DonorName,
		Amount:    d.Amount.StringFixed(2),
		Currency:  d.Currency,
		Notes:     d.Notes,
		DonatedAt: d.DonatedAt.Format(time.RFC3339),
	}
	if d.ProjectID != nil {
		resp.ProjectID = d.ProjectID.String()
	}
	return resp
}

func toGrantResponse(g model.Grant) GrantResponse {
	resp := GrantResponse{
		ID:          g.ID.String(),
		Grantor:     g.Grantor,
		Amount:      g.Amount.StringFixed(2),
		Currency:    g.Currency,
		Status:      g.Status,
		PeriodStart: g.PeriodStart.Format(time.RFC3339),
		Notes:       g.Notes,
	}
	if g.ProjectID != nil {
		resp.ProjectID = g.ProjectID.String()
	}
	if g.PeriodEnd != nil {
		resp.PeriodEnd = g.PeriodEnd.Format(time.RFC3339)
	}
	return resp
}

func (s *fundingService) ListDonations(ctx context.Context, page, limit int) ([]DonationResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var donations []model.Donation
	var total int64

	if err := s.db.WithContext(ctx).Model(&model.Donation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := s.db.WithContext(ctx).Order("donated_at desc").Offset(offset).Limit(limit).Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	res := make([]DonationResponse, 0, len(donations))
	for _, d := range donations {
		res = append(res, toDonationResponse(d))
	}
	return res, total, nil
}

func (s *fundingService) GetDonation(ctx context.Context, id string) (*DonationResponse, error) {
	donationID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid donation id", ErrInvalidInput)
	}

	var donation model.Donation
	if err := s.db.WithContext(ctx).First(&donation, "id = ?", donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: donation", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	resp := toDonationResponse(donation)
	return &resp, nil
}

func (s *fundingService) CreateDonation(ctx context.Context, req CreateDonationRequest) (*DonationResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() || amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be a positive decimal", ErrInvalidInput)
	}

	donatedAt := time.Now()
	if req.DonatedAt != "" {
		parsed, parseErr := time.Parse(time.RFC3339, req.DonatedAt)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: donated_at must be RFC3339", ErrInvalidInput)
		}
		donatedAt = parsed
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	donation := model.Donation{
		DonorName: req.DonorName,
		Amount:    amount,
		Currency:  currency,
		Notes:     req.Notes,
		DonatedAt: donatedAt,
	}

	if req.ProjectID != "" {
		projectID, err := s.resolveProject(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
		donation.ProjectID = projectID
	}

	if err := s.db.WithContext(ctx).Create(&donation).Error; err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	resp := toDonationResponse(donation)
	return &resp, nil
}

func (s *fundingService) DeleteDonation(ctx context.Context, id string) error {
	donationID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid donation id", ErrInvalidInput)
	}

	result := s.db.WithContext(ctx).Where("id = ?", donationID).Delete(&model.Donation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: donation", ErrNotFound)
	}
	return nil
}

func (s *fundingService) ListGrants(ctx context.Context, page, limit int) ([]GrantResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var grants []model.Grant
	var total int64

	if err := s.db.WithContext(ctx).Model(&model.Grant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := s.db.WithContext(ctx).Order("created_at desc").Offset(offset).Limit(limit).Find(&grants).Error; err != nil {
		return nil, 0, err
	}

	res := make([]GrantResponse, 0, len(grants))
	for _, g := range grants {
		res = append(res, toGrantResponse(g))
	}
	return res, total, nil
}

func (s *fundingService) GetGrant(ctx context.Context, id string) (*GrantResponse, error) {
	grantID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid grant id", ErrInvalidInput)
	}

	var grant model.Grant
	if err := s.db.WithContext(ctx).First(&grant, "id = ?", grantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: grant", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	resp := toGrantResponse(grant)
	return &resp, nil
}

func (s *fundingService) CreateGrant(ctx context.Context, req CreateGrantRequest) (*GrantResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() || amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be a positive decimal", ErrInvalidInput)
	}

	periodStart := time.Now()
	if req.PeriodStart != "" {
		parsed, parseErr := time.Parse(time.RFC3339, req.PeriodStart)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: period_start must be RFC3339", ErrInvalidInput)
		}
		periodStart = parsed
	}

	var periodEnd *time.Time
	if req.PeriodEnd != "" {
		parsed, parseErr := time.Parse(time.RFC3339, req.PeriodEnd)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: period_end must be RFC3339", ErrInvalidInput)
		}
		periodEnd = &parsed
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	grant := model.Grant{
		Grantor:     req.Grantor,
		Amount:      amount,
		Currency:    currency,
		Status:      model.GrantApplied,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Notes:       req.Notes,
	}

	if req.ProjectID != "" {
		projectID, err := s.resolveProject(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
		grant.ProjectID = projectID
	}

	if err := s.db.WithContext(ctx).Create(&grant).Error; err != nil {
		return nil, fmt.Errorf("failed to create grant: %w", err)
	}

	resp := toGrantResponse(grant)
	return &resp, nil
}

func (s *fundingService) UpdateGrant(ctx context.Context, id string, req UpdateGrantRequest) (*GrantResponse, error) {
	grantID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid grant id", ErrInvalidInput)
	}

	var grant model.Grant
	if err := s.db.WithContext(ctx).First(&grant, "id = ?", grantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: grant", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	grant.Status = req.Status
	if req.Notes != "" {
		grant.Notes = req.Notes
	}

	if err := s.db.WithContext(ctx).Save(&grant).Error; err != nil {
		return nil, fmt.Errorf("failed to update grant: %w", err)
	}

	resp := toGrantResponse(grant)
	return &resp, nil
}

func (s *fundingService) DeleteGrant(ctx context.Context, id string) error {
	grantID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid grant id", ErrInvalidInput)
	}

	result := s.db.WithContext(ctx).Where("id = ?", grantID).Delete(&model.Grant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: grant", ErrNotFound)
	}
	return nil
}

func (s *fundingService) ListPartners(ctx context.Context) ([]PartnerResponse, error) {
	var partners []model.Partner
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&partners).Error; err != nil {
		return nil, err
	}

	res := make([]PartnerResponse, 0, len(partners))
	for _, p := range partners {
		res = append(res, PartnerResponse{
			ID:           p.ID.String(),
			Name:         p.Name,
			Type:         p.Type,
			ContactEmail: p.ContactEmail,
			ContactPhone: p.ContactPhone,
		})
	}
	return res, nil
}

func (s *fundingService) CreatePartner(ctx context.Context, req CreatePartnerRequest) (*PartnerResponse, error) {
	var existing model.Partner
	if err := s.db.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: partner %q", ErrDuplicate, req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	partner := model.Partner{
		Name:         req.Name,
		Type:         req.Type,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if err := s.db.WithContext(ctx).Create(&partner).Error; err != nil {
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}

	return &PartnerResponse{
		ID:           partner.ID.String(),
		Name:         partner.Name,
		Type:         partner.Type,
		ContactEmail: partner.ContactEmail,
		ContactPhone: partner.ContactPhone,
	}, nil
}

func (s *fundingService) DeletePartner(ctx context.Context, id string) error {
	partnerID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid partner id", ErrInvalidInput)
	}

	result := s.db.WithContext(ctx).Where("id = ?", partnerID).Delete(&model.Partner{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: partner", ErrNotFound)
	}
	return nil
}

// Summary folds donation and grant amounts for the finance overview cards
func (s *fundingService) Summary(ctx context.Context) (*FundingSummary, error) {
	var donations []model.Donation
	if err := s.db.WithContext(ctx).Find(&donations).Error; err != nil {
		return nil, err
	}

	var grants []model.Grant
	if err := s.db.WithContext(ctx).Find(&grants).Error; err != nil {
		return nil, err
	}

	donated := decimal.Zero
	for _, d := range donations {
		donated = donated.Add(d.Amount)
	}

	awarded := decimal.Zero
	disbursed := decimal.Zero
	for _, g := range grants {
		switch g.Status {
		case model.GrantAwarded:
			awarded = awarded.Add(g.Amount)
		case model.GrantDisbursed, model.GrantClosed:
			disbursed = disbursed.Add(g.Amount)
		}
	}

	return &FundingSummary{
		TotalDonations:  len(donations),
		DonatedAmount:   donated.StringFixed(2),
		TotalGrants:     len(grants),
		AwardedAmount:   awarded.StringFixed(2),
		DisbursedAmount: disbursed.StringFixed(2),
	}, nil
}

func (s *fundingService) resolveProject(ctx context.Context, id string) (*uuid.UUID, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid project id", ErrInvalidInput)
	}
	var project model.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &projectID, nil
}
