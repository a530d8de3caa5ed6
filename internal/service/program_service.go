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

type CreateProgramRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ProgramResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateProjectRequest struct {
	Name         string `json:"name" binding:"required"`
	ProgramID    string `json:"program_id"`
	DepartmentID string `json:"department_id"`
	Budget       string `json:"budget"` // Decimal string
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

type UpdateProjectRequest struct {
	Name    string `json:"name"`
	Status  string `json:"status" binding:"omitempty,oneof=planned active completed on_hold"`
	Budget  string `json:"budget"`
	EndDate string `json:"end_date"`
}

type ProjectResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProgramID      string `json:"program_id,omitempty"`
	ProgramName    string `json:"program_name,omitempty"`
	DepartmentID   string `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	Budget         string `json:"budget"`
	Status         string `json:"status"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date,omitempty"`
}

// --- Interface ---

type ProgramService interface {
	ListPrograms(ctx context.Context) ([]ProgramResponse, error)
	CreateProgram(ctx context.Context, req CreateProgramRequest) (*ProgramResponse, error)

	ListProjects(ctx context.Context, page, limit int) ([]ProjectResponse, int64, error)
	CreateProject(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error)
	UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*ProjectResponse, error)
	DeleteProject(ctx context.Context, id string) error
}

type programService struct {
	db *gorm.DB
}

func NewProgramService(db *gorm.DB) ProgramService {
	return &programService{db: db}
}

// --- Implementation ---

func toProjectResponse(p model.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Budget:    p.Budget.StringFixed(2),
		Status:    p.Status,
		StartDate: p.StartDate.Format(time.RFC3339),
	}
	if p.ProgramID != nil {
		resp.ProgramID = p.ProgramID.String()
	}
	if p.Program != nil {
		resp.ProgramName = p.Program.Name
	}
	if p.DepartmentID != nil {
		resp.DepartmentID = p.DepartmentID.String()
	}
	if p.Department != nil {
		resp.DepartmentName = p.Department.Name
	}
	if p.EndDate != nil {
		resp.EndDate = p.EndDate.Format(time.RFC3339)
	}
	return resp
}

func (s *programService) ListPrograms(ctx context.Context) ([]ProgramResponse, error) {
	var programs []model.Program
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&programs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch programs: %w", err)
	}

	res := make([]ProgramResponse, 0, len(programs))
	for _, p := range programs {
		res = append(res, ProgramResponse{
			ID:          p.ID.String(),
			Name:        p.Name,
			Description: p.Description,
		})
	}
	return res, nil
}

func (s *programService) CreateProgram(ctx context.Context, req CreateProgramRequest) (*ProgramResponse, error) {
	var existing model.Program
	if err := s.db.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: program %q", ErrDuplicate, req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	program := model.Program{Name: req.Name, Description: req.Description}
	if err := s.db.WithContext(ctx).Create(&program).Error; err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}

	return &ProgramResponse{
		ID:          program.ID.String(),
		Name:        program.Name,
		Description: program.Description,
	}, nil
}

func (s *programService) ListProjects(ctx context.Context, page, limit int) ([]ProjectResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var projects []model.Project
	var total int64

	if err := s.db.WithContext(ctx).Model(&model.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := s.db.WithContext(ctx).Preload("Program").Preload("Department").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	res := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		res = append(res, toProjectResponse(p))
	}
	return res, total, nil
}

func (s *programService) CreateProject(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	budget := decimal.Zero
	if req.Budget != "" {
		parsed, err := decimal.NewFromString(req.Budget)
		if err != nil || parsed.IsNegative() {
			return nil, fmt.Errorf("%w: budget must be a non-negative decimal", ErrInvalidInput)
		}
		budget = parsed
	}

	startDate := time.Now()
	if req.StartDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date must be RFC3339", ErrInvalidInput)
		}
		startDate = parsed
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date must be RFC3339", ErrInvalidInput)
		}
		endDate = &parsed
	}

	project := model.Project{
		Name:      req.Name,
		Budget:    budget,
		Status:    model.ProjectPlanned,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if req.ProgramID != "" {
		programID, err := uuid.Parse(req.ProgramID)
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
		project.ProgramID = &programID
	}

	if req.DepartmentID != "" {
		departmentID, err := uuid.Parse(req.DepartmentID)
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
		project.DepartmentID = &departmentID
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *programService) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*ProjectResponse, error) {
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

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.Budget != "" {
		parsed, err := decimal.NewFromString(req.Budget)
		if err != nil || parsed.IsNegative() {
			return nil, fmt.Errorf("%w: budget must be a non-negative decimal", ErrInvalidInput)
		}
		project.Budget = parsed
	}
	if req.EndDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date must be RFC3339", ErrInvalidInput)
		}
		project.EndDate = &parsed
	}

	if err := s.db.WithContext(ctx).Save(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *programService) DeleteProject(ctx context.Context, id string) error {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid project id", ErrInvalidInput)
	}

	result := s.db.WithContext(ctx).Where("id = ?", projectID).Delete(&model.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: project", ErrNotFound)
	}
	return nil
}
