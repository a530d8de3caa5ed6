package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"angaza/internal/model"
	"angaza/internal/repository"
	ws "angaza/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs
type CreateResourceRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Quantity  int    `json:"quantity" binding:"min=0"`
	Unit      string `json:"unit" binding:"required"`
	UnitValue string `json:"unit_value" binding:"required"` // Decimal string
}

type UpdateResourceRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"omitempty,min=0"`
	Unit      string `json:"unit" binding:"required"`
	UnitValue string `json:"unit_value" binding:"required"`
}

type ResourceResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	UnitValue string `json:"unit_value"`
	CreatedAt string `json:"created_at"`
}

type RecordDistributionRequest struct {
	ResourceID string `json:"resource_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	Recipient  string `json:"recipient" binding:"required"`
	Location   string `json:"location"`
	Notes      string `json:"notes"`
	Date       string `json:"date"` // RFC3339, defaults to now
}

type UpdateDistributionRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed cancelled"`
}

type DistributionResponse struct {
	ID            string `json:"id"`
	ResourceID    string `json:"resource_id"`
	ResourceName  string `json:"resource_name"`
	Quantity      int    `json:"quantity"`
	UnitValue     string `json:"unit_value"`
	TotalValue    string `json:"total_value"`
	Recipient     string `json:"recipient"`
	Location      string `json:"location"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
	DistributedAt string `json:"distributed_at"`
}

// Websocket payload
type InventoryEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// InventoryService keeps resource stock consistent with recorded
// distributions. Every stock mutation runs inside a single transaction with
// the resource row locked, so quantity can never be driven below zero by
// concurrent requests.
type InventoryService interface {
	ListResources(ctx context.Context, page, limit int, search string) ([]ResourceResponse, int64, error)
	GetResource(ctx context.Context, id string) (*ResourceResponse, error)
	CreateResource(ctx context.Context, userID string, req CreateResourceRequest) (*ResourceResponse, error)
	UpdateResource(ctx context.Context, userID string, id string, req UpdateResourceRequest) (*ResourceResponse, error)
	DeleteResource(ctx context.Context, userID string, id string) error
	LowStock(ctx context.Context, threshold int) ([]ResourceResponse, error)
	OutOfStock(ctx context.Context) ([]ResourceResponse, error)

	RecordDistribution(ctx context.Context, userID string, req RecordDistributionRequest) (*DistributionResponse, error)
	ListDistributions(ctx context.Context, page, limit int, category string) ([]DistributionResponse, int64, error)
	GetDistribution(ctx context.Context, id string) (*DistributionResponse, error)
	UpdateDistributionStatus(ctx context.Context, userID string, id string, req UpdateDistributionRequest) (*DistributionResponse, error)
	DeleteDistribution(ctx context.Context, userID string, id string) error
}

type inventoryService struct {
	resourceRepo     repository.ResourceRepository
	distributionRepo repository.DistributionRepository
	movementRepo     repository.StockMovementRepository
	auditRepo        repository.AuditRepository
	txManager        repository.TransactionManager
	hub              *ws.Hub
}

func NewInventoryService(
	resourceRepo repository.ResourceRepository,
	distributionRepo repository.DistributionRepository,
	movementRepo repository.StockMovementRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		resourceRepo:     resourceRepo,
		distributionRepo: distributionRepo,
		movementRepo:     movementRepo,
		auditRepo:        auditRepo,
		txManager:        txManager,
		hub:              hub,
	}
}

func toResourceResponse(r *model.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:        r.ID.String(),
		Name:      r.Name,
		Category:  r.Category,
		Quantity:  r.Quantity,
		Unit:      r.Unit,
		UnitValue: r.UnitValue.StringFixed(2),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

func toDistributionResponse(d *model.Distribution) *DistributionResponse {
	return &DistributionResponse{
		ID:            d.ID.String(),
		ResourceID:    d.ResourceID.String(),
		ResourceName:  d.ResourceName,
		Quantity:      d.Quantity,
		UnitValue:     d.UnitValue.StringFixed(2),
		TotalValue:    d.TotalValue.StringFixed(2),
		Recipient:     d.Recipient,
		Location:      d.Location,
		Notes:         d.Notes,
		Status:        d.Status,
		DistributedAt: d.DistributedAt.Format(time.RFC3339),
	}
}

func (s *inventoryService) ListResources(ctx context.Context, page, limit int, search string) ([]ResourceResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	resources, total, err := s.resourceRepo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, err
	}

	res := make([]ResourceResponse, 0, len(resources))
	for i := range resources {
		res = append(res, *toResourceResponse(&resources[i]))
	}
	return res, total, nil
}

func (s *inventoryService) GetResource(ctx context.Context, id string) (*ResourceResponse, error) {
	resourceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid resource id", ErrInvalidInput)
	}

	resource, err := s.resourceRepo.FindByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: resource", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return toResourceResponse(resource), nil
}

func (s *inventoryService) CreateResource(ctx context.Context, userID string, req CreateResourceRequest) (*ResourceResponse, error) {
	unitValue, err := decimal.NewFromString(req.UnitValue)
	if err != nil || unitValue.IsNegative() {
		return nil, fmt.Errorf("%w: unit_value must be a non-negative decimal", ErrInvalidInput)
	}

	resource := model.Resource{
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		UnitValue: unitValue,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.resourceRepo.Create(txCtx, &resource); err != nil {
			return fmt.Errorf("failed to create resource: %w", err)
		}

		if resource.Quantity > 0 {
			movement := &model.StockMovement{
				ResourceID:    resource.ID,
				Direction:     model.StockIn,
				QuantityMoved: resource.Quantity,
				StockAfter:    resource.Quantity,
			}
			if err := s.movementRepo.Create(txCtx, movement); err != nil {
				return fmt.Errorf("failed to record stock movement: %w", err)
			}
		}

		return s.writeAudit(txCtx, userID, model.ActionCreateResource, resource.ID.String(), resource.Name, req)
	})
	if err != nil {
		return nil, err
	}

	return toResourceResponse(&resource), nil
}

func (s *inventoryService) UpdateResource(ctx context.Context, userID string, id string, req UpdateResourceRequest) (*ResourceResponse, error) {
	resourceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid resource id", ErrInvalidInput)
	}

	unitValue, err := decimal.NewFromString(req.UnitValue)
	if err != nil || unitValue.IsNegative() {
		return nil, fmt.Errorf("%w: unit_value must be a non-negative decimal", ErrInvalidInput)
	}

	var updated *model.Resource
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		resource, findErr := s.resourceRepo.FindByIDForUpdate(txCtx, resourceID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: resource", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", findErr)
		}

		resource.Name = req.Name
		resource.Category = req.Category
		resource.Unit = req.Unit
		resource.UnitValue = unitValue

		// Administrative stock correction; recorded in the movement ledger
		if req.Quantity != nil && *req.Quantity != resource.Quantity {
			diff := *req.Quantity - resource.Quantity
			direction := model.StockIn
			if diff < 0 {
				direction = model.StockOut
				diff = -diff
			}
			resource.Quantity = *req.Quantity
			movement := &model.StockMovement{
				ResourceID:    resource.ID,
				Direction:     direction,
				QuantityMoved: diff,
				StockAfter:    resource.Quantity,
			}
			if err := s.movementRepo.Create(txCtx, movement); err != nil {
				return fmt.Errorf("failed to record stock movement: %w", err)
			}
		}

		if err := s.resourceRepo.Update(txCtx, resource); err != nil {
			return fmt.Errorf("failed to update resource: %w", err)
		}

		updated = resource
		return s.writeAudit(txCtx, userID, model.ActionUpdateResource, resource.ID.String(), resource.Name, req)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("resource.updated", map[string]interface{}{
		"resource_id": updated.ID.String(),
		"quantity":    updated.Quantity,
	})

	return toResourceResponse(updated), nil
}

func (s *inventoryService) DeleteResource(ctx context.Context, userID string, id string) error {
	resourceID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid resource id", ErrInvalidInput)
	}

	resource, err := s.resourceRepo.FindByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: resource", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.resourceRepo.Delete(txCtx, resourceID); err != nil {
			return fmt.Errorf("failed to delete resource: %w", err)
		}
		return s.writeAudit(txCtx, userID, model.ActionDeleteResource, resource.ID.String(), resource.Name, map[string]bool{"deleted": true})
	})
}

func (s *inventoryService) LowStock(ctx context.Context, threshold int) ([]ResourceResponse, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: threshold must be positive", ErrInvalidInput)
	}

	resources, err := s.resourceRepo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}

	res := make([]ResourceResponse, 0, len(resources))
	for i := range resources {
		res = append(res, *toResourceResponse(&resources[i]))
	}
	return res, nil
}

func (s *inventoryService) OutOfStock(ctx context.Context) ([]ResourceResponse, error) {
	resources, err := s.resourceRepo.FindOutOfStock(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]ResourceResponse, 0, len(resources))
	for i := range resources {
		res = append(res, *toResourceResponse(&resources[i]))
	}
	return res, nil
}

// RecordDistribution creates the distribution and decrements stock as one
// atomic unit. The resource row is locked before the quantity check, so a
// concurrent request sees the committed stock and fails with
// ErrInsufficientStock instead of over-allocating.
func (s *inventoryService) RecordDistribution(ctx context.Context, userID string, req RecordDistributionRequest) (*DistributionResponse, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidInput)
	}

	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid resource id", ErrInvalidInput)
	}

	distributedAt := time.Now()
	if req.Date != "" {
		parsed, parseErr := time.Parse(time.RFC3339, req.Date)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: date must be RFC3339", ErrInvalidInput)
		}
		distributedAt = parsed
	}

	var distribution model.Distribution
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		resource, findErr := s.resourceRepo.FindByIDForUpdate(txCtx, resourceID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: resource", ErrNotFound)
			}
			return fmt.Errorf("failed to load resource: %w", findErr)
		}

		if req.Quantity > resource.Quantity {
			return fmt.Errorf("%w: requested %d of %q but only %d in stock",
				ErrInsufficientStock, req.Quantity, resource.Name, resource.Quantity)
		}

		distribution = model.Distribution{
			ResourceID:    resource.ID,
			ResourceName:  resource.Name,
			Quantity:      req.Quantity,
			UnitValue:     resource.UnitValue,
			TotalValue:    resource.UnitValue.Mul(decimal.NewFromInt(int64(req.Quantity))),
			Recipient:     req.Recipient,
			Location:      req.Location,
			Notes:         req.Notes,
			Status:        model.DistributionPending,
			DistributedAt: distributedAt,
		}
		if err := s.distributionRepo.Create(txCtx, &distribution); err != nil {
			return fmt.Errorf("failed to create distribution: %w", err)
		}

		newQuantity := resource.Quantity - req.Quantity
		if err := s.resourceRepo.UpdateQuantity(txCtx, resource.ID, newQuantity); err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		movement := &model.StockMovement{
			ResourceID:     resource.ID,
			DistributionID: &distribution.ID,
			Direction:      model.StockOut,
			QuantityMoved:  req.Quantity,
			StockAfter:     newQuantity,
		}
		if err := s.movementRepo.Create(txCtx, movement); err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}

		return s.writeAudit(txCtx, userID, model.ActionRecordDistribution, distribution.ID.String(), resource.Name, req)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("distribution.recorded", map[string]interface{}{
		"distribution_id": distribution.ID.String(),
		"resource_id":     distribution.ResourceID.String(),
		"quantity":        distribution.Quantity,
	})

	return toDistributionResponse(&distribution), nil
}

func (s *inventoryService) ListDistributions(ctx context.Context, page, limit int, category string) ([]DistributionResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	distributions, total, err := s.distributionRepo.List(ctx, page, limit, category)
	if err != nil {
		return nil, 0, err
	}

	res := make([]DistributionResponse, 0, len(distributions))
	for i := range distributions {
		res = append(res, *toDistributionResponse(&distributions[i]))
	}
	return res, total, nil
}

func (s *inventoryService) GetDistribution(ctx context.Context, id string) (*DistributionResponse, error) {
	distributionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid distribution id", ErrInvalidInput)
	}

	distribution, err := s.distributionRepo.FindByID(ctx, distributionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: distribution", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return toDistributionResponse(distribution), nil
}

// UpdateDistributionStatus transitions pending distributions to completed or
// cancelled. Cancelling returns the quantity to stock in the same transaction.
func (s *inventoryService) UpdateDistributionStatus(ctx context.Context, userID string, id string, req UpdateDistributionRequest) (*DistributionResponse, error) {
	distributionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid distribution id", ErrInvalidInput)
	}

	var updated *model.Distribution
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		distribution, findErr := s.distributionRepo.FindByID(txCtx, distributionID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: distribution", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", findErr)
		}

		if distribution.Status == req.Status {
			updated = distribution
			return nil
		}
		if distribution.Status != model.DistributionPending {
			return fmt.Errorf("%w: only pending distributions can change status", ErrInvalidInput)
		}

		if req.Status == model.DistributionCancelled {
			if err := s.restock(txCtx, distribution); err != nil {
				return err
			}
		}

		distribution.Status = req.Status
		if err := s.distributionRepo.Update(txCtx, distribution); err != nil {
			return fmt.Errorf("failed to update distribution: %w", err)
		}

		updated = distribution
		return s.writeAudit(txCtx, userID, model.ActionUpdateDistribution, distribution.ID.String(), distribution.ResourceName, req)
	})
	if err != nil {
		return nil, err
	}

	return toDistributionResponse(updated), nil
}

// DeleteDistribution removes a distribution record. A pending record has its
// quantity returned to stock first; a completed one is immutable history.
func (s *inventoryService) DeleteDistribution(ctx context.Context, userID string, id string) error {
	distributionID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid distribution id", ErrInvalidInput)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		distribution, findErr := s.distributionRepo.FindByID(txCtx, distributionID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: distribution", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", findErr)
		}

		if distribution.Status == model.DistributionCompleted {
			return fmt.Errorf("%w: completed distributions cannot be deleted", ErrInvalidInput)
		}

		if distribution.Status == model.DistributionPending {
			if err := s.restock(txCtx, distribution); err != nil {
				return err
			}
		}

		if err := s.distributionRepo.Delete(txCtx, distributionID); err != nil {
			return fmt.Errorf("failed to delete distribution: %w", err)
		}

		return s.writeAudit(txCtx, userID, model.ActionDeleteDistribution, distribution.ID.String(), distribution.ResourceName, map[string]bool{"deleted": true})
	})
}

// restock returns a distribution's quantity to its resource under a row lock
func (s *inventoryService) restock(txCtx context.Context, distribution *model.Distribution) error {
	resource, err := s.resourceRepo.FindByIDForUpdate(txCtx, distribution.ResourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: resource", ErrNotFound)
		}
		return fmt.Errorf("failed to load resource: %w", err)
	}

	newQuantity := resource.Quantity + distribution.Quantity
	if err := s.resourceRepo.UpdateQuantity(txCtx, resource.ID, newQuantity); err != nil {
		return fmt.Errorf("failed to restock: %w", err)
	}

	movement := &model.StockMovement{
		ResourceID:     resource.ID,
		DistributionID: &distribution.ID,
		Direction:      model.StockIn,
		QuantityMoved:  distribution.Quantity,
		StockAfter:     newQuantity,
	}
	if err := s.movementRepo.Create(txCtx, movement); err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}
	return nil
}

func (s *inventoryService) writeAudit(txCtx context.Context, userID, action, entityID, entityName string, payload interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	details, _ := json.Marshal(payload)
	audit := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(txCtx, audit); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *inventoryService) broadcast(event string, data map[string]interface{}) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(InventoryEvent{Event: event, Data: data})
	if err != nil {
		return
	}
	s.hub.Broadcast <- payload
}
