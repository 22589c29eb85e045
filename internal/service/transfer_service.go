package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/repository"
	"github.com/retailpulse/backend/internal/transfer"
	"github.com/rs/zerolog/log"
)

// ErrInvalidTransfer indicates a malformed apply/reject payload.
var ErrInvalidTransfer = errors.New("service: invalid transfer request")

// TransferService runs the recommendation engine over fresh snapshots and
// owns the write side of accepted and rejected recommendations.
type TransferService struct {
	stores             repository.StoreRepository
	inventory          repository.InventoryRepository
	transfers          repository.TransferRepository
	maxTruckCapacity   int
	defaultSafetyStock int
}

func NewTransferService(
	stores repository.StoreRepository,
	inventory repository.InventoryRepository,
	transfers repository.TransferRepository,
	maxTruckCapacity int,
	defaultSafetyStock int,
) *TransferService {
	if maxTruckCapacity <= 0 {
		maxTruckCapacity = transfer.DefaultMaxTruckCapacity
	}
	if defaultSafetyStock <= 0 {
		defaultSafetyStock = 10
	}
	return &TransferService{
		stores:             stores,
		inventory:          inventory,
		transfers:          transfers,
		maxTruckCapacity:   maxTruckCapacity,
		defaultSafetyStock: defaultSafetyStock,
	}
}

// Recommendations recomputes transfer suggestions from the current
// inventory snapshot. Nothing is persisted; each call starts fresh.
func (s *TransferService) Recommendations(ctx context.Context) ([]domain.TransferRecommendation, error) {
	stores, err := s.stores.ListStoresWithInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}

	recs, err := transfer.Recommend(stores, s.maxTruckCapacity)
	if err != nil {
		return nil, err
	}

	log.Info().Int("stores", len(stores)).Int("recommendations", len(recs)).
		Msg("transfer recommendations computed")
	return recs, nil
}

// Apply executes an accepted recommendation: one atomic decrement of the
// donor line and increment of the recipient line.
func (s *TransferService) Apply(ctx context.Context, req domain.TransferRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransfer)
	}
	if req.SourceStoreID == req.TargetStoreID {
		return fmt.Errorf("%w: source and target must differ", ErrInvalidTransfer)
	}

	if _, err := s.stores.GetStore(ctx, req.SourceStoreID); err != nil {
		return fmt.Errorf("source store: %w", err)
	}
	if _, err := s.stores.GetStore(ctx, req.TargetStoreID); err != nil {
		return fmt.Errorf("target store: %w", err)
	}

	if err := s.inventory.ApplyTransfer(ctx, req, s.defaultSafetyStock); err != nil {
		return err
	}

	log.Info().
		Int64("source", req.SourceStoreID).
		Int64("target", req.TargetStoreID).
		Int64("product", req.ProductID).
		Int("amount", req.Amount).
		Msg("transfer applied")
	return nil
}

// Reject records why a recommendation was declined and bumps the route's
// penalty counter. Returns the new penalty score.
func (s *TransferService) Reject(ctx context.Context, req domain.RejectionRequest) (int, error) {
	if req.SourceStoreID == 0 || req.TargetStoreID == 0 || req.ProductID == 0 {
		return 0, fmt.Errorf("%w: source, target and product are required", ErrInvalidTransfer)
	}

	rejection := &domain.TransferRejection{
		SourceStoreID: req.SourceStoreID,
		TargetStoreID: req.TargetStoreID,
		ProductID:     req.ProductID,
		Reason:        req.Reason,
	}
	if err := s.transfers.InsertRejection(ctx, rejection); err != nil {
		return 0, err
	}

	score, err := s.transfers.IncrementRoutePenalty(ctx, req.SourceStoreID, req.TargetStoreID)
	if err != nil {
		return 0, err
	}

	log.Info().
		Int64("source", req.SourceStoreID).
		Int64("target", req.TargetStoreID).
		Int("penalty_score", score).
		Msg("transfer rejected, route penalized")
	return score, nil
}
