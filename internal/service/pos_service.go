package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrInvalidReceipt indicates a POS payload without its idempotency key.
var ErrInvalidReceipt = errors.New("service: pos receipt requires device id and receipt no")

// POSService ingests receipts from point-of-sale devices. Replays of the
// same (device, receipt) pair return the stored record unchanged.
type POSService struct {
	pos repository.PosRepository
}

func NewPOSService(pos repository.PosRepository) *POSService {
	return &POSService{pos: pos}
}

// SyncSale stores an incoming receipt. POS devices retry aggressively, so
// a duplicate is answered with the existing record rather than an error.
func (s *POSService) SyncSale(ctx context.Context, sale *domain.PosSale) (*domain.PosSale, error) {
	if sale.DeviceID == "" || sale.ReceiptNo == "" {
		return nil, ErrInvalidReceipt
	}

	existing, err := s.pos.GetSaleByReceipt(ctx, sale.DeviceID, sale.ReceiptNo)
	if err == nil {
		log.Info().Str("device", sale.DeviceID).Str("receipt", sale.ReceiptNo).
			Msg("pos sale replayed, returning existing record")
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	sale.Status = "PENDING"
	sale.SyncRef = uuid.NewString()
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}

	if err := s.pos.InsertPosSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to sync pos sale: %w", err)
	}

	return sale, nil
}

// RecordZReport stores an end-of-day summary from a device.
func (s *POSService) RecordZReport(ctx context.Context, report *domain.PosZReport) (int64, error) {
	if report.DeviceID == "" || report.ZNo == "" {
		return 0, ErrInvalidReceipt
	}

	id, err := s.pos.InsertZReport(ctx, report)
	if err != nil {
		return 0, err
	}

	log.Info().Str("device", report.DeviceID).Str("z_no", report.ZNo).
		Msg("z-report recorded")
	return id, nil
}
