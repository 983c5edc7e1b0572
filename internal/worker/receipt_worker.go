package worker

import (
	"context"
	"fmt"

	"github.com/IAmPiHi/StockSystem/internal/infra"
	"github.com/IAmPiHi/StockSystem/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptWorker renders a PDF receipt for a committed sale.
type ReceiptWorker struct {
	sales       repository.SaleRepository
	storagePath string
}

func NewReceiptWorker(sales repository.SaleRepository, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{sales: sales, storagePath: storagePath}
}

func (w *ReceiptWorker) Process(ctx context.Context, job ReceiptJob) error {
	id, err := uuid.Parse(job.SaleID)
	if err != nil {
		return fmt.Errorf("receipt job: bad sale id %q: %w", job.SaleID, err)
	}
	sale, err := w.sales.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("receipt job: load sale: %w", err)
	}

	path, err := infra.GenerateReceiptPDF(sale, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("sale_id", job.SaleID).Str("path", path).Msg("receipt generated")
	return nil
}
