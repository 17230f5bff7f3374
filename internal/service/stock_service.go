package service

import (
	"context"
	"errors"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockService interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.StockResponse, error)
	Search(ctx context.Context, filter dto.StockFilter) (*dto.Pageable[dto.StockResponse], error)
}

type stockService struct {
	stocks repository.StockRepository
}

func NewStockService(stocks repository.StockRepository) StockService {
	return &stockService{stocks: stocks}
}

func (s *stockService) Get(ctx context.Context, id uuid.UUID) (*dto.StockResponse, error) {
	lot, err := s.stocks.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("stock not found")
	}
	if err != nil {
		return nil, err
	}
	resp := toStockResponse(lot)
	return &resp, nil
}

func (s *stockService) Search(ctx context.Context, filter dto.StockFilter) (*dto.Pageable[dto.StockResponse], error) {
	lots, total, err := s.stocks.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockResponse, 0, len(lots))
	for i := range lots {
		data = append(data, toStockResponse(&lots[i]))
	}
	return dto.NewPageable(data, filter.Page, filter.Size, total), nil
}
