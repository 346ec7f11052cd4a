package service

import (
	"context"

	"github.com/adlift/ad-aggregator/internal/entity"
)

//go:generate mockgen -source=contracts.go -destination=mock_contracts.go -package=service

// Fetcher — порт для загрузки сырого ответа по одному рекламодателю.
type Fetcher interface {
	Fetch(ctx context.Context, advertiserID int64) ([]byte, error)
}

// Sink — порт-подписчик на готовый агрегированный отчёт.
type Sink interface {
	Publish(ctx context.Context, report entity.Report) error
}
