package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"tourly/infras/otel"
	"tourly/internal/domains/tour/model"
	gDto "tourly/shared/dto"
	"tourly/shared/gateway"

	supa "github.com/supabase-community/supabase-go"
)

type Tour interface {
	Insert(ctx context.Context, model model.Tour) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Tour, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Tour, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gateway.Repository[model.Tour]
	otel otel.Otel
}

func New(client *supa.Client, otel otel.Otel) Tour {
	return &repositoryImpl{
		Repository: gateway.NewRepository[model.Tour](model.EntityName, model.TableName, model.FieldID, client, otel),
		otel:       otel,
	}
}
