package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"tourly/infras/otel"
	"tourly/internal/domains/booking/model"
	gDto "tourly/shared/dto"
	"tourly/shared/gateway"

	supa "github.com/supabase-community/supabase-go"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

// Archive writes booking snapshots into the backup table. It has no update
// or delete surface: archived rows are immutable.
type Archive interface {
	InsertBulk(ctx context.Context, models []model.ArchivedBooking) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ArchivedBooking, error)
}

type repositoryImpl struct {
	gateway.Repository[model.Booking]
	otel otel.Otel
}

func New(client *supa.Client, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gateway.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, client, otel),
		otel:       otel,
	}
}

type archiveImpl struct {
	gateway.Repository[model.ArchivedBooking]
	otel otel.Otel
}

func NewArchive(client *supa.Client, otel otel.Otel) Archive {
	return &archiveImpl{
		Repository: gateway.NewRepository[model.ArchivedBooking](model.ArchiveEntity, model.ArchiveTableName, model.FieldID, client, otel),
		otel:       otel,
	}
}
