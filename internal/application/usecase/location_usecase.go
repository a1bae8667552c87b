package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/crisvega-dev/imprenta-stock/internal/application/dto"
	"github.com/crisvega-dev/imprenta-stock/internal/domain"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones. Lee la distribución
// para la vista de detalle, pero jamás la escribe.
type LocationUseCase struct {
	repo      repository.LocationRepository
	stockRepo repository.LotLocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, stockRepo repository.LotLocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, stockRepo: stockRepo}
}

// Create crea una ubicación.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if !entity.ValidLocationType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// GetByID obtiene una ubicación con sus filas de distribución (lotes presentes).
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationDetailResponse, error) {
	loc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	rows, err := uc.stockRepo.ListByLocation(id)
	if err != nil {
		return nil, err
	}
	stock := make([]dto.LocationStockRow, 0, len(rows))
	for _, r := range rows {
		stock = append(stock, dto.LocationStockRow{
			LotID:           r.LotID,
			Quantity:        r.Quantity,
			MinimumQuantity: r.MinimumQuantity,
			UpdatedAt:       r.UpdatedAt,
		})
	}
	return &dto.LocationDetailResponse{
		LocationResponse: *toLocationResponse(loc),
		Stock:            stock,
	}, nil
}

// Update actualiza una ubicación.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	if in.Name != nil {
		loc.Name = *in.Name
	}
	if in.Type != nil {
		if !entity.ValidLocationType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		loc.Type = *in.Type
	}
	loc.UpdatedAt = time.Now()
	if err := uc.repo.Update(loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// List lista ubicaciones, opcionalmente filtradas por tipo.
func (uc *LocationUseCase) List(locationType string, limit, offset int) (*dto.LocationListResponse, error) {
	if locationType != "" && !entity.ValidLocationType(locationType) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(locationType, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una ubicación por ID.
func (uc *LocationUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Type:      l.Type,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
