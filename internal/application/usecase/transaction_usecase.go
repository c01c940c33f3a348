package usecase

import (
	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// TransactionUseCase superficie de consulta del libro de auditoría.
// El registro de transacciones vive en el motor (application/inventory);
// aquí solo hay lecturas.
type TransactionUseCase struct {
	repo repository.TransactionRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// GetByID obtiene una transacción por ID, con producto y usuario anidados
// (null si fueron eliminados).
func (uc *TransactionUseCase) GetByID(id string) (*dto.TransactionResponse, error) {
	tx, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, nil
	}
	return ToTransactionResponse(tx), nil
}

// List lista transacciones, más recientes primero.
func (uc *TransactionUseCase) List(limit, offset int) (*dto.TransactionListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, *ToTransactionResponse(tx))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByProduct lista el historial de un producto, más reciente primero.
// Tolera productos ya eliminados: el historial se conserva igual.
func (uc *TransactionUseCase) ListByProduct(productID string) ([]dto.TransactionResponse, error) {
	list, err := uc.repo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, *ToTransactionResponse(tx))
	}
	return items, nil
}

// ToTransactionResponse mapea la entidad a su DTO de salida. Product y User
// nulos se renderizan como null, no como error.
func ToTransactionResponse(tx *entity.Transaction) *dto.TransactionResponse {
	if tx == nil {
		return nil
	}
	resp := &dto.TransactionResponse{
		ID:        tx.ID,
		Action:    tx.Action,
		Quantity:  tx.Quantity,
		Notes:     tx.Notes,
		Timestamp: tx.Timestamp,
	}
	if tx.Product != nil {
		resp.Product = &dto.TransactionProductRef{
			ID:   tx.Product.ID,
			Name: tx.Product.Name,
			SKU:  tx.Product.SKU,
		}
	}
	if tx.User != nil {
		resp.User = &dto.TransactionUserRef{
			ID:       tx.User.ID,
			Username: tx.User.Username,
			Role:     tx.User.Role,
		}
	}
	return resp
}
