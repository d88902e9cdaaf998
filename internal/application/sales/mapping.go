package sales

import (
	"sort"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func toItemResponse(it *entity.TransactionItem) *dto.TransactionItemResponse {
	return &dto.TransactionItemResponse{
		ID:            it.ID,
		TransactionID: it.TransactionID,
		ProductID:     it.ProductID,
		ProductName:   it.ProductName,
		Quantity:      it.Quantity,
		UnitPrice:     it.UnitPrice,
		TotalPrice:    it.TotalPrice,
		CreatedAt:     it.CreatedAt,
	}
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		UserName:        t.UserName,
		TotalAmount:     t.TotalAmount,
		PaymentMethod:   t.PaymentMethod,
		TransactionDate: t.TransactionDate,
		CustomerName:    t.CustomerName,
		CustomerPhone:   t.CustomerPhone,
		TableNumber:     t.TableNumber,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// lockOrder ids únicos ordenados; todos los bloqueos de filas del mismo tipo siguen este orden.
func lockOrder(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
