package service

import (
	"context"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/repository"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/settlement"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
)

// resolveItens turns requested product lines into priced comanda items,
// looking prices up in the catalog so clients cannot set their own.
func resolveItens(ctx context.Context, products repository.ProductRepository, reqs []models.ItemRequest) ([]models.ComandaItem, error) {
	itens := make([]models.ComandaItem, 0, len(reqs))
	for _, req := range reqs {
		p, err := products.GetByID(ctx, req.ProductID)
		if err == apperrors.ErrNotFound {
			return nil, apperrors.NewValidationError("itens", "produto não encontrado: "+req.ProductID)
		}
		if err != nil {
			return nil, err
		}
		itens = append(itens, models.ComandaItem{
			ProductID: p.ID,
			Nome:      p.Nome,
			Valor:     p.Valor,
			Quantity:  req.Quantity,
		})
	}
	return itens, nil
}

// resolveTaxa looks up the delivery fee for a neighborhood.
func resolveTaxa(ctx context.Context, bairros repository.BairroRepository, nome string) (float64, error) {
	if nome == "" {
		return 0, apperrors.NewValidationError("bairro", "selecione o bairro para entrega")
	}
	b, err := bairros.GetByNome(ctx, nome)
	if err == apperrors.ErrNotFound {
		return 0, apperrors.NewValidationError("bairro", "bairro não atendido: "+nome)
	}
	if err != nil {
		return 0, err
	}
	return b.Taxa, nil
}

// Subtotal computes the items subtotal rounded to 2 decimals.
func Subtotal(itens []models.ComandaItem) float64 {
	var sum float64
	for _, item := range itens {
		sum += item.Subtotal()
	}
	return settlement.Round2(sum)
}
