package providerpayments

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/payments"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// codeGenerator arma los códigos de una corrida con la fecha fija de la corrida.
type codeGenerator struct {
	seq repository.SequenceRepository
	at  time.Time
}

func (g codeGenerator) referencia(ctx context.Context) (string, error) {
	n, err := g.seq.Next(ctx, payments.SeqReferencia)
	if err != nil {
		return "", fmt.Errorf("next referencia: %w", err)
	}
	return payments.FormatReferencia(g.at, n), nil
}

func (g codeGenerator) groupingFolio(ctx context.Context) (string, error) {
	n, err := g.seq.Next(ctx, payments.SeqGroupingFolio)
	if err != nil {
		return "", fmt.Errorf("next grouping folio: %w", err)
	}
	return payments.FormatGroupingFolio(n), nil
}

func (g codeGenerator) layoutFolio(ctx context.Context) (string, error) {
	n, err := g.seq.Next(ctx, payments.SeqLayoutFolio)
	if err != nil {
		return "", fmt.Errorf("next layout folio: %w", err)
	}
	return payments.FormatLayoutFolio(g.at, n), nil
}
