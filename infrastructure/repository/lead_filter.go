package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/pkg/utils"
)

// CompileLeadFilter traduz o filtro em predicados parametrizados. O mesmo resultado
// alimenta a contagem, a listagem paginada e a exportação, garantindo o mesmo WHERE.
// Um retorno vazio significa que nenhuma condição se aplica.
func CompileLeadFilter(filter domain.LeadFilter) (squirrel.And, error) {
	where := squirrel.And{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		where = append(where, squirrel.Or{
			squirrel.Expr("LOWER(name) LIKE ?", pattern),
			squirrel.Expr("LOWER(email) LIKE ?", pattern),
			squirrel.Expr("LOWER(whatsapp) LIKE ?", pattern),
		})
	}

	equalities := []struct {
		column string
		value  string
	}{
		{"profession", filter.Profession},
		{"difficulty", filter.Difficulty},
		{"region", filter.Region},
		{"utm_campaign", filter.UTMCampaign},
	}
	for _, eq := range equalities {
		if eq.value != "" {
			where = append(where, squirrel.Eq{eq.column: eq.value})
		}
	}

	if filter.SellerID != "" {
		sellerID, err := strconv.Atoi(strings.TrimSpace(filter.SellerID))
		if err != nil {
			return nil, fmt.Errorf("%w: seller_id deve ser um número inteiro (%q)", domain.ErrInvalidFilter, filter.SellerID)
		}
		where = append(where, squirrel.Eq{"seller_id": sellerID})
	}

	if filter.IsCustomer != "" {
		switch filter.IsCustomer {
		case "true":
			where = append(where, squirrel.Eq{"is_customer": true})
		case "false":
			where = append(where, squirrel.Eq{"is_customer": false})
		default:
			return nil, fmt.Errorf("%w: is_customer deve ser true ou false (%q)", domain.ErrInvalidFilter, filter.IsCustomer)
		}
	}

	if filter.Status != "" {
		where = append(where, squirrel.Eq{"status": filter.Status})
	}

	if filter.DateFrom != "" {
		from, err := utils.ParseFilterDate(filter.DateFrom, false)
		if err != nil {
			return nil, fmt.Errorf("%w: dateFrom: %v", domain.ErrInvalidFilter, err)
		}
		where = append(where, squirrel.GtOrEq{"created_at": from})
	}

	if filter.DateTo != "" {
		to, err := utils.ParseFilterDate(filter.DateTo, true)
		if err != nil {
			return nil, fmt.Errorf("%w: dateTo: %v", domain.ErrInvalidFilter, err)
		}
		where = append(where, squirrel.LtOrEq{"created_at": to})
	}

	return where, nil
}

// applyLeadFilter só adiciona o WHERE quando há predicados, evitando o (1=1) do squirrel
func applyLeadFilter(builder squirrel.SelectBuilder, where squirrel.And) squirrel.SelectBuilder {
	if len(where) == 0 {
		return builder
	}
	return builder.Where(where)
}
