package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/lead-crm-api/infrastructure/database"
	"github.com/vfg2006/lead-crm-api/internal/domain"
)

const sellersTable = "sellers"

var sellerColumns = []string{"id", "name", "email", "phone", "active", "created_at", "updated_at"}

type SellerRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*domain.Seller, error)
	GetByID(ctx context.Context, id int) (*domain.Seller, error)
	Create(ctx context.Context, seller *domain.Seller) (*domain.Seller, error)
	Update(ctx context.Context, req domain.UpdateSellerRequest, updatedAt time.Time) (*domain.Seller, error)
	Delete(ctx context.Context, id int, updatedAt time.Time) (*domain.Seller, error)
}

type sellerRepository struct {
	conn *database.Connection
}

func NewSellerRepository(conn *database.Connection) SellerRepository {
	return &sellerRepository{
		conn: conn,
	}
}

func (r *sellerRepository) List(ctx context.Context, onlyActive bool) ([]*domain.Seller, error) {
	queryBuilder := r.conn.Builder().
		Select(sellerColumns...).
		From(sellersTable).
		OrderBy("name ASC")

	if onlyActive {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"active": true})
	}

	sellersSQL, sellersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, sellersSQL, sellersArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar vendedores")
	}
	defer rows.Close()

	sellers := make([]*domain.Seller, 0)
	for rows.Next() {
		seller, err := scanSeller(rows)
		if err != nil {
			return nil, err
		}
		sellers = append(sellers, seller)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar vendedores")
	}

	return sellers, nil
}

func (r *sellerRepository) GetByID(ctx context.Context, id int) (*domain.Seller, error) {
	sellerSQL, sellerArgs, err := r.conn.Builder().
		Select(sellerColumns...).
		From(sellersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	return querySeller(ctx, r.conn, sellerSQL, sellerArgs)
}

func (r *sellerRepository) Create(ctx context.Context, seller *domain.Seller) (*domain.Seller, error) {
	sellerSQL, sellerArgs, err := r.conn.Builder().
		Insert(sellersTable).
		Columns(sellerColumns[1:]...).
		Values(seller.Name, seller.Email, seller.Phone, seller.Active, seller.CreatedAt, seller.UpdatedAt).
		Suffix("RETURNING " + joinColumns(sellerColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanSeller(r.conn.QueryRowContext(ctx, sellerSQL, sellerArgs...))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar vendedor")
	}

	return created, nil
}

func (r *sellerRepository) Update(ctx context.Context, req domain.UpdateSellerRequest, updatedAt time.Time) (*domain.Seller, error) {
	queryBuilder := r.conn.Builder().
		Update(sellersTable).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": req.ID}).
		Suffix("RETURNING " + joinColumns(sellerColumns))

	if req.Name.Set {
		queryBuilder = queryBuilder.Set("name", req.Name.Value)
	}
	if req.Email.Set {
		queryBuilder = queryBuilder.Set("email", req.Email.Ptr())
	}
	if req.Phone.Set {
		queryBuilder = queryBuilder.Set("phone", req.Phone.Ptr())
	}
	if req.Active.Set {
		queryBuilder = queryBuilder.Set("active", req.Active.Value)
	}

	sellerSQL, sellerArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	return querySeller(ctx, r.conn, sellerSQL, sellerArgs)
}

// Delete remove o vendedor e desvincula os leads que apontavam para ele na mesma transação
func (r *sellerRepository) Delete(ctx context.Context, id int, updatedAt time.Time) (*domain.Seller, error) {
	builder := r.conn.Builder()

	unlinkSQL, unlinkArgs, err := builder.
		Update(leadsTable).
		Set("seller_id", nil).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"seller_id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	deleteSQL, deleteArgs, err := builder.
		Delete(sellersTable).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(sellerColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var deleted *domain.Seller
	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, unlinkSQL, unlinkArgs...); err != nil {
			return errors.Wrap(err, "erro ao desvincular leads do vendedor")
		}

		seller, err := querySeller(ctx, tx, deleteSQL, deleteArgs)
		if err != nil {
			return err
		}
		deleted = seller
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

func querySeller(ctx context.Context, q database.Queryer, query string, args []any) (*domain.Seller, error) {
	seller, err := scanSeller(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar vendedor")
	}

	return seller, nil
}

func scanSeller(row rowScanner) (*domain.Seller, error) {
	var (
		seller    domain.Seller
		active    sql.NullBool
		createdAt sqlTime
		updatedAt sqlTime
	)

	if err := row.Scan(
		&seller.ID,
		&seller.Name,
		&seller.Email,
		&seller.Phone,
		&active,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	seller.Active = active.Valid && active.Bool
	seller.CreatedAt = createdAt.Time
	seller.UpdatedAt = updatedAt.Time

	return &seller, nil
}
