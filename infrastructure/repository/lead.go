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

const leadsTable = "leads"

var leadColumns = []string{
	"id", "name", "email", "whatsapp", "profession", "difficulty", "region", "status",
	"seller_id", "is_customer", "notes", "utm_source", "utm_medium", "utm_campaign",
	"user_agent", "lgpd_consent", "lgpd_consent_date", "lgpd_consent_ip",
	"created_at", "updated_at",
}

// Colunas aceitas em CountGroupedBy
var groupableLeadColumns = map[string]struct{}{
	"profession": {},
	"difficulty": {},
	"region":     {},
}

type LeadRepository interface {
	Count(ctx context.Context, filter domain.LeadFilter) (int, error)
	List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error)
	ListAll(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error)
	GetByID(ctx context.Context, id int) (*domain.Lead, error)
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	Update(ctx context.Context, req domain.UpdateLeadRequest, updatedAt time.Time) (*domain.Lead, error)
	UpdateStatus(ctx context.Context, id int, status string, updatedAt time.Time) (*domain.Lead, error)

	CountAll(ctx context.Context) (int, error)
	CountGroupedBy(ctx context.Context, column string) (map[string]int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	CountBySeller(ctx context.Context) (map[string]int, error)
	CountByCustomerStatus(ctx context.Context) (domain.CustomerStatusCount, error)
}

type leadRepository struct {
	conn *database.Connection
}

func NewLeadRepository(conn *database.Connection) LeadRepository {
	return &leadRepository{
		conn: conn,
	}
}

func buildLeadCountQuery(b squirrel.StatementBuilderType, where squirrel.And) squirrel.SelectBuilder {
	return applyLeadFilter(b.Select("COUNT(*)").From(leadsTable), where)
}

func buildLeadListQuery(b squirrel.StatementBuilderType, where squirrel.And, limit, offset int) squirrel.SelectBuilder {
	return buildLeadExportQuery(b, where).
		Limit(uint64(limit)).
		Offset(uint64(offset))
}

func buildLeadExportQuery(b squirrel.StatementBuilderType, where squirrel.And) squirrel.SelectBuilder {
	return applyLeadFilter(b.Select(leadColumns...).From(leadsTable), where).
		OrderBy("created_at DESC", "id DESC")
}

func (r *leadRepository) Count(ctx context.Context, filter domain.LeadFilter) (int, error) {
	where, err := CompileLeadFilter(filter)
	if err != nil {
		return 0, err
	}

	countSQL, countArgs, err := buildLeadCountQuery(r.conn.Builder(), where).ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "erro ao contar leads")
	}

	return total, nil
}

func (r *leadRepository) List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error) {
	where, err := CompileLeadFilter(filter)
	if err != nil {
		return nil, err
	}

	filter = filter.Normalize()
	return r.queryLeads(ctx, buildLeadListQuery(r.conn.Builder(), where, filter.Limit, filter.Offset()))
}

func (r *leadRepository) ListAll(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error) {
	where, err := CompileLeadFilter(filter)
	if err != nil {
		return nil, err
	}

	return r.queryLeads(ctx, buildLeadExportQuery(r.conn.Builder(), where))
}

func (r *leadRepository) queryLeads(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.Lead, error) {
	leadsSQL, leadsArgs, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, leadsSQL, leadsArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar leads")
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar leads")
	}

	return leads, nil
}

func (r *leadRepository) GetByID(ctx context.Context, id int) (*domain.Lead, error) {
	leadSQL, leadArgs, err := r.conn.Builder().
		Select(leadColumns...).
		From(leadsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryLead(ctx, leadSQL, leadArgs)
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	leadSQL, leadArgs, err := r.conn.Builder().
		Insert(leadsTable).
		Columns(leadColumns[1:]...).
		Values(
			lead.Name,
			lead.Email,
			lead.WhatsApp,
			lead.Profession,
			lead.Difficulty,
			lead.Region,
			lead.Status,
			lead.SellerID,
			lead.IsCustomer,
			lead.Notes,
			lead.UTMSource,
			lead.UTMMedium,
			lead.UTMCampaign,
			lead.UserAgent,
			lead.LGPDConsent,
			lead.LGPDConsentDate,
			lead.LGPDConsentIP,
			lead.CreatedAt,
			lead.UpdatedAt,
		).
		Suffix(returningLeadColumns()).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanLead(r.conn.QueryRowContext(ctx, leadSQL, leadArgs...))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar lead")
	}

	return created, nil
}

func (r *leadRepository) Update(ctx context.Context, req domain.UpdateLeadRequest, updatedAt time.Time) (*domain.Lead, error) {
	queryBuilder := r.conn.Builder().
		Update(leadsTable).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": req.ID}).
		Suffix(returningLeadColumns())

	// Campos obrigatórios nunca chegam aqui como null, o serviço valida antes
	if req.Name.Set {
		queryBuilder = queryBuilder.Set("name", req.Name.Value)
	}
	if req.Email.Set {
		queryBuilder = queryBuilder.Set("email", req.Email.Value)
	}
	if req.WhatsApp.Set {
		queryBuilder = queryBuilder.Set("whatsapp", req.WhatsApp.Value)
	}
	if req.IsCustomer.Set {
		queryBuilder = queryBuilder.Set("is_customer", req.IsCustomer.Value)
	}

	if req.Profession.Set {
		queryBuilder = queryBuilder.Set("profession", req.Profession.Ptr())
	}
	if req.Difficulty.Set {
		queryBuilder = queryBuilder.Set("difficulty", req.Difficulty.Ptr())
	}
	if req.Region.Set {
		queryBuilder = queryBuilder.Set("region", req.Region.Ptr())
	}
	if req.Status.Set {
		queryBuilder = queryBuilder.Set("status", req.Status.Ptr())
	}
	if req.SellerID.Set {
		queryBuilder = queryBuilder.Set("seller_id", req.SellerID.Ptr())
	}
	if req.Notes.Set {
		queryBuilder = queryBuilder.Set("notes", req.Notes.Ptr())
	}

	leadSQL, leadArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryLead(ctx, leadSQL, leadArgs)
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id int, status string, updatedAt time.Time) (*domain.Lead, error) {
	leadSQL, leadArgs, err := r.conn.Builder().
		Update(leadsTable).
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		Suffix(returningLeadColumns()).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryLead(ctx, leadSQL, leadArgs)
}

// queryLead executa uma consulta de uma linha, retornando nil quando não há resultado
func (r *leadRepository) queryLead(ctx context.Context, query string, args []any) (*domain.Lead, error) {
	lead, err := scanLead(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar lead")
	}

	return lead, nil
}

func (r *leadRepository) CountAll(ctx context.Context) (int, error) {
	return r.CountCreatedSince(ctx, time.Time{})
}

func (r *leadRepository) CountGroupedBy(ctx context.Context, column string) (map[string]int, error) {
	if _, ok := groupableLeadColumns[column]; !ok {
		return nil, errors.Errorf("coluna de agrupamento não permitida: %s", column)
	}

	groupSQL, groupArgs, err := r.conn.Builder().
		Select(column, "COUNT(*)").
		From(leadsTable).
		Where(squirrel.NotEq{column: nil}).
		GroupBy(column).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryCounts(ctx, groupSQL, groupArgs)
}

func (r *leadRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	queryBuilder := r.conn.Builder().
		Select("COUNT(*)").
		From(leadsTable)

	if !since.IsZero() {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"created_at": since})
	}

	countSQL, countArgs, err := queryBuilder.ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "erro ao contar leads")
	}

	return total, nil
}

// CountBySeller conta leads por vendedor ativo, mantendo vendedores sem leads com zero
func (r *leadRepository) CountBySeller(ctx context.Context) (map[string]int, error) {
	sellerSQL, sellerArgs, err := r.conn.Builder().
		Select("s.name", "COUNT(l.id)").
		From("sellers s").
		LeftJoin("leads l ON l.seller_id = s.id").
		Where(squirrel.Eq{"s.active": true}).
		GroupBy("s.name").
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryCounts(ctx, sellerSQL, sellerArgs)
}

func (r *leadRepository) CountByCustomerStatus(ctx context.Context) (domain.CustomerStatusCount, error) {
	var counts domain.CustomerStatusCount

	customerSQL, customerArgs, err := r.conn.Builder().
		Select(
			"COUNT(CASE WHEN is_customer THEN 1 END)",
			"COUNT(CASE WHEN is_customer IS NULL OR NOT is_customer THEN 1 END)",
		).
		From(leadsTable).
		ToSql()
	if err != nil {
		return counts, err
	}

	err = r.conn.QueryRowContext(ctx, customerSQL, customerArgs...).Scan(&counts.Customers, &counts.NonCustomers)
	if err != nil {
		return domain.CustomerStatusCount{}, errors.Wrap(err, "erro ao contar clientes")
	}

	return counts, nil
}

func (r *leadRepository) queryCounts(ctx context.Context, query string, args []any) (map[string]int, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao agrupar leads")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, errors.Wrap(err, "erro ao ler agrupamento")
		}
		counts[key] = count
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar agrupamento")
	}

	return counts, nil
}

func returningLeadColumns() string {
	return "RETURNING " + joinColumns(leadColumns)
}

func scanLead(row rowScanner) (*domain.Lead, error) {
	var (
		lead        domain.Lead
		sellerID    sql.NullInt64
		isCustomer  sql.NullBool
		consent     sql.NullBool
		consentDate sqlTime
		createdAt   sqlTime
		updatedAt   sqlTime
	)

	if err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.WhatsApp,
		&lead.Profession,
		&lead.Difficulty,
		&lead.Region,
		&lead.Status,
		&sellerID,
		&isCustomer,
		&lead.Notes,
		&lead.UTMSource,
		&lead.UTMMedium,
		&lead.UTMCampaign,
		&lead.UserAgent,
		&consent,
		&consentDate,
		&lead.LGPDConsentIP,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if sellerID.Valid {
		id := int(sellerID.Int64)
		lead.SellerID = &id
	}
	lead.IsCustomer = isCustomer.Valid && isCustomer.Bool
	lead.LGPDConsent = consent.Valid && consent.Bool
	lead.LGPDConsentDate = consentDate.Ptr()
	lead.CreatedAt = createdAt.Time
	lead.UpdatedAt = updatedAt.Time

	return &lead, nil
}
