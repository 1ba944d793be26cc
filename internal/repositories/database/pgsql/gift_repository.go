package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	"github.com/SscSPs/vip_gift_workflow/internal/models"
	"github.com/SscSPs/vip_gift_workflow/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const giftColumns = `gift_id, vip_id, gift_item, cost, requested_by, workflow_status, tracking_status,
		approval_reviewed_by, reject_reason, dispatcher, tracking_code, uploaded_bo, purchased_by,
		mkt_purchase_date, mkt_delivered_date, gift_feedback, kam_proof_by, audited_by, audit_date,
		audit_remark, created_date, last_modified_date`

// giftFieldColumns is the whitelist of columns a mutation may write.
var giftFieldColumns = map[domain.GiftField]string{
	domain.FieldWorkflowStatus:     "workflow_status",
	domain.FieldTrackingStatus:     "tracking_status",
	domain.FieldApprovalReviewedBy: "approval_reviewed_by",
	domain.FieldRejectReason:       "reject_reason",
	domain.FieldDispatcher:         "dispatcher",
	domain.FieldTrackingCode:       "tracking_code",
	domain.FieldUploadedBO:         "uploaded_bo",
	domain.FieldPurchasedBy:        "purchased_by",
	domain.FieldMKTPurchaseDate:    "mkt_purchase_date",
	domain.FieldMKTDeliveredDate:   "mkt_delivered_date",
	domain.FieldGiftFeedback:       "gift_feedback",
	domain.FieldKAMProofBy:         "kam_proof_by",
	domain.FieldAuditedBy:          "audited_by",
	domain.FieldAuditDate:          "audit_date",
	domain.FieldAuditRemark:        "audit_remark",
	domain.FieldLastModifiedDate:   "last_modified_date",
}

type PgxGiftRepository struct {
	BaseRepository
}

// newPgxGiftRepository creates a new repository for gift records.
func newPgxGiftRepository(pool *pgxpool.Pool) portsrepo.GiftRepositoryWithTx {
	return &PgxGiftRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxGiftRepository implements portsrepo.GiftRepositoryWithTx
var _ portsrepo.GiftRepositoryWithTx = (*PgxGiftRepository)(nil)

func scanGift(row pgx.Row) (models.Gift, error) {
	var m models.Gift
	err := row.Scan(
		&m.GiftID,
		&m.VIPID,
		&m.GiftItem,
		&m.Cost,
		&m.RequestedBy,
		&m.WorkflowStatus,
		&m.TrackingStatus,
		&m.ApprovalReviewedBy,
		&m.RejectReason,
		&m.Dispatcher,
		&m.TrackingCode,
		&m.UploadedBO,
		&m.PurchasedBy,
		&m.MKTPurchaseDate,
		&m.MKTDeliveredDate,
		&m.GiftFeedback,
		&m.KAMProofBy,
		&m.AuditedBy,
		&m.AuditDate,
		&m.AuditRemark,
		&m.CreatedDate,
		&m.LastModifiedDate,
	)
	return m, err
}

// FindGiftByID retrieves a gift by its ID.
func (r *PgxGiftRepository) FindGiftByID(ctx context.Context, giftID int64) (*domain.GiftRecord, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE gift_id = $1;`

	m, err := scanGift(r.Pool.QueryRow(ctx, query, giftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find gift by ID %d: %w", giftID, err)
	}
	gift := mapping.ToDomainGift(m)
	return &gift, nil
}

// FindGiftsByIDs retrieves the current snapshot of several gifts. Missing ids are absent from the map.
func (r *PgxGiftRepository) FindGiftsByIDs(ctx context.Context, giftIDs []int64) (map[int64]domain.GiftRecord, error) {
	if len(giftIDs) == 0 {
		return map[int64]domain.GiftRecord{}, nil
	}

	query := `SELECT ` + giftColumns + ` FROM gifts WHERE gift_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, giftIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query gifts by IDs: %w", err)
	}
	defer rows.Close()

	gifts := make(map[int64]domain.GiftRecord, len(giftIDs))
	for rows.Next() {
		m, err := scanGift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gift row during batch fetch: %w", err)
		}
		gifts[m.GiftID] = mapping.ToDomainGift(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gift rows during batch fetch: %w", err)
	}
	return gifts, nil
}

// ApplyMutations runs one UPDATE per group inside tx and returns the total number of rows changed.
// Groups with expected statuses only match rows still in one of them.
func (r *PgxGiftRepository) ApplyMutations(ctx context.Context, tx pgx.Tx, groups []domain.MutationGroup) (int64, error) {
	var affected int64
	for i, group := range groups {
		if len(group.GiftIDs) == 0 {
			continue
		}
		query, args, err := buildGroupUpdate(group)
		if err != nil {
			return affected, apperrors.NewAppError(500, "invalid mutation group", err)
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return affected, apperrors.NewAppError(500, fmt.Sprintf("failed to apply mutation group %d", i), err)
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}

// buildGroupUpdate renders the parameterised UPDATE of one mutation group.
func buildGroupUpdate(group domain.MutationGroup) (string, []any, error) {
	if len(group.Updates) == 0 {
		return "", nil, errors.New("mutation group has no field updates")
	}

	sets := make([]string, 0, len(group.Updates))
	args := make([]any, 0, len(group.Updates)+2)
	for _, u := range group.Updates {
		column, ok := giftFieldColumns[u.Field]
		if !ok {
			return "", nil, fmt.Errorf("field %q is not writable", u.Field)
		}
		args = append(args, columnValue(u.Value))
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	args = append(args, group.GiftIDs)
	query := fmt.Sprintf("UPDATE gifts SET %s WHERE gift_id = ANY($%d)", strings.Join(sets, ", "), len(args))

	if len(group.ExpectedStatuses) > 0 {
		expected := make([]string, len(group.ExpectedStatuses))
		for i, s := range group.ExpectedStatuses {
			expected[i] = string(s)
		}
		args = append(args, expected)
		query += fmt.Sprintf(" AND workflow_status = ANY($%d)", len(args))
	}
	return query + ";", args, nil
}

// columnValue converts domain enums to their text form; everything else is passed as is.
func columnValue(v any) any {
	switch val := v.(type) {
	case domain.WorkflowStatus:
		return string(val)
	case domain.TrackingStatus:
		return string(val)
	default:
		return v
	}
}
