package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	"github.com/SscSPs/vip_gift_workflow/internal/core/domain"
	portsrepo "github.com/SscSPs/vip_gift_workflow/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// memTx is a transaction handle of memStore. Only identity matters to the engine.
type memTx struct {
	pgx.Tx
	id int
}

// memStore is an in-memory gift and timeline store with staged, all-or-nothing transactions.
type memStore struct {
	mu       sync.Mutex
	gifts    map[int64]domain.GiftRecord
	timeline []domain.TimelineEntry

	txSeq    int
	staged   map[int64]domain.GiftRecord
	stagedTL []domain.TimelineEntry

	// Hooks used to inject failures and races.
	beforeBegin      func(s *memStore)
	failApplyAfter   int // fail after this many groups were written; 0 disables
	failAppend       error
	failCommit       error
	failSnapshot     error
	rollbacks        int
	commits          int
	snapshotReads    int
	appendBatchCalls int
}

var (
	_ portsrepo.GiftRepositoryWithTx = (*memStore)(nil)
	_ portsrepo.TimelineWriter       = (*memStore)(nil)
)

func newMemStore(gifts ...domain.GiftRecord) *memStore {
	s := &memStore{gifts: make(map[int64]domain.GiftRecord)}
	for _, g := range gifts {
		s.gifts[g.GiftID] = g
	}
	return s
}

func (s *memStore) gift(id int64) domain.GiftRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gifts[id]
}

func (s *memStore) timelineFor(id int64) []domain.TimelineEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TimelineEntry
	for _, e := range s.timeline {
		if e.GiftID == id {
			out = append(out, e)
		}
	}
	return out
}

func (s *memStore) FindGiftByID(_ context.Context, giftID int64) (*domain.GiftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gifts[giftID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &g, nil
}

func (s *memStore) FindGiftsByIDs(_ context.Context, giftIDs []int64) (map[int64]domain.GiftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshotReads++
	if s.failSnapshot != nil {
		return nil, s.failSnapshot
	}
	out := make(map[int64]domain.GiftRecord)
	for _, id := range giftIDs {
		if g, ok := s.gifts[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}

func (s *memStore) Begin(context.Context) (pgx.Tx, error) {
	if s.beforeBegin != nil {
		s.beforeBegin(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txSeq++
	s.staged = make(map[int64]domain.GiftRecord, len(s.gifts))
	for id, g := range s.gifts {
		s.staged[id] = g
	}
	s.stagedTL = nil
	return &memTx{id: s.txSeq}, nil
}

func (s *memStore) Commit(context.Context, pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCommit != nil {
		return s.failCommit
	}
	s.gifts = s.staged
	s.timeline = append(s.timeline, s.stagedTL...)
	s.staged, s.stagedTL = nil, nil
	s.commits++
	return nil
}

func (s *memStore) Rollback(context.Context, pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged, s.stagedTL = nil, nil
	s.rollbacks++
	return nil
}

func (s *memStore) ApplyMutations(_ context.Context, _ pgx.Tx, groups []domain.MutationGroup) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	for i, group := range groups {
		if s.failApplyAfter > 0 && i == s.failApplyAfter {
			return affected, errors.New("connection reset by peer")
		}
		for _, id := range group.GiftIDs {
			g, ok := s.staged[id]
			if !ok || !statusIn(g.WorkflowStatus, group.ExpectedStatuses) {
				continue
			}
			for _, u := range group.Updates {
				applyFieldUpdate(&g, u)
			}
			s.staged[id] = g
			affected++
		}
	}
	return affected, nil
}

func (s *memStore) AppendBatch(_ context.Context, _ pgx.Tx, drafts []domain.TimelineDraft, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendBatchCalls++
	if s.failAppend != nil {
		return 0, s.failAppend
	}
	for _, d := range drafts {
		s.stagedTL = append(s.stagedTL, domain.TimelineEntry{
			ID:         int64(len(s.timeline) + len(s.stagedTL) + 1),
			GiftID:     d.GiftID,
			FromStatus: d.FromStatus,
			ToStatus:   d.ToStatus,
			ChangedBy:  d.ChangedBy,
			Remark:     d.Remark,
			CreatedAt:  at,
		})
	}
	return len(drafts), nil
}

func statusIn(s domain.WorkflowStatus, expected []domain.WorkflowStatus) bool {
	if len(expected) == 0 {
		return true
	}
	for _, e := range expected {
		if e == s {
			return true
		}
	}
	return false
}

func strOrNil(v any) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

func timeOrNil(v any) *time.Time {
	if v == nil {
		return nil
	}
	t := v.(time.Time)
	return &t
}

func applyFieldUpdate(g *domain.GiftRecord, u domain.FieldUpdate) {
	switch u.Field {
	case domain.FieldWorkflowStatus:
		g.WorkflowStatus = u.Value.(domain.WorkflowStatus)
	case domain.FieldTrackingStatus:
		if u.Value == nil {
			g.TrackingStatus = nil
		} else {
			t := u.Value.(domain.TrackingStatus)
			g.TrackingStatus = &t
		}
	case domain.FieldApprovalReviewedBy:
		g.ApprovalReviewedBy = strOrNil(u.Value)
	case domain.FieldRejectReason:
		g.RejectReason = strOrNil(u.Value)
	case domain.FieldDispatcher:
		g.Dispatcher = strOrNil(u.Value)
	case domain.FieldTrackingCode:
		g.TrackingCode = strOrNil(u.Value)
	case domain.FieldUploadedBO:
		g.UploadedBO = u.Value.(bool)
	case domain.FieldPurchasedBy:
		g.PurchasedBy = strOrNil(u.Value)
	case domain.FieldMKTPurchaseDate:
		g.MKTPurchaseDate = timeOrNil(u.Value)
	case domain.FieldMKTDeliveredDate:
		g.MKTDeliveredDate = timeOrNil(u.Value)
	case domain.FieldGiftFeedback:
		g.GiftFeedback = strOrNil(u.Value)
	case domain.FieldKAMProofBy:
		g.KAMProofBy = strOrNil(u.Value)
	case domain.FieldAuditedBy:
		g.AuditedBy = strOrNil(u.Value)
	case domain.FieldAuditDate:
		g.AuditDate = timeOrNil(u.Value)
	case domain.FieldAuditRemark:
		g.AuditRemark = strOrNil(u.Value)
	case domain.FieldLastModifiedDate:
		g.LastModifiedDate = u.Value.(time.Time)
	default:
		panic("unhandled field " + string(u.Field))
	}
}

func strPtr(s string) *string { return &s }

func trackingPtr(t domain.TrackingStatus) *domain.TrackingStatus { return &t }

var (
	testEpoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	testNow   = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
)

func newGift(id int64, status domain.WorkflowStatus) domain.GiftRecord {
	return domain.GiftRecord{
		GiftID:           id,
		VIPID:            "VIP-" + string(rune('A'+id%26)),
		GiftItem:         "Hamper",
		RequestedBy:      "kam-1",
		WorkflowStatus:   status,
		CreatedDate:      testEpoch,
		LastModifiedDate: testEpoch,
	}
}
