package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitstand-backend/internal/domain"
	"fruitstand-backend/internal/service"
)

var (
	adminActor     = service.Actor{UserID: 100, Role: domain.RoleAdmin}
	submitterActor = service.Actor{UserID: 5, Role: domain.RoleStaff}
	strangerActor  = service.Actor{UserID: 77, Role: domain.RoleStaff}
)

func TestDeletionService_DeleteReport_Cascade(t *testing.T) {
	state := newMemState()
	seedBase(state)
	startID := seedStartReport(state)
	require.NotEmpty(t, state.lines[startID])
	_, svc := newTestServices(state)

	deleted, err := svc.DeleteReport(context.Background(), startID, adminActor)
	require.NoError(t, err)
	assert.Equal(t, startID, deleted.ID)
	assert.Equal(t, int64(1), deleted.PlaceID)
	assert.Equal(t, domain.ReportStart, deleted.Kind)

	_, reportExists := state.reports[startID]
	assert.False(t, reportExists)
	assert.Empty(t, state.lines[startID])
}

func TestDeletionService_DeleteReport_NotFound(t *testing.T) {
	state := newMemState()
	seedBase(state)
	_, svc := newTestServices(state)

	_, err := svc.DeleteReport(context.Background(), 404, adminActor)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestDeletionService_PermissionTiers(t *testing.T) {
	tests := []struct {
		name    string
		actor   service.Actor
		grants  []int64
		allowed bool
	}{
		{name: "admin role always allowed", actor: adminActor, allowed: true},
		{name: "place-level grant allowed", actor: strangerActor, grants: []int64{1}, allowed: true},
		{name: "submitting user allowed", actor: submitterActor, allowed: true},
		{name: "grant for another place denied", actor: strangerActor, grants: []int64{2}, allowed: false},
		{name: "unrelated staff denied", actor: strangerActor, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newMemState()
			seedBase(state)
			startID := seedStartReport(state)
			if tt.grants != nil {
				state.grants[tt.actor.UserID] = tt.grants
			}
			_, svc := newTestServices(state)

			_, err := svc.DeleteReport(context.Background(), startID, tt.actor)
			if tt.allowed {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindForbidden))
			_, stillThere := state.reports[startID]
			assert.True(t, stillThere)
		})
	}
}

func TestDeletionService_DeleteReport_RefreshesSummary(t *testing.T) {
	state := newMemState()
	seedBase(state)
	seedStartReport(state)
	endID := seedEndReport(state, 84)
	summarySvc, svc := newTestServices(state)

	_, err := summarySvc.Generate(context.Background(), 1, testDate)
	require.NoError(t, err)

	_, err = svc.DeleteReport(context.Background(), endID, adminActor)
	require.NoError(t, err)

	// The summary was recomputed from the surviving start report.
	got, err := summarySvc.GetByKey(context.Background(), 1, testDate)
	require.NoError(t, err)
	assert.True(t, got.HasStartReport)
	assert.False(t, got.HasEndReport)
	assert.Nil(t, got.EndReportID)
	require.Len(t, got.Fruits, 1)
	assert.Zero(t, got.Fruits[0].SoldQty)
}

func TestDeletionService_DeleteLastReport_DropsSummary(t *testing.T) {
	state := newMemState()
	seedBase(state)
	startID := seedStartReport(state)
	summarySvc, svc := newTestServices(state)

	_, err := summarySvc.Generate(context.Background(), 1, testDate)
	require.NoError(t, err)

	_, err = svc.DeleteReport(context.Background(), startID, adminActor)
	require.NoError(t, err)

	_, err = summarySvc.GetByKey(context.Background(), 1, testDate)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	// A fresh generate also reflects the absence.
	_, err = summarySvc.Generate(context.Background(), 1, testDate)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestDeletionService_DeleteByKey_BothKinds(t *testing.T) {
	state := newMemState()
	seedBase(state)
	startID := seedStartReport(state)
	endID := seedEndReport(state, 84)
	_, svc := newTestServices(state)

	ids, err := svc.DeleteByKey(context.Background(), 1, testDate, nil, adminActor)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{startID, endID}, ids)
	assert.Empty(t, state.reports)
}

func TestDeletionService_DeleteByKey_SingleKind(t *testing.T) {
	state := newMemState()
	seedBase(state)
	startID := seedStartReport(state)
	endID := seedEndReport(state, 84)
	_, svc := newTestServices(state)

	kind := domain.ReportEnd
	ids, err := svc.DeleteByKey(context.Background(), 1, testDate, &kind, adminActor)
	require.NoError(t, err)
	assert.Equal(t, []int64{endID}, ids)

	_, stillThere := state.reports[startID]
	assert.True(t, stillThere)
}

func TestDeletionService_DeleteByKey_FilteredToOwn(t *testing.T) {
	// A staff submitter without grants only deletes their own report.
	state := newMemState()
	seedBase(state)
	startID := seedStartReport(state) // submitted by user 5
	endID := seedEndReport(state, 84) // submitted by user 6
	_, svc := newTestServices(state)

	ids, err := svc.DeleteByKey(context.Background(), 1, testDate, nil, submitterActor)
	require.NoError(t, err)
	assert.Equal(t, []int64{startID}, ids)

	_, stillThere := state.reports[endID]
	assert.True(t, stillThere)
}

func TestDeletionService_DeleteByKey_EmptySet(t *testing.T) {
	state := newMemState()
	seedBase(state)
	_, svc := newTestServices(state)

	// No reports at all.
	_, err := svc.DeleteByKey(context.Background(), 1, testDate, nil, adminActor)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	// Reports exist but none pass the permission filter.
	seedStartReport(state)
	_, err = svc.DeleteByKey(context.Background(), 1, testDate, nil, strangerActor)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
