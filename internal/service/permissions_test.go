package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fruitstand-backend/internal/domain"
	"fruitstand-backend/internal/service"
)

func TestCanDeleteReport(t *testing.T) {
	report := domain.ShiftReport{ID: 1, PlaceID: 3, UserID: 9}

	tests := []struct {
		name string
		req  service.Requester
		want bool
	}{
		{
			name: "admin deletes anything",
			req:  service.NewRequester(service.Actor{UserID: 1, Role: domain.RoleAdmin}, nil),
			want: true,
		},
		{
			name: "place grant covers any report at the place",
			req:  service.NewRequester(service.Actor{UserID: 2, Role: domain.RoleStaff}, []int64{3}),
			want: true,
		},
		{
			name: "grant for a different place does not",
			req:  service.NewRequester(service.Actor{UserID: 2, Role: domain.RoleStaff}, []int64{4}),
			want: false,
		},
		{
			name: "submitter deletes their own report",
			req:  service.NewRequester(service.Actor{UserID: 9, Role: domain.RoleStaff}, nil),
			want: true,
		},
		{
			name: "manager role alone is not enough",
			req:  service.NewRequester(service.Actor{UserID: 2, Role: domain.RoleManager}, nil),
			want: false,
		},
		{
			name: "unrelated user denied",
			req:  service.NewRequester(service.Actor{UserID: 2, Role: domain.RoleStaff}, nil),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.CanDeleteReport(tt.req, report))
		})
	}
}
