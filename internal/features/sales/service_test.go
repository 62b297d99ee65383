package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"busline.mx/erp/internal/common"
)

func TestSell_ValidationBeforeDB(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewService(repo, time.UTC)

	cases := []BookingRequest{
		{FirstName: " ", LastName: "Li", ScheduleID: 3, TravelDate: travel, Seats: []int{1}},
		{FirstName: "Ana", LastName: "", ScheduleID: 3, TravelDate: travel, Seats: []int{1}},
		{FirstName: "Ana", LastName: "Li", ScheduleID: 0, TravelDate: travel, Seats: []int{1}},
		{FirstName: "Ana", LastName: "Li", ScheduleID: 3, Seats: []int{1}},
		{FirstName: "Ana", LastName: "Li", ScheduleID: 3, TravelDate: travel},
	}
	for _, req := range cases {
		_, err := svc.Sell(context.Background(), req)
		var verr *common.ValidationError
		assert.ErrorAs(t, err, &verr, "%+v", req)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSell_NormalisesTravelDate(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewService(repo, time.UTC)
	svc.now = func() time.Time { return soldAt }

	mock.ExpectBegin()
	expectDeparture(mock, 3, 24, 25000)
	expectSeatFree(mock, 3, 4, true)
	mock.ExpectRollback()

	req := booking(4)
	req.TravelDate = travel.Add(15 * time.Hour)
	_, err := svc.Sell(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrSeatTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleConcept(t *testing.T) {
	assert.Equal(t, "Sale of 1 ticket to Ana Li", SaleConcept(1, "Ana", "Li"))
	assert.Equal(t, "Sale of 3 tickets to Ana Li", SaleConcept(3, "Ana", "Li"))
}
