package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"csaweb/internal/model"
	"csaweb/internal/service"
)

func TestRegisterButton_ClosedWindowWinsOverEverything(t *testing.T) {
	event := openEvent("ev1")
	event.RegistrationStatus = model.WindowClosed
	reg := &model.Registration{ID: "r1", Status: model.RegistrationVerified}

	view := service.RegisterButton(&event, reg, 0)

	assert.Equal(t, service.ButtonStateClosed, view.State)
	assert.False(t, view.Enabled)
}

func TestRegisterButton_ScheduledWindow(t *testing.T) {
	event := openEvent("ev1")
	event.RegistrationStatus = model.WindowScheduled

	view := service.RegisterButton(&event, nil, 0)

	assert.Equal(t, service.ButtonStateScheduled, view.State)
	assert.False(t, view.Enabled)
}

func TestRegisterButton_PendingPaidBeatsRegistered(t *testing.T) {
	event := openEvent("ev1")
	event.IsFree = false
	event.Price = 50000
	reg := &model.Registration{ID: "r1", Status: model.RegistrationPending}

	view := service.RegisterButton(&event, reg, 10)

	assert.Equal(t, service.ButtonStatePending, view.State)
	assert.False(t, view.Enabled)
}

func TestRegisterButton_PendingFreeCountsAsRegistered(t *testing.T) {
	event := openEvent("ev1")
	reg := &model.Registration{ID: "r1", Status: model.RegistrationPending}

	view := service.RegisterButton(&event, reg, 10)

	assert.Equal(t, service.ButtonStateRegistered, view.State)
}

func TestRegisterButton_OwnRegistrationBeatsCapacity(t *testing.T) {
	event := openEvent("ev1")
	event.Capacity = 50
	reg := &model.Registration{ID: "r1", Status: model.RegistrationVerified}

	view := service.RegisterButton(&event, reg, 50)

	assert.Equal(t, service.ButtonStateRegistered, view.State)
	assert.False(t, view.Enabled)
}

func TestRegisterButton_FullEvent(t *testing.T) {
	event := openEvent("ev1")
	event.Capacity = 50
	event.IsFree = true

	view := service.RegisterButton(&event, nil, 50)

	assert.Equal(t, service.ButtonStateFull, view.State)
	assert.Equal(t, "ظرفیت تکمیل شد", view.Label)
	assert.False(t, view.Enabled)
}

func TestRegisterButton_OpenFree(t *testing.T) {
	event := openEvent("ev1")

	view := service.RegisterButton(&event, nil, 10)

	assert.Equal(t, service.ButtonStateOpen, view.State)
	assert.True(t, view.Enabled)
}

func TestRegisterButton_OpenPaidShowsPrice(t *testing.T) {
	event := openEvent("ev1")
	event.IsFree = false
	event.Price = 50000

	view := service.RegisterButton(&event, nil, 10)

	assert.Equal(t, service.ButtonStateOpen, view.State)
	assert.True(t, view.Enabled)
	assert.Contains(t, view.Label, "50000")
}
