package service

import (
	"fmt"

	"csaweb/internal/dto"
	"csaweb/internal/model"
)

const (
	ButtonStateScheduled  = "scheduled"
	ButtonStatePending    = "pending_approval"
	ButtonStateRegistered = "registered"
	ButtonStateFull       = "full"
	ButtonStateOpen       = "open"
	ButtonStateClosed     = "closed"
)

const (
	labelScheduled  = "ثبت‌نام هنوز آغاز نشده است"
	labelClosed     = "ثبت‌نام به پایان رسیده است"
	labelPending    = "در انتظار تایید"
	labelRegistered = "ثبت‌نام شده"
	labelFull       = "ظرفیت تکمیل شد"
	labelFree       = "ثبت‌نام رایگان"
)

// RegisterButton decides what the registration control shows for one event.
// CLOSED and SCHEDULED windows short-circuit everything else: no action is
// ever offered outside an OPEN window. Within an OPEN window the caller's
// own registration record wins over capacity, even if the event filled up
// after they registered.
func RegisterButton(event *model.Event, reg *model.Registration, registeredCount int) dto.ButtonView {
	switch event.RegistrationStatus {
	case model.WindowClosed:
		return dto.ButtonView{State: ButtonStateClosed, Label: labelClosed}
	case model.WindowScheduled:
		return dto.ButtonView{State: ButtonStateScheduled, Label: labelScheduled}
	}

	if reg != nil && reg.Status == model.RegistrationPending && !event.IsFree {
		return dto.ButtonView{State: ButtonStatePending, Label: labelPending}
	}
	if reg != nil {
		return dto.ButtonView{State: ButtonStateRegistered, Label: labelRegistered}
	}
	if registeredCount >= event.Capacity {
		return dto.ButtonView{State: ButtonStateFull, Label: labelFull}
	}

	label := labelFree
	if !event.IsFree {
		label = fmt.Sprintf("ثبت‌نام - %d تومان", event.Price)
	}
	return dto.ButtonView{State: ButtonStateOpen, Label: label, Enabled: true}
}
