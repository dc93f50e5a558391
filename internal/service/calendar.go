package service

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"wedding-planner/backend/config"
	"wedding-planner/backend/internal/model"
)

// buildCalendarInvite 按婚礼配置生成 iCalendar 邀请
// 事件时长固定 4 小时，采用 REQUEST 方法以便主流日历客户端弹出"接受邀请"
func buildCalendarInvite(wedding *config.WeddingConfig, guest *model.Guest) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//wedding-planner//backend//CN")

	event := cal.AddEvent(fmt.Sprintf("wedding-%s", guest.GuestID))
	event.SetCreatedTime(time.Now())
	event.SetDtStampTime(time.Now())
	event.SetStartAt(wedding.Date)
	event.SetEndAt(wedding.Date.Add(4 * time.Hour))
	event.SetSummary(fmt.Sprintf("%s 的婚礼", wedding.CoupleNames))
	if wedding.Venue != "" {
		event.SetLocation(wedding.Venue)
	}
	event.SetDescription(fmt.Sprintf("诚挚邀请 %s 出席 %s 的婚礼。", guest.FullName(), wedding.CoupleNames))
	if guest.Email != "" {
		event.AddAttendee(guest.Email, ics.CalendarUserTypeIndividual, ics.ParticipationStatusAccepted)
	}

	return []byte(cal.Serialize())
}
