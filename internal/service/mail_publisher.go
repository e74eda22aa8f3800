package service

import (
	"encoding/json"
	"log"

	"homestay-be/internal/dto"
	"homestay-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IMailPublisher queues transactional emails onto the in-process bus so
// the request path never blocks on SMTP.
type IMailPublisher interface {
	PublishBookingConfirmation(booking *entity.Booking)
	PublishBookingCancellation(booking *entity.Booking, refundAmount, fee float64)
	PublishRefundUpdate(refund *entity.RefundRequest, guestEmail, guestName string)
}

type mailPublisher struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewMailPublisher(topicName string, pubSub *gochannel.GoChannel) IMailPublisher {
	return &mailPublisher{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (p *mailPublisher) publish(payload dto.MailMessage) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal mail message: %v", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := p.pubSub.Publish(p.topicName, msg); err != nil {
		log.Printf("[ERROR] Failed to publish mail message: %v", err)
	}
}

func (p *mailPublisher) PublishBookingConfirmation(booking *entity.Booking) {
	p.publish(dto.MailMessage{
		Kind:      dto.MailKindBookingConfirmation,
		ToEmail:   booking.GuestEmail,
		GuestName: booking.GuestName,
		StayDate:  booking.StayDate.Format("2006-01-02"),
		Amount:    booking.Amount,
		BookingId: booking.Id,
	})
}

func (p *mailPublisher) PublishBookingCancellation(booking *entity.Booking, refundAmount, fee float64) {
	p.publish(dto.MailMessage{
		Kind:         dto.MailKindBookingCancellation,
		ToEmail:      booking.GuestEmail,
		GuestName:    booking.GuestName,
		Amount:       booking.Amount,
		RefundAmount: refundAmount,
		Fee:          fee,
		BookingId:    booking.Id,
	})
}

func (p *mailPublisher) PublishRefundUpdate(refund *entity.RefundRequest, guestEmail, guestName string) {
	p.publish(dto.MailMessage{
		Kind:         dto.MailKindRefundUpdate,
		ToEmail:      guestEmail,
		GuestName:    guestName,
		RefundAmount: refund.Amount,
		RefundStatus: string(refund.Status),
		BookingId:    refund.BookingId,
	})
}
