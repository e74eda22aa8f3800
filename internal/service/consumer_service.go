package service

import (
	"context"
	"encoding/json"
	"log"

	"homestay-be/internal/dto"
	"homestay-be/internal/pkg/mailer"
	"homestay-be/internal/repository/specification"
	"homestay-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the mail topic and talks to SMTP. It runs as a
// background goroutine started from bootstrap.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.MailMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal mail message: %v", err)
		msg.Ack() // malformed messages never become deliverable, drop them
		return
	}

	accommodationName := cs.lookupAccommodationName(ctx, payload)

	var err error
	switch payload.Kind {
	case dto.MailKindBookingConfirmation:
		err = cs.emailService.SendBookingConfirmation(payload.ToEmail, payload.GuestName, accommodationName, payload.StayDate, payload.Amount)
	case dto.MailKindBookingCancellation:
		err = cs.emailService.SendBookingCancellation(payload.ToEmail, payload.GuestName, accommodationName, payload.RefundAmount, payload.Fee)
	case dto.MailKindRefundUpdate:
		err = cs.emailService.SendRefundUpdate(payload.ToEmail, payload.GuestName, payload.RefundStatus, payload.RefundAmount)
	default:
		log.Printf("[WARN] Unknown mail kind: %s", payload.Kind)
		msg.Ack()
		return
	}

	if err != nil {
		log.Printf("[ERROR] Failed to send %s mail to %s: %v", payload.Kind, payload.ToEmail, err)
		msg.Nack() // SMTP hiccups are retriable
		return
	}

	msg.Ack()
}

func (cs *consumerService) lookupAccommodationName(ctx context.Context, payload dto.MailMessage) string {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: payload.BookingId})
	if err != nil || booking == nil {
		return "your homestay"
	}
	acc, err := uow.AccommodationRepository().FindOne(ctx, specification.ByID{ID: booking.AccommodationId})
	if err != nil || acc == nil {
		return "your homestay"
	}
	return acc.Name
}
