package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"homestay-be/internal/model"
	"homestay-be/internal/pkg/logger"
	"homestay-be/internal/repository"
	"homestay-be/pkg/events"
	pktNats "homestay-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// notificationTemplate maps an event code to a rendered feed entry.
// toGuest entries target the user_id carried by the event payload;
// everything else lands on the shared feed as a broadcast row.
type notificationTemplate struct {
	title    string
	template string
	toGuest  bool
}

var notificationTemplates = map[string]notificationTemplate{
	events.TypeBookingCreated:   {title: "New booking", template: "A booking for {stay_date} was placed.", toGuest: false},
	events.TypeBookingConfirmed: {title: "Booking confirmed", template: "Your booking for {stay_date} is confirmed.", toGuest: true},
	events.TypeBookingCancelled: {title: "Booking cancelled", template: "Booking {booking_id} was cancelled.", toGuest: false},
	events.TypePaymentReceived:  {title: "Payment received", template: "Payment of {amount} received for booking {booking_id}.", toGuest: false},
	events.TypeRefundUpdated:    {title: "Refund update", template: "Refund for booking {booking_id} is now {status}.", toGuest: true},
	events.TypeSweepCompleted:   {title: "Nightly sweep", template: "{completed} stays moved to completed.", toGuest: false},
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// The NATS subject includes the stream prefix.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	tmpl, ok := notificationTemplates[typeCode]
	if !ok {
		s.logger.Info("NotificationService", fmt.Sprintf("No template for event '%s', skipping", typeCode), nil)
		return nil
	}

	target := uuid.Nil
	if tmpl.toGuest {
		uidStr, _ := event.Payload()["user_id"].(string)
		uid, err := uuid.Parse(uidStr)
		if err != nil {
			s.logger.Warn("NotificationService", fmt.Sprintf("Event '%s' targets a guest but carries no user_id", typeCode), nil)
			return nil
		}
		target = uid
	}

	notif := s.buildNotification(target, typeCode, tmpl, event)

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", "Error saving notification", map[string]interface{}{"error": err, "type": typeCode})
		return err
	}

	if s.delivery != nil {
		if target == uuid.Nil {
			s.delivery.Broadcast(notif)
		} else {
			s.delivery.Send(target, notif)
		}
	}

	return nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, typeCode string, tmpl notificationTemplate, event events.Event) model.Notification {
	msg := tmpl.template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}

	metaMap := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		metaMap[k] = v
	}
	// Deep link for the dashboard when the event names an entity.
	if et, ok := payload["entity_type"].(string); ok {
		if eid, ok := payload["entity_id"].(string); ok {
			metaMap["action_url"] = fmt.Sprintf("/%ss/%s", et, eid)
		}
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		TypeCode:  typeCode,
		Title:     tmpl.title,
		Message:   msg,
		Metadata:  datatypes.JSON(metaJSON),
		CreatedAt: time.Now(),
		IsRead:    false,
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
