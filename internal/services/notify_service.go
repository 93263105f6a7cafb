package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"

	"dormcareBack/internal/repositories"
)

// NotifyService pushes FCM notifications to every registered admin device.
type NotifyService struct {
	Client    *messaging.Client
	TokenRepo *repositories.NotifyTokenRepository
}

func (s *NotifyService) NotifyAdmins(ctx context.Context, title, body string) error {
	if s.Client == nil {
		return nil
	}

	tokens, err := s.TokenRepo.GetAdminTokens(ctx)
	if err != nil {
		return err
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority": "10",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Alert: &messaging.ApsAlert{
							Title: title,
							Body:  body,
						},
						Sound: "default",
					},
				},
			},
		}
		if _, err := s.Client.Send(ctx, message); err != nil {
			log.Printf("Error sending notification to token %s: %v", token, err)
		}
	}
	return nil
}
