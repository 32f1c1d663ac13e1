package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creacakes/internal/domain/entity"
)

func TestEveryTemplateRenders(t *testing.T) {
	m := &MailgunMailer{baseURL: "https://creacakes.example.com"}

	payload := map[string]interface{}{
		"name":       "Marie Dupont",
		"subject":    "Promo de rentrée",
		"message":    "Bonjour, est-ce possible pour samedi ?",
		"body":       "<p>Contenu de la campagne</p>",
		"event_type": "mariage",
		"event_date": "2026-09-12",
		"quote_id":   "q-42",
		"order_id":   "o-42",
		"products":   []string{"1 × Pièce montée", "2 × Macarons"},
		"total":      125.50,
		"status":     entity.OrderStatusPreparing,
	}

	for notificationType, tmpl := range emailTemplates {
		notification := &entity.Notification{
			Type:    notificationType,
			To:      "marie@example.com",
			Payload: payload,
		}

		var body bytes.Buffer
		err := tmpl.Execute(&body, m.dataFrom(notification))
		require.NoError(t, err, "template %s", notificationType)
		assert.NotEmpty(t, body.String(), "template %s", notificationType)
	}
}

func TestEverySubjectCovered(t *testing.T) {
	for notificationType := range emailTemplates {
		if notificationType == entity.NotificationNewsletter {
			// Newsletter subject comes from the campaign payload.
			continue
		}
		assert.NotEmpty(t, emailSubjects[notificationType], "subject for %s", notificationType)
	}
}

func TestOrderConfirmationListsOrderDetails(t *testing.T) {
	m := &MailgunMailer{}

	notification := &entity.Notification{
		Type: entity.NotificationOrderConfirmation,
		To:   "marie@example.com",
		Payload: map[string]interface{}{
			"name":       "Marie Dupont",
			"order_id":   "o-42",
			"event_date": "2026-10-17",
			// Firestore returns stored arrays as []interface{}.
			"products": []interface{}{"1 × Pièce montée", "2 × Macarons"},
			"total":    330.0,
		},
	}

	var body bytes.Buffer
	err := emailTemplates[notification.Type].Execute(&body, m.dataFrom(notification))
	require.NoError(t, err)

	rendered := body.String()
	assert.Contains(t, rendered, "o-42")
	assert.Contains(t, rendered, "2026-10-17")
	assert.Contains(t, rendered, "1 × Pièce montée")
	assert.Contains(t, rendered, "2 × Macarons")
	assert.Contains(t, rendered, "330.00")
}

func TestDataFromTranslatesStatusLabel(t *testing.T) {
	m := &MailgunMailer{}

	data := m.dataFrom(&entity.Notification{
		Type:    entity.NotificationOrderStatus,
		Payload: map[string]interface{}{"status": entity.OrderStatusDelivered},
	})
	assert.Equal(t, "livrée", data.StatusLabel)

	data = m.dataFrom(&entity.Notification{
		Type:    entity.NotificationOrderStatus,
		Payload: map[string]interface{}{"status": "archived"},
	})
	assert.Equal(t, "archived", data.StatusLabel)
}

func TestPayloadString(t *testing.T) {
	p := map[string]interface{}{
		"name":  "Marie",
		"total": 99.9,
		"count": int64(3),
		"flag":  true,
	}

	assert.Equal(t, "Marie", payloadString(p, "name"))
	assert.Equal(t, "99.90", payloadString(p, "total"))
	assert.Equal(t, "3", payloadString(p, "count"))
	assert.Equal(t, "", payloadString(p, "flag"))
	assert.Equal(t, "", payloadString(p, "missing"))
	assert.Equal(t, "", payloadString(nil, "name"))
}
