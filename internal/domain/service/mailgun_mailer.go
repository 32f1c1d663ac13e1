package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"creacakes/internal/domain/entity"
)

// MailgunMailer renders and sends the transactional emails behind the
// notification outbox. Templates are fixed French HTML; the payload of the
// outbox document fills the blanks.
type MailgunMailer struct {
	mg         mailgun.Mailgun
	from       string
	adminEmail string
	baseURL    string
}

func NewMailgunMailer(domain, apiKey, from, adminEmail, baseURL string) *MailgunMailer {
	mg := mailgun.NewMailgun(domain, apiKey)
	mg.SetAPIBase(mailgun.APIBaseEU)

	return &MailgunMailer{
		mg:         mg,
		from:       from,
		adminEmail: adminEmail,
		baseURL:    baseURL,
	}
}

var emailTemplates = map[string]*template.Template{
	entity.NotificationWelcome: template.Must(template.New("welcome").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#b5654a">Bienvenue chez Créa'Cakes !</h2>
  <p>Bonjour {{.Name}},</p>
  <p>Votre compte a bien été créé. Vous pouvez désormais suivre vos demandes de devis et échanger avec nous directement depuis votre espace client.</p>
  <p><a href="{{.BaseURL}}/compte" style="color:#b5654a">Accéder à mon espace</a></p>
  <p>À très bientôt,<br>L'équipe Créa'Cakes</p>
</div>`)),

	entity.NotificationContact: template.Must(template.New("contact").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#b5654a">Message bien reçu</h2>
  <p>Bonjour {{.Name}},</p>
  <p>Nous avons bien reçu votre message et nous vous répondrons dans les plus brefs délais.</p>
  <p>À très bientôt,<br>L'équipe Créa'Cakes</p>
</div>`)),

	entity.NotificationContactAdmin: template.Must(template.New("contactAdmin").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#b5654a">Nouveau message de contact</h2>
  <p><strong>De :</strong> {{.Name}} ({{.Email}})</p>
  <p><strong>Sujet :</strong> {{.Subject}}</p>
  <p>{{.Message}}</p>
</div>`)),

	entity.NotificationNewQuote: template.Must(template.New("newQuote").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#b5654a">Nouvelle demande de devis</h2>
  <p><strong>De :</strong> {{.Name}} ({{.Email}})</p>
  <p><strong>Événement :</strong> {{.EventType}} le {{.EventDate}}</p>
  <p><strong>Estimation :</strong> {{.Total}} €</p>
  <p><a href="{{.BaseURL}}/admin/devis/{{.QuoteID}}" style="color:#b5654a">Voir la demande</a></p>
</div>`)),

	entity.NotificationQuoteMessage: template.Must(template.New("quoteMessage").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#b5654a">Nouveau message sur votre devis</h2>
  <p>Bonjour {{.Name}},</p>
  <p>Un nouveau message vient d'être posté sur votre demande de devis :</p>
  <blockquote style="border-left:3px solid #b5654a;padding-left:12px;color:#555">{{.Message}}</blockquote>
  <p><a href="{{.BaseURL}}/devis/{{.QuoteID}}" style="color:#b5654a">Répondre</a></p>
</div>`)),

	entity.NotificationOrderConfirmation: template.Must(template.New("orderConfirmation").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#b5654a">Confirmation de votre commande</h2>
  <p>Bonjour {{.Name}},</p>
  <p>Votre devis a été confirmé et transformé en commande n° <strong>{{.OrderID}}</strong>{{if .EventDate}} pour votre événement du {{.EventDate}}{{end}}.</p>
  {{if .Products}}<ul>{{range .Products}}<li>{{.}}</li>{{end}}</ul>{{end}}
  <p><strong>Montant :</strong> {{.Total}} €</p>
  <p>Nous vous tiendrons informé de son avancement.</p>
  <p>Merci de votre confiance,<br>L'équipe Créa'Cakes</p>
</div>`)),

	entity.NotificationOrderStatus: template.Must(template.New("orderStatus").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#b5654a">Mise à jour de votre commande</h2>
  <p>Bonjour {{.Name}},</p>
  <p>Votre commande n° <strong>{{.OrderID}}</strong> est maintenant : <strong>{{.StatusLabel}}</strong>.</p>
  <p>À très bientôt,<br>L'équipe Créa'Cakes</p>
</div>`)),

	entity.NotificationNewsletter: template.Must(template.New("newsletter").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#b5654a">{{.Subject}}</h2>
  <div>{{.Body}}</div>
  <p style="font-size:12px;color:#999">Vous recevez cet email car vous êtes inscrit à la newsletter Créa'Cakes.
  <a href="{{.BaseURL}}/newsletter/desinscription?email={{.Email}}" style="color:#999">Se désinscrire</a></p>
</div>`)),
}

var emailSubjects = map[string]string{
	entity.NotificationWelcome:           "Bienvenue chez Créa'Cakes",
	entity.NotificationContact:           "Nous avons bien reçu votre message",
	entity.NotificationContactAdmin:      "Nouveau message de contact",
	entity.NotificationNewQuote:          "Nouvelle demande de devis",
	entity.NotificationQuoteMessage:      "Nouveau message sur votre devis",
	entity.NotificationOrderConfirmation: "Confirmation de votre commande",
	entity.NotificationOrderStatus:       "Mise à jour de votre commande",
}

var orderStatusLabels = map[string]string{
	entity.OrderStatusPending:   "en attente",
	entity.OrderStatusConfirmed: "confirmée",
	entity.OrderStatusPreparing: "en préparation",
	entity.OrderStatusReady:     "prête",
	entity.OrderStatusDelivered: "livrée",
}

type emailData struct {
	Name        string
	Email       string
	Subject     string
	Message     string
	Body        template.HTML
	EventType   string
	EventDate   string
	QuoteID     string
	OrderID     string
	Products    []string
	Total       string
	StatusLabel string
	BaseURL     string
}

// Send renders the notification's template and delivers it through Mailgun.
func (m *MailgunMailer) Send(ctx context.Context, notification *entity.Notification) error {
	tmpl, ok := emailTemplates[notification.Type]
	if !ok {
		return fmt.Errorf("unknown notification type: %s", notification.Type)
	}

	data := m.dataFrom(notification)

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render %s template: %w", notification.Type, err)
	}

	subject := emailSubjects[notification.Type]
	if notification.Type == entity.NotificationNewsletter {
		subject = data.Subject
	}

	to := notification.To
	if to == "" {
		to = m.adminEmail
	}

	msg := m.mg.NewMessage(m.from, subject, "", to)
	msg.SetHtml(body.String())

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, _, err := m.mg.Send(sendCtx, msg)
	if err != nil {
		return fmt.Errorf("mailgun send failed: %w", err)
	}

	return nil
}

func (m *MailgunMailer) dataFrom(notification *entity.Notification) emailData {
	p := notification.Payload

	data := emailData{
		Name:      payloadString(p, "name"),
		Email:     notification.To,
		Subject:   payloadString(p, "subject"),
		Message:   payloadString(p, "message"),
		Body:      template.HTML(payloadString(p, "body")),
		EventType: payloadString(p, "event_type"),
		EventDate: payloadString(p, "event_date"),
		QuoteID:   payloadString(p, "quote_id"),
		OrderID:   payloadString(p, "order_id"),
		Products:  payloadStrings(p, "products"),
		Total:     payloadString(p, "total"),
		BaseURL:   m.baseURL,
	}

	if s := payloadString(p, "status"); s != "" {
		if label, ok := orderStatusLabels[s]; ok {
			data.StatusLabel = label
		} else {
			data.StatusLabel = s
		}
	}

	return data
}

// payloadStrings reads a string list from the payload. Firestore hands list
// fields back as []interface{}, so both shapes are accepted.
func payloadStrings(p map[string]interface{}, key string) []string {
	if p == nil {
		return nil
	}
	switch v := p[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func payloadString(p map[string]interface{}, key string) string {
	if p == nil {
		return ""
	}
	switch v := p[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.2f", v)
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return ""
	}
}
