package notification

import (
	"context"
	"fmt"

	"comoencasa/config"
	"comoencasa/models"
	"comoencasa/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// DefaultNotificationService sends transactional emails through SendGrid.
type DefaultNotificationService struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewDefaultNotificationService builds the SendGrid-backed sender from the
// app configuration.
func NewDefaultNotificationService() *DefaultNotificationService {
	return &DefaultNotificationService{
		client:   sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey),
		from:     config.AppConfig.EmailFrom,
		fromName: config.AppConfig.EmailFromName,
	}
}

func (s *DefaultNotificationService) send(ctx context.Context, toEmail, toName, subject, html string) error {
	from := mail.NewEmail(s.fromName, s.from)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", html)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	utils.GetLogger().Info("email sent",
		zap.String("to", toEmail),
		zap.String("subject", subject))
	return nil
}

// SendWelcome greets a freshly provisioned client, including the one-time
// password-setup link when one was issued.
func (s *DefaultNotificationService) SendWelcome(ctx context.Context, p models.WelcomePayload) error {
	setupBlock := fmt.Sprintf(`
		<p>Puedes acceder a tu panel con tu email y la contraseña que utilizaste al registrarte.</p>
		<a href="%s/dashboard" style="display:inline-block;padding:12px 24px;background:#4a3f35;color:white;text-decoration:none;border-radius:50px;font-weight:bold;">Acceder al Panel</a>`,
		config.AppConfig.FrontendURL)
	if p.SetupURL != "" {
		setupBlock = fmt.Sprintf(`
		<div style="margin:30px 0;padding:20px;background:#fdf6e3;border-radius:10px;text-align:center;">
			<p style="margin-bottom:20px;"><strong>Para acceder a tu panel por primera vez, necesitas crear una contraseña:</strong></p>
			<a href="%s" style="display:inline-block;padding:12px 24px;background:#4a3f35;color:white;text-decoration:none;border-radius:50px;font-weight:bold;">Establecer mi Contraseña</a>
		</div>`, p.SetupURL)
	}

	html := fmt.Sprintf(`
	<div style="font-family:sans-serif;color:#4a3f35;max-width:600px;margin:0 auto;padding:40px;">
		<h1 style="color:#d4a373;">¡Hola %s!</h1>
		<p>Es un placer darte la bienvenida a <strong>Como en Casa</strong>.</p>
		<p>Hemos creado tu cuenta automáticamente para que puedas gestionar tus citas y sesiones de forma segura.</p>
		%s
	</div>`, p.FullName, setupBlock)

	return s.send(ctx, p.Email, p.FullName, "Bienvenida a Como en Casa", html)
}

// SendBookingSummary confirms a freshly provisioned appointment.
func (s *DefaultNotificationService) SendBookingSummary(ctx context.Context, p models.BookingSummaryPayload) error {
	html := fmt.Sprintf(`
	<div style="font-family:sans-serif;color:#4a3f35;">
		<h1 style="color:#d4a373;">¡Tu reserva está confirmada!</h1>
		<p>Hola, aquí tienes los detalles de tu próxima sesión:</p>
		<div style="background:#fdf6e3;padding:20px;border-radius:10px;">
			<p><strong>Día:</strong> %s</p>
			<p><strong>Hora:</strong> %s</p>
			<p><strong>Terapeuta:</strong> %s</p>
			<p><strong>Servicio:</strong> %s</p>
		</div>
		<p>Te hemos enviado un enlace para la sesión a tu panel de paciente.</p>
	</div>`, p.Date, p.Time, p.ProviderName, p.ServiceName)

	return s.send(ctx, p.Email, p.FullName, "Resumen de tu reserva - Como en Casa", html)
}

// SendReminder nudges the client the day before their session.
func (s *DefaultNotificationService) SendReminder(ctx context.Context, p models.ReminderPayload) error {
	html := fmt.Sprintf(`
	<div style="font-family:sans-serif;color:#4a3f35;">
		<h1 style="color:#d4a373;">Tu sesión es mañana</h1>
		<p>Hola %s, te recordamos tu próxima sesión:</p>
		<div style="background:#fdf6e3;padding:20px;border-radius:10px;">
			<p><strong>Día:</strong> %s</p>
			<p><strong>Hora:</strong> %s</p>
		</div>
	</div>`, p.FullName, p.Date, p.Time)

	return s.send(ctx, p.Email, p.FullName, "Recordatorio de tu sesión - Como en Casa", html)
}
