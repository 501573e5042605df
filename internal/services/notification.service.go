package services

import (
	"context"
	"errors"
	"time"

	"skynet/config"
	"skynet/internal/logger"

	"github.com/go-resty/resty/v2"
)

// ErrNotificationFailed marks a non-success answer from the notification
// endpoint. Callers treat it as degraded success: the report stays saved.
var ErrNotificationFailed = errors.New("notification endpoint returned an error")

// ReportEmail is the wire payload the notification endpoint expects.
type ReportEmail struct {
	ClienteNombre    string `json:"clienteNombre"`
	ClienteCorreo    string `json:"clienteCorreo"`
	TecnicoNombre    string `json:"tecnicoNombre"`
	FechaVisita      string `json:"fechaVisita"`
	TrabajoRealizado string `json:"trabajoRealizado"`
	Observaciones    string `json:"observaciones"`
	Direccion        string `json:"direccion"`
}

// NotificationService asks the external mailer to dispatch the finalization
// e-mail to the client. No retry: a failure here surfaces once and requires a
// new user action, like every other failure in the system.
type NotificationService struct {
	client *resty.Client
	log    logger.Logger
}

func NewNotificationService(config config.Config) *NotificationService {
	client := resty.New().
		SetBaseURL(config.NotificationBaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &NotificationService{
		client: client,
		log:    logger.New("NotificationService"),
	}
}

func (s *NotificationService) SendReportEmail(ctx context.Context, email ReportEmail) error {
	log := s.log.Function("SendReportEmail")

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(email).
		Post("/api/reportes/enviar-reporte")
	if err != nil {
		return log.Err("failed to reach notification endpoint", err,
			"cliente", email.ClienteNombre)
	}

	if resp.IsError() {
		log.ErMsg("notification endpoint rejected report email",
			"status", resp.StatusCode(), "body", string(resp.Body()))
		return ErrNotificationFailed
	}

	return nil
}
