package visitController

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skynet/internal/events"
	"skynet/internal/logger"
	. "skynet/internal/models"
	"skynet/internal/repositories"
	"skynet/internal/services"
	"skynet/internal/utils"
)

var ErrValidation = errors.New("validation failed")

// VisitsChannel is the realtime channel dashboards subscribe to; every
// committed visit mutation publishes a change event on it.
const VisitsChannel = "visitas"

// Notifier is the outbound mailer boundary; the concrete implementation talks
// to the external notification endpoint.
type Notifier interface {
	SendReportEmail(ctx context.Context, email services.ReportEmail) error
}

type VisitController struct {
	visitRepo    repositories.VisitRepository
	reportRepo   repositories.ReportRepository
	clientRepo   repositories.ClientRepository
	profileRepo  repositories.ProfileRepository
	transactions *services.TransactionService
	notification Notifier
	eventBus     *events.EventBus
	log          logger.Logger
}

func New(
	visitRepo repositories.VisitRepository,
	reportRepo repositories.ReportRepository,
	clientRepo repositories.ClientRepository,
	profileRepo repositories.ProfileRepository,
	transactions *services.TransactionService,
	notification Notifier,
	eventBus *events.EventBus,
) *VisitController {
	return &VisitController{
		visitRepo:    visitRepo,
		reportRepo:   reportRepo,
		clientRepo:   clientRepo,
		profileRepo:  profileRepo,
		transactions: transactions,
		notification: notification,
		eventBus:     eventBus,
		log:          logger.New("VisitController"),
	}
}

// fecha arrives either as RFC3339 or as the datetime-local shape the forms
// submit.
func parseFecha(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", raw, time.Local)
}

func (vc *VisitController) CreateVisit(
	ctx context.Context,
	supervisorID string,
	request CreateVisitRequest,
) (*Visit, error) {
	log := vc.log.Function("CreateVisit")

	if request.ClienteID == "" || request.TecnicoID == "" || request.Fecha == "" {
		return nil, fmt.Errorf("%w: cliente, tecnico y fecha son obligatorios", ErrValidation)
	}

	fecha, err := parseFecha(request.Fecha)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha invalida", ErrValidation)
	}

	var descripcion *string
	if trimmed := strings.TrimSpace(request.Descripcion); trimmed != "" {
		descripcion = &trimmed
	}

	visit := &Visit{
		ClienteID:    request.ClienteID,
		TecnicoID:    request.TecnicoID,
		SupervisorID: supervisorID,
		Fecha:        fecha,
		Estado:       VisitStatusPending,
		Descripcion:  descripcion,
	}

	if err := vc.visitRepo.Create(ctx, visit); err != nil {
		return nil, log.Err("failed to create visit", err, "clienteID", request.ClienteID)
	}

	vc.publishChange(visit.ID, "created")
	services.TrackEvent(vc.eventBus, "visita_creada", supervisorID, map[string]any{
		"visitaId": visit.ID,
	})

	return visit, nil
}

// ListVisits returns every visit joined with client and technician display
// data, newest first.
func (vc *VisitController) ListVisits(ctx context.Context) ([]VisitWithNames, error) {
	log := vc.log.Function("ListVisits")

	visits, err := vc.visitRepo.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to get visits", err)
	}

	return vc.withNames(ctx, visits)
}

// TodayForTechnician lists the technician's own visits for the current
// calendar day, the drill-in list the technician dashboard drives.
func (vc *VisitController) TodayForTechnician(ctx context.Context, tecnicoID string) ([]VisitWithNames, error) {
	log := vc.log.Function("TodayForTechnician")

	visits, err := vc.visitRepo.GetForTechnicianOnDay(ctx, tecnicoID, time.Now())
	if err != nil {
		return nil, log.Err("failed to get technician visits", err, "tecnicoID", tecnicoID)
	}

	return vc.withNames(ctx, visits)
}

// TodaySummary computes the supervisor's same-day counts by status.
func (vc *VisitController) TodaySummary(ctx context.Context) (VisitSummary, error) {
	log := vc.log.Function("TodaySummary")

	visits, err := vc.visitRepo.GetForDay(ctx, time.Now())
	if err != nil {
		return VisitSummary{}, log.Err("failed to get visits for today", err)
	}

	summary := VisitSummary{Total: len(visits)}
	for _, visit := range visits {
		switch visit.Estado {
		case VisitStatusPending:
			summary.Pendientes++
		case VisitStatusInProgress:
			summary.EnProceso++
		case VisitStatusFinalized:
			summary.Completadas++
		case VisitStatusCancelled:
			summary.Canceladas++
		}
	}

	return summary, nil
}

// StartVisit moves pendiente to en curso for the assigned technician. The
// identity check rides in the repository's row predicate; a non-assigned
// caller gets repositories.ErrRowPolicy back and the row stays pendiente.
func (vc *VisitController) StartVisit(ctx context.Context, visitID, tecnicoID string) error {
	log := vc.log.Function("StartVisit")

	if err := vc.visitRepo.Start(ctx, visitID, tecnicoID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrRowPolicy) {
			return err
		}
		return log.Err("failed to start visit", err, "visitID", visitID)
	}

	vc.publishChange(visitID, "started")

	return nil
}

// CancelVisit is reachable from pendiente or en curso. No screen in the
// legacy UI ever called it, but the stored status is rendered everywhere, so
// the transition is exposed.
func (vc *VisitController) CancelVisit(ctx context.Context, visitID string) error {
	log := vc.log.Function("CancelVisit")

	if err := vc.visitRepo.Cancel(ctx, visitID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrRowPolicy) {
			return err
		}
		return log.Err("failed to cancel visit", err, "visitID", visitID)
	}

	vc.publishChange(visitID, "cancelled")

	return nil
}

// SubmitReportResult reports the partial-failure shape of the flow: the
// report may be saved while the client e-mail was not.
type SubmitReportResult struct {
	Report           *VisitReport `json:"report"`
	NotificationSent bool         `json:"notificationSent"`
}

// SubmitReport runs the finalization pipeline: persist the report, flip the
// visit to finalizada, then ask the mailer to notify the client. The steps
// are deliberately not one transaction; a notification failure after a
// successful persist is degraded success, never a rollback.
func (vc *VisitController) SubmitReport(
	ctx context.Context,
	visitID, tecnicoID string,
	request SubmitReportRequest,
) (SubmitReportResult, error) {
	log := vc.log.Function("SubmitReport")

	trabajo := strings.TrimSpace(request.TrabajoRealizado)
	if trabajo == "" {
		return SubmitReportResult{}, fmt.Errorf(
			"%w: debes describir el trabajo realizado", ErrValidation)
	}

	visit, err := vc.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return SubmitReportResult{}, err
		}
		return SubmitReportResult{}, log.Err("failed to get visit", err, "visitID", visitID)
	}
	if visit.TecnicoID != tecnicoID {
		return SubmitReportResult{}, repositories.ErrRowPolicy
	}

	client, err := vc.clientRepo.GetByID(ctx, visit.ClienteID)
	if err != nil {
		return SubmitReportResult{}, log.Err("failed to get visit client", err,
			"visitID", visitID, "clienteID", visit.ClienteID)
	}

	var observaciones *string
	if trimmed := strings.TrimSpace(request.Observaciones); trimmed != "" {
		observaciones = &trimmed
	}

	report := &VisitReport{
		VisitaID:         visitID,
		TrabajoRealizado: trabajo,
		Observaciones:    observaciones,
	}

	// The report row and the estado flip commit together; the notification
	// stays outside the transaction.
	err = vc.transactions.Execute(ctx, func(txCtx context.Context) error {
		if err := vc.reportRepo.Create(txCtx, report); err != nil {
			return err
		}
		return vc.visitRepo.Finalize(txCtx, visitID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRowPolicy) {
			return SubmitReportResult{}, err
		}
		return SubmitReportResult{}, log.Err("failed to save report", err, "visitID", visitID)
	}

	services.TrackEvent(vc.eventBus, "enviar_reporte", tecnicoID, map[string]any{
		"cliente": client.Nombre,
	})
	services.TrackEvent(vc.eventBus, "finalizar_visita", tecnicoID, map[string]any{
		"cliente": client.Nombre,
	})

	vc.publishChange(visitID, "finalized")

	tecnicoNombre := "Técnico"
	if tecnico, err := vc.profileRepo.GetByID(ctx, tecnicoID); err == nil {
		tecnicoNombre = tecnico.Nombre
	} else {
		log.Warn("failed to resolve technician name", "tecnicoID", tecnicoID, "error", err)
	}

	var observacionesText string
	if observaciones != nil {
		observacionesText = *observaciones
	}

	result := SubmitReportResult{Report: report, NotificationSent: true}

	if err := vc.notification.SendReportEmail(ctx, services.ReportEmail{
		ClienteNombre:    client.Nombre,
		ClienteCorreo:    client.Correo,
		TecnicoNombre:    tecnicoNombre,
		FechaVisita:      visit.Fecha.Format(time.RFC3339),
		TrabajoRealizado: trabajo,
		Observaciones:    observacionesText,
		Direccion:        client.Direccion,
	}); err != nil {
		log.Warn("report saved but notification failed", "visitID", visitID, "error", err)
		result.NotificationSent = false
	}

	return result, nil
}

func (vc *VisitController) publishChange(visitID, action string) {
	if err := vc.eventBus.Publish(VisitsChannel, events.Event{
		Type:   "change",
		Action: action,
		Data:   map[string]any{"visitaId": visitID},
	}); err != nil {
		vc.log.Warn("failed to publish visit change", "visitID", visitID, "action", action)
	}
}

// withNames merges visits with their client and technician rows, mirroring
// the lookup the list screens always did, and applies the status rendering
// contract plus mapping deep links.
func (vc *VisitController) withNames(ctx context.Context, visits []Visit) ([]VisitWithNames, error) {
	log := vc.log.Function("withNames")

	if len(visits) == 0 {
		return []VisitWithNames{}, nil
	}

	clienteIDs := make([]string, 0, len(visits))
	seen := make(map[string]bool, len(visits))
	for _, visit := range visits {
		if !seen[visit.ClienteID] {
			seen[visit.ClienteID] = true
			clienteIDs = append(clienteIDs, visit.ClienteID)
		}
	}

	clients, err := vc.clientRepo.GetByIDs(ctx, clienteIDs)
	if err != nil {
		return nil, log.Err("failed to get visit clients", err)
	}
	clientByID := make(map[string]Client, len(clients))
	for _, client := range clients {
		clientByID[client.ID] = client
	}

	technicians, err := vc.profileRepo.GetTechnicians(ctx)
	if err != nil {
		return nil, log.Err("failed to get technicians", err)
	}
	technicianByID := make(map[string]Profile, len(technicians))
	for _, technician := range technicians {
		technicianByID[technician.ID] = technician
	}

	out := make([]VisitWithNames, 0, len(visits))
	for _, visit := range visits {
		entry := VisitWithNames{
			Visit:          visit,
			ClienteNombre:  "Desconocido",
			TecnicoNombre:  "Desconocido",
			EstadoLabel:    visit.Estado.Label(),
			EstadoCategory: visit.Estado.Category(),
		}

		if client, ok := clientByID[visit.ClienteID]; ok {
			entry.ClienteNombre = client.Nombre
			entry.ClienteDireccion = client.Direccion
			entry.ClienteTelefono = client.Telefono
			entry.ClienteCorreo = client.Correo
			if client.HasLocation() {
				entry.DirectionsURL = utils.DirectionsURL(*client.Latitud, *client.Longitud)
				entry.MapURL = utils.MapURL(*client.Latitud, *client.Longitud)
			}
		}

		if technician, ok := technicianByID[visit.TecnicoID]; ok {
			entry.TecnicoNombre = technician.Nombre
		}

		out = append(out, entry)
	}

	return out, nil
}
