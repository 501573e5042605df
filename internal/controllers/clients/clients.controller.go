package clientController

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skynet/internal/logger"
	. "skynet/internal/models"
	"skynet/internal/repositories"
	"skynet/internal/utils"
)

var ErrValidation = errors.New("validation failed")

type ClientController struct {
	clientRepo repositories.ClientRepository
	log        logger.Logger
}

func New(clientRepo repositories.ClientRepository) *ClientController {
	return &ClientController{
		clientRepo: clientRepo,
		log:        logger.New("ClientController"),
	}
}

// CreateClient registers a client owned by the calling supervisor. All four
// contact fields are mandatory; the coordinate pair is optional but must come
// complete when present. Validation failures never reach storage.
func (cc *ClientController) CreateClient(
	ctx context.Context,
	supervisorID string,
	request CreateClientRequest,
) (*Client, error) {
	log := cc.log.Function("CreateClient")

	for field, value := range map[string]string{
		"nombre":    request.Nombre,
		"correo":    request.Correo,
		"direccion": request.Direccion,
		"telefono":  request.Telefono,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s es obligatorio", ErrValidation, field)
		}
	}

	if (request.Latitud == nil) != (request.Longitud == nil) {
		return nil, fmt.Errorf("%w: la ubicacion requiere latitud y longitud", ErrValidation)
	}

	client := &Client{
		Nombre:       strings.TrimSpace(request.Nombre),
		Correo:       strings.TrimSpace(request.Correo),
		Direccion:    strings.TrimSpace(request.Direccion),
		Telefono:     strings.TrimSpace(request.Telefono),
		Latitud:      request.Latitud,
		Longitud:     request.Longitud,
		SupervisorID: supervisorID,
	}

	if err := cc.clientRepo.Create(ctx, client); err != nil {
		return nil, log.Err("failed to create client", err, "nombre", request.Nombre)
	}

	return client, nil
}

// ListClients returns the supervisor's own clients, the row scope the remote
// policy used to enforce.
func (cc *ClientController) ListClients(ctx context.Context, supervisorID string) ([]ClientWithLinks, error) {
	log := cc.log.Function("ListClients")

	clients, err := cc.clientRepo.GetBySupervisor(ctx, supervisorID)
	if err != nil {
		return nil, log.Err("failed to list clients", err, "supervisorID", supervisorID)
	}

	withLinks := make([]ClientWithLinks, 0, len(clients))
	for _, client := range clients {
		entry := ClientWithLinks{Client: client}
		if client.HasLocation() {
			entry.DirectionsURL = utils.DirectionsURL(*client.Latitud, *client.Longitud)
			entry.MapURL = utils.MapURL(*client.Latitud, *client.Longitud)
		}
		withLinks = append(withLinks, entry)
	}

	return withLinks, nil
}

// DeleteClient removes a client after the UI's explicit confirmation; the
// ownership predicate lives in the repository.
func (cc *ClientController) DeleteClient(ctx context.Context, id, supervisorID string) error {
	log := cc.log.Function("DeleteClient")

	if err := cc.clientRepo.DeleteOwned(ctx, id, supervisorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrRowPolicy) {
			return err
		}
		return log.Err("failed to delete client", err, "id", id)
	}

	return nil
}
