package seed

import (
	"time"

	"skynet/config"
	"skynet/internal/logger"
	. "skynet/internal/models"

	"gorm.io/gorm"
)

func floatPtr(f float64) *float64 {
	return &f
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	profiles := []Profile{
		{
			Nombre:   "Laura Méndez",
			Correo:   "laura.mendez@skynet.example",
			RolID:    RoleAdmin.Code(),
			Password: "password",
		}, {
			Nombre:   "Carlos Pineda",
			Correo:   "carlos.pineda@skynet.example",
			RolID:    RoleSupervisor.Code(),
			Password: "password",
		}, {
			Nombre:   "José García",
			Correo:   "jose.garcia@skynet.example",
			RolID:    RoleTechnician.Code(),
			Password: "password",
		},
	}

	byCorreo := map[string]string{}
	for _, profile := range profiles {
		var existing Profile
		if err := db.First(&existing, "correo = ?", profile.Correo).Error; err == nil {
			byCorreo[existing.Correo] = existing.ID
			log.Info("Profile already exists", "correo", profile.Correo)
			continue
		}
		log.Info("Seeding profile", "correo", profile.Correo)
		if err := db.Create(&profile).Error; err != nil {
			log.Er("failed to create profile", err, "correo", profile.Correo)
			continue
		}
		byCorreo[profile.Correo] = profile.ID
	}

	supervisorID := byCorreo["carlos.pineda@skynet.example"]
	technicianID := byCorreo["jose.garcia@skynet.example"]
	if supervisorID == "" || technicianID == "" {
		return nil
	}

	client := Client{
		Nombre:       "Comercial El Trébol",
		Correo:       "contacto@eltrebol.example",
		Direccion:    "4a Avenida 12-34, Zona 10, Ciudad de Guatemala",
		Telefono:     "+502 5555 1234",
		Latitud:      floatPtr(14.634915),
		Longitud:     floatPtr(-90.506882),
		SupervisorID: supervisorID,
	}

	var existingClient Client
	if err := db.First(&existingClient, "correo = ?", client.Correo).Error; err == nil {
		log.Info("Client already exists", "correo", client.Correo)
		return nil
	}
	if err := db.Create(&client).Error; err != nil {
		return log.Err("failed to create client", err, "nombre", client.Nombre)
	}

	descripcion := "Instalación de enlace dedicado"
	visit := Visit{
		ClienteID:    client.ID,
		TecnicoID:    technicianID,
		SupervisorID: supervisorID,
		Fecha:        time.Now().Add(2 * time.Hour),
		Estado:       VisitStatusPending,
		Descripcion:  &descripcion,
	}
	if err := db.Create(&visit).Error; err != nil {
		return log.Err("failed to create visit", err)
	}

	return nil
}
