package models

type LoginRequest struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

// CreateUserRequest is the provisioning payload; RolID carries the legacy
// numeric code on the wire.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
	RolID    int    `json:"rol_id"`
}

type CreateClientRequest struct {
	Nombre    string   `json:"nombre"`
	Correo    string   `json:"correo"`
	Direccion string   `json:"direccion"`
	Telefono  string   `json:"telefono"`
	Latitud   *float64 `json:"latitud"`
	Longitud  *float64 `json:"longitud"`
}

type CreateVisitRequest struct {
	ClienteID   string `json:"clienteId"`
	TecnicoID   string `json:"tecnicoId"`
	Fecha       string `json:"fecha"`
	Descripcion string `json:"descripcion"`
}

type SubmitReportRequest struct {
	TrabajoRealizado string `json:"trabajoRealizado"`
	Observaciones    string `json:"observaciones"`
}
