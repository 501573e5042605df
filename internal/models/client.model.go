package models

// Client is a row in the legacy clientes table, owned by the supervisor that
// registered it. Coordinates are optional; everything else is mandatory at
// creation and validated before any storage access.
type Client struct {
	BaseUUIDModel
	Nombre       string   `gorm:"type:varchar(255);not null"           json:"nombre"`
	Correo       string   `gorm:"type:varchar(255);not null"           json:"correo"`
	Direccion    string   `gorm:"type:varchar(255);not null"           json:"direccion"`
	Telefono     string   `gorm:"type:varchar(50);not null"            json:"telefono"`
	Latitud      *float64 `gorm:"type:real"                            json:"latitud"`
	Longitud     *float64 `gorm:"type:real"                            json:"longitud"`
	SupervisorID string   `gorm:"column:supervisor_id;type:varchar(64);not null;index" json:"supervisorId"`
}

func (Client) TableName() string {
	return "clientes"
}

func (c *Client) HasLocation() bool {
	return c.Latitud != nil && c.Longitud != nil
}

// ClientWithLinks adds the mapping deep links for clients with coordinates.
type ClientWithLinks struct {
	Client
	DirectionsURL string `json:"directionsUrl,omitempty"`
	MapURL        string `json:"mapUrl,omitempty"`
}
